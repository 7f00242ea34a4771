package service

import (
	"testing"

	"github.com/corpsite/internal/db"
	"github.com/corpsite/internal/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCreateAssignsDefaults(t *testing.T) {
	svc := NewProductService(dbtest.Open(t))

	first, err := svc.Create(ProductInput{Name: StringPtr("风冷模块机")})
	require.NoError(t, err)
	second, err := svc.Create(ProductInput{
		Name:    StringPtr("水源热泵"),
		Gallery: &[]string{" /a.jpg ", ""},
		Specs:   &map[string]string{" 功率 ": " 30kW ", "": "ignored"},
	})
	require.NoError(t, err)

	assert.True(t, first.IsActive)
	assert.False(t, first.IsFeatured)
	assert.Equal(t, first.SortOrder+1, second.SortOrder)
	assert.Equal(t, []string{"/a.jpg"}, second.Gallery)
	assert.Equal(t, map[string]string{"功率": "30kW"}, second.Specs)
}

func TestProductNameMustBeUnique(t *testing.T) {
	svc := NewProductService(dbtest.Open(t))

	_, err := svc.Create(ProductInput{Name: StringPtr("Chiller X")})
	require.NoError(t, err)
	other, err := svc.Create(ProductInput{Name: StringPtr("Chiller Y")})
	require.NoError(t, err)

	_, err = svc.Create(ProductInput{Name: StringPtr("chiller x")})
	assert.ErrorIs(t, err, ErrProductNameTaken)

	_, err = svc.Update(other.ID, ProductInput{Name: StringPtr("CHILLER X")})
	assert.ErrorIs(t, err, ErrProductNameTaken)

	renamed, err := svc.Update(other.ID, ProductInput{Name: StringPtr("Chiller Y")})
	require.NoError(t, err)
	assert.Equal(t, "Chiller Y", renamed.Name)
}

func TestProductUpdateKeepsSpecsWhenOmitted(t *testing.T) {
	svc := NewProductService(dbtest.Open(t))

	item, err := svc.Create(ProductInput{
		Name:  StringPtr("组合式空调箱"),
		Specs: &map[string]string{"风量": "20000m³/h"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(item.ID, ProductInput{Summary: StringPtr("适用于洁净厂房")})
	require.NoError(t, err)
	assert.Equal(t, "20000m³/h", updated.Specs["风量"])
	assert.Equal(t, "适用于洁净厂房", updated.Summary)
}

func TestProductPermanentDeleteDetachesCases(t *testing.T) {
	gdb := dbtest.Open(t)
	products := NewProductService(gdb)
	cases := NewCaseService(gdb)

	product, err := products.Create(ProductInput{Name: StringPtr("冷却塔")})
	require.NoError(t, err)
	item, err := cases.Create(CaseInput{Title: StringPtr("数据中心改造"), ProductID: &product.ID})
	require.NoError(t, err)

	require.NoError(t, products.Delete(product.ID, true))

	reloaded, err := cases.Get(item.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.ProductID)
	assert.Nil(t, reloaded.Product)

	assert.ErrorIs(t, products.Delete(product.ID, true), ErrProductNotFound)
}

func TestProductCategories(t *testing.T) {
	gdb := dbtest.Open(t)
	svc := NewProductService(gdb)

	for _, input := range []ProductInput{
		{Name: StringPtr("A"), Category: StringPtr("冷水机组")},
		{Name: StringPtr("B"), Category: StringPtr("末端设备")},
		{Name: StringPtr("C"), Category: StringPtr("冷水机组")},
		{Name: StringPtr("D"), Category: StringPtr("停产"), IsActive: BoolPtr(false)},
	} {
		_, err := svc.Create(input)
		require.NoError(t, err)
	}

	categories, err := svc.Categories()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"冷水机组", "末端设备"}, categories)

	var count int64
	require.NoError(t, gdb.Model(&db.Product{}).Count(&count).Error)
	assert.Equal(t, int64(4), count)
}
