package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := Open(Options{Path: filepath.Join(t.TempDir(), "nested", "test.db")})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(gdb))
	t.Cleanup(func() { _ = Close(gdb) })
	return gdb
}

func TestBaseAssignsUUIDOnCreate(t *testing.T) {
	gdb := openTestDB(t)

	news := News{Title: "开工大吉"}
	require.NoError(t, gdb.Create(&news).Error)
	assert.Len(t, news.ID, 36)

	preset := News{Base: Base{ID: "fixed-id"}, Title: "指定主键"}
	require.NoError(t, gdb.Create(&preset).Error)
	assert.Equal(t, "fixed-id", preset.ID)
}

func TestProductSerializesGalleryAndSpecs(t *testing.T) {
	gdb := openTestDB(t)

	product := Product{
		Name:    "螺杆式冷水机组",
		Gallery: []string{"/a.jpg", "/b.jpg"},
		Specs:   map[string]string{"制冷量": "500kW"},
	}
	require.NoError(t, gdb.Create(&product).Error)

	var loaded Product
	require.NoError(t, gdb.First(&loaded, "id = ?", product.ID).Error)
	assert.Equal(t, product.Gallery, loaded.Gallery)
	assert.Equal(t, "500kW", loaded.Specs["制冷量"])
}

func TestEnsureAdminCreatesOnce(t *testing.T) {
	gdb := openTestDB(t)

	created, err := EnsureAdmin(gdb, " root ", "s3cret-pass", "root@example.com")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = EnsureAdmin(gdb, "root", "other-pass", "")
	require.NoError(t, err)
	assert.False(t, created)

	var user AdminUser
	require.NoError(t, gdb.Where("username = ?", "root").First(&user).Error)
	assert.Equal(t, RoleAdmin, user.Role)
	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret-pass")))
}

func TestEnsureAdminSkipsBlankCredentials(t *testing.T) {
	created, err := EnsureAdmin(nil, "", "", "")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Options{Driver: "oracle"})
	assert.Error(t, err)

	_, err = Open(Options{Driver: "postgres"})
	assert.Error(t, err)
}
