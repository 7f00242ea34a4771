package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corpsite/internal/db"
	"github.com/corpsite/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductDuplicateNameReturnsConflict(t *testing.T) {
	api := setupTestAPI(t)

	_, err := api.products.Create(service.ProductInput{Name: service.StringPtr("螺杆冷水机")})
	require.NoError(t, err)

	w := callHandler(t, api.CreateProduct, newJSONRequest(t, http.MethodPost, "/api/admin/products",
		map[string]any{"name": "螺杆冷水机"}))
	assert.Equal(t, http.StatusConflict, w.Code)
	env := decodeEnvelope(t, w, nil)
	assert.Equal(t, http.StatusConflict, env.Code)
	assert.Equal(t, "产品名称已存在", env.Msg)
}

func TestCreateThenGetProductRoundTrip(t *testing.T) {
	api := setupTestAPI(t)

	w := callHandler(t, api.CreateProduct, newJSONRequest(t, http.MethodPost, "/api/admin/products", map[string]any{
		"name":     "风机盘管",
		"category": "末端设备",
		"specs":    map[string]string{"风量": "680m³/h"},
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created db.Product
	assert.Equal(t, 0, decodeEnvelope(t, w, &created).Code)
	require.NotEmpty(t, created.ID)

	w = callHandler(t, api.GetProduct, httptest.NewRequest(http.MethodGet, "/", nil), gin.Param{Key: "id", Value: created.ID})
	require.Equal(t, http.StatusOK, w.Code)
	var fetched db.Product
	decodeEnvelope(t, w, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Name, fetched.Name)
	assert.Equal(t, created.Specs, fetched.Specs)
	assert.Equal(t, created.Category, fetched.Category)
}

func TestPublicProductDetailIncludesRelatedCases(t *testing.T) {
	api := setupTestAPI(t)

	product, err := api.products.Create(service.ProductInput{
		Name:        service.StringPtr("蒸发冷凝机组"),
		Description: service.StringPtr("**高效** <script>alert(1)</script>"),
	})
	require.NoError(t, err)
	_, err = api.cases.Create(service.CaseInput{Title: service.StringPtr("冷链仓库"), ProductID: &product.ID})
	require.NoError(t, err)
	_, err = api.cases.Create(service.CaseInput{Title: service.StringPtr("已下线"), ProductID: &product.ID, IsActive: service.BoolPtr(false)})
	require.NoError(t, err)

	w := callHandler(t, api.PublicProductDetail, httptest.NewRequest(http.MethodGet, "/", nil), gin.Param{Key: "id", Value: product.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var detail productDetail
	decodeEnvelope(t, w, &detail)
	assert.Contains(t, detail.ContentHTML, "<strong>高效</strong>")
	assert.NotContains(t, detail.ContentHTML, "<script>")
	require.Len(t, detail.RelatedCases, 1)
	assert.Equal(t, "冷链仓库", detail.RelatedCases[0].Title)

	_, err = api.products.Update(product.ID, service.ProductInput{IsActive: service.BoolPtr(false)})
	require.NoError(t, err)
	w = callHandler(t, api.PublicProductDetail, httptest.NewRequest(http.MethodGet, "/", nil), gin.Param{Key: "id", Value: product.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateCaseWithUnknownProduct(t *testing.T) {
	api := setupTestAPI(t)

	w := callHandler(t, api.CreateCase, newJSONRequest(t, http.MethodPost, "/api/admin/cases",
		map[string]any{"title": "地铁站", "productId": "missing"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeEnvelope(t, w, nil).Msg, "missing")
}

func TestCreateTestimonialRejectsRating(t *testing.T) {
	api := setupTestAPI(t)

	w := callHandler(t, api.CreateTestimonial, newJSONRequest(t, http.MethodPost, "/api/admin/testimonials",
		map[string]any{"authorName": "赵总", "content": "很好", "rating": 7}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeEnvelope(t, w, nil).Msg, "rating")

	w = callHandler(t, api.CreateTestimonial, newJSONRequest(t, http.MethodPost, "/api/admin/testimonials",
		map[string]any{"authorName": "赵总", "content": "很好", "rating": 4}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var item db.Testimonial
	decodeEnvelope(t, w, &item)
	assert.Equal(t, 4, item.Rating)
}

func TestDeleteMissingRecordsReturnNotFound(t *testing.T) {
	api := setupTestAPI(t)

	handlers := map[string]gin.HandlerFunc{
		"about":        api.DeleteAbout,
		"home":         api.DeleteHomeBlock,
		"contact":      api.DeleteContact,
		"news":         api.DeleteNews,
		"products":     api.DeleteProduct,
		"cases":        api.DeleteCase,
		"materials":    api.DeleteMaterial,
		"testimonials": api.DeleteTestimonial,
	}
	for name, h := range handlers {
		w := callHandler(t, h, httptest.NewRequest(http.MethodDelete, "/?permanent=true", nil), gin.Param{Key: "id", Value: "nope"})
		assert.Equal(t, http.StatusNotFound, w.Code, name)
		assert.Equal(t, http.StatusNotFound, decodeEnvelope(t, w, nil).Code, name)
	}
}

func TestUpdateNewsPreservesOmittedFields(t *testing.T) {
	api := setupTestAPI(t)

	item, err := api.news.Create(service.NewsInput{
		Title:    service.StringPtr("年度总结"),
		Author:   service.StringPtr("总经办"),
		Category: service.StringPtr("公司新闻"),
	})
	require.NoError(t, err)

	w := callHandler(t, api.UpdateNews, newJSONRequest(t, http.MethodPut, "/", map[string]any{"title": "年度总结 2025"}),
		gin.Param{Key: "id", Value: item.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated db.News
	decodeEnvelope(t, w, &updated)
	assert.Equal(t, "年度总结 2025", updated.Title)
	assert.Equal(t, "总经办", updated.Author)
	assert.Equal(t, "公司新闻", updated.Category)
}

func TestPublicNewsDetailCountsViews(t *testing.T) {
	api := setupTestAPI(t)

	item, err := api.news.Create(service.NewsInput{Title: service.StringPtr("技术分享"), Content: service.StringPtr("## 小标题")})
	require.NoError(t, err)

	var detail newsDetail
	for i := 0; i < 2; i++ {
		w := callHandler(t, api.PublicNewsDetail, httptest.NewRequest(http.MethodGet, "/", nil), gin.Param{Key: "id", Value: item.ID})
		require.Equal(t, http.StatusOK, w.Code)
		decodeEnvelope(t, w, &detail)
	}
	assert.Equal(t, int64(2), detail.ViewCount)
	assert.Contains(t, detail.ContentHTML, "<h2")

	require.NoError(t, api.news.Delete(item.ID, false))
	w := callHandler(t, api.PublicNewsDetail, httptest.NewRequest(http.MethodGet, "/", nil), gin.Param{Key: "id", Value: item.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicListsHideInactive(t *testing.T) {
	api := setupTestAPI(t)

	_, err := api.about.Create(service.AboutInput{Title: service.StringPtr("公司简介"), Content: service.StringPtr("*专注暖通*")})
	require.NoError(t, err)
	_, err = api.about.Create(service.AboutInput{Title: service.StringPtr("隐藏"), IsActive: service.BoolPtr(false)})
	require.NoError(t, err)

	w := callHandler(t, api.PublicAbout, httptest.NewRequest(http.MethodGet, "/api/about?active=false", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var public service.ListResult[aboutView]
	decodeEnvelope(t, w, &public)
	require.Len(t, public.Items, 1)
	assert.Equal(t, "公司简介", public.Items[0].Title)
	assert.Contains(t, public.Items[0].ContentHTML, "<em>专注暖通</em>")

	w = callHandler(t, api.ListAbout, httptest.NewRequest(http.MethodGet, "/api/admin/about", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var admin service.ListResult[db.About]
	decodeEnvelope(t, w, &admin)
	assert.Equal(t, int64(2), admin.Total)
}

func TestDownloadMaterialRedirects(t *testing.T) {
	api := setupTestAPI(t)

	item, err := api.materials.Create(service.MaterialInput{
		Title:   service.StringPtr("产品样本"),
		FileURL: service.StringPtr("/static/uploads/catalog.pdf"),
	})
	require.NoError(t, err)

	w := callHandler(t, api.DownloadMaterial, httptest.NewRequest(http.MethodGet, "/", nil), gin.Param{Key: "id", Value: item.ID})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/static/uploads/catalog.pdf", w.Header().Get("Location"))

	stored, err := api.materials.Get(item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.DownloadCount)

	w = callHandler(t, api.DownloadMaterial, httptest.NewRequest(http.MethodGet, "/", nil), gin.Param{Key: "id", Value: "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListFilterParsing(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?q=chiller&active=true&featured=no&page=3&pageSize=20&category=a&productId=p1", nil)

	filter := parseListFilter(c)
	assert.Equal(t, "chiller", filter.Keyword)
	require.NotNil(t, filter.Active)
	assert.True(t, *filter.Active)
	assert.Nil(t, filter.Featured)
	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 20, filter.PageSize)
	assert.Equal(t, "a", filter.Category)
	assert.Equal(t, "p1", filter.ProductID)
}

func TestDashboardCounts(t *testing.T) {
	api := setupTestAPI(t)

	_, err := api.contact.SubmitMessage(service.ContactMessageInput{Name: "访客", Message: "留言"})
	require.NoError(t, err)

	w := callHandler(t, api.Dashboard, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var summary service.DashboardSummary
	decodeEnvelope(t, w, &summary)
	assert.Equal(t, int64(1), summary.UnreadMessages)
	assert.Equal(t, int64(1), summary.Modules["messages"].Total)
}
