package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/corpsite/internal/config"
	"github.com/corpsite/internal/db"
	"github.com/corpsite/internal/db/dbtest"
	"github.com/corpsite/internal/handler"
	"github.com/corpsite/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func testConfig(t *testing.T) config.AppConfig {
	t.Helper()
	return config.AppConfig{
		JWTSecret:        "router-test-secret",
		JWTExpiresIn:     time.Hour,
		SessionSecret:    "router-session-secret",
		UploadDir:        t.TempDir(),
		UploadURLPath:    "/static/uploads",
		UploadMaxBytes:   1 << 20,
		CORSAllowOrigins: []string{"*"},
		ContactThrottle:  time.Minute,
	}
}

func setupTestRouter(t *testing.T, cfg config.AppConfig) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb := dbtest.Open(t)
	return SetupRouter(Deps{Config: cfg, DB: gdb}), gdb
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, payload any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "" && bytes.HasPrefix(w.Body.Bytes(), []byte("{")) {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func login(t *testing.T, r http.Handler, username, password string) string {
	t.Helper()
	w, env := doJSON(t, r, http.MethodPost, "/api/admin/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestSetupRouterServesUploadsAlias(t *testing.T) {
	cfg := testConfig(t)
	fileContent := []byte("hello uploads")
	require.NoError(t, os.WriteFile(filepath.Join(cfg.UploadDir, "example.txt"), fileContent, 0o644))

	r, _ := setupTestRouter(t, cfg)

	for _, path := range []string{"/uploads/example.txt", "/static/uploads/example.txt"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, string(fileContent), w.Body.String())
	}
}

func TestHealthEndpoints(t *testing.T) {
	r, _ := setupTestRouter(t, testConfig(t))

	w, env := doJSON(t, r, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.Code)

	w, env = doJSON(t, r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"up"}`, string(env.Data))

	w, env = doJSON(t, r, http.MethodGet, "/api/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, http.StatusNotFound, env.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "corpsite_http_requests_total")
	assert.Contains(t, w.Body.String(), `corpsite_module_mounted{module="news"} 1`)
}

func TestCORSCredentialsRequireListedOrigins(t *testing.T) {
	get := func(r http.Handler, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	open, _ := setupTestRouter(t, testConfig(t))
	w := get(open, "https://anywhere.example.com")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))

	cfg := testConfig(t)
	cfg.CORSAllowOrigins = []string{" https://admin.example.com ", ""}
	listed, _ := setupTestRouter(t, cfg)
	w = get(listed, "https://admin.example.com")
	assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = get(listed, "https://anywhere.example.com")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	assert.True(t, corsConfig([]string{"https://a.example.com", "*"}).AllowAllOrigins)
	assert.False(t, corsConfig(nil).AllowCredentials)
}

func TestAdminRoutesRequireAuthentication(t *testing.T) {
	r, _ := setupTestRouter(t, testConfig(t))

	for _, path := range []string{"/api/admin/news", "/api/admin/dashboard", "/api/admin/users", "/api/admin/auth/me"} {
		w, env := doJSON(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, http.StatusUnauthorized, env.Code, path)
	}

	w, _ := doJSON(t, r, http.MethodGet, "/api/admin/news", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminContentFlow(t *testing.T) {
	r, gdb := setupTestRouter(t, testConfig(t))
	_, err := db.EnsureAdmin(gdb, "admin", "admin-password", "admin@example.com")
	require.NoError(t, err)
	token := login(t, r, "admin", "admin-password")

	w, env := doJSON(t, r, http.MethodPost, "/api/admin/products", token, map[string]any{
		"name":       "磁悬浮冷水机组",
		"category":   "冷水机组",
		"isFeatured": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product db.Product
	require.NoError(t, json.Unmarshal(env.Data, &product))

	w, _ = doJSON(t, r, http.MethodPost, "/api/admin/products", token, map[string]any{"name": "磁悬浮冷水机组"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = doJSON(t, r, http.MethodPost, "/api/admin/cases", token, map[string]any{
		"title":      "会展中心",
		"productId":  product.ID,
		"isFeatured": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created db.EngineeringCase
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotNil(t, created.Product)

	w, _ = doJSON(t, r, http.MethodPost, "/api/admin/cases", token, map[string]any{"title": "x", "productId": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = doJSON(t, r, http.MethodPost, "/api/admin/news", token, map[string]any{"title": "公司乔迁", "content": "# 新址"})
	require.Equal(t, http.StatusCreated, w.Code)
	var news db.News
	require.NoError(t, json.Unmarshal(env.Data, &news))

	w, env = doJSON(t, r, http.MethodGet, "/api/news/"+news.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "contentHtml")

	w, env = doJSON(t, r, http.MethodGet, "/api/home", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var overview struct {
		FeaturedProducts []db.Product         `json:"featuredProducts"`
		FeaturedCases    []db.EngineeringCase `json:"featuredCases"`
		LatestNews       []db.News            `json:"latestNews"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &overview))
	assert.Len(t, overview.FeaturedProducts, 1)
	assert.Len(t, overview.FeaturedCases, 1)
	assert.Len(t, overview.LatestNews, 1)

	w, _ = doJSON(t, r, http.MethodDelete, "/api/admin/news/"+news.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodGet, "/api/news/"+news.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = doJSON(t, r, http.MethodGet, "/api/admin/news/"+news.ID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, "/api/admin/news/"+news.ID+"?permanent=true", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, env = doJSON(t, r, http.MethodDelete, "/api/admin/news/"+news.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, http.StatusNotFound, env.Code)

	w, env = doJSON(t, r, http.MethodGet, "/api/admin/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"products":{"total":1,"active":1}`)
}

func TestEditorCannotManageUsers(t *testing.T) {
	r, gdb := setupTestRouter(t, testConfig(t))
	_, err := db.EnsureAdmin(gdb, "admin", "admin-password", "")
	require.NoError(t, err)
	adminToken := login(t, r, "admin", "admin-password")

	w, _ := doJSON(t, r, http.MethodPost, "/api/admin/users", adminToken, map[string]string{
		"username": "writer",
		"password": "writer-password",
		"role":     "editor",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	editorToken := login(t, r, "writer", "writer-password")
	w, env := doJSON(t, r, http.MethodGet, "/api/admin/users", editorToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, http.StatusForbidden, env.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/admin/testimonials", editorToken, map[string]any{
		"authorName": "陈经理",
		"content":    "交付准时",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRevokedAccountLosesAccess(t *testing.T) {
	r, gdb := setupTestRouter(t, testConfig(t))
	_, err := db.EnsureAdmin(gdb, "root", "root-password", "")
	require.NoError(t, err)
	rootToken := login(t, r, "root", "root-password")

	w, env := doJSON(t, r, http.MethodPost, "/api/admin/users", rootToken, map[string]string{
		"username": "bob",
		"password": "bob-password",
		"role":     "admin",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var bob db.AdminUser
	require.NoError(t, json.Unmarshal(env.Data, &bob))
	bobToken := login(t, r, "bob", "bob-password")

	w, _ = doJSON(t, r, http.MethodGet, "/api/admin/users", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodPut, "/api/admin/users/"+bob.ID, rootToken, map[string]any{"role": "editor"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w, _ = doJSON(t, r, http.MethodGet, "/api/admin/users", bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = doJSON(t, r, http.MethodPost, "/api/admin/users", bobToken, map[string]string{
		"username": "mallory",
		"password": "mallory-password",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = doJSON(t, r, http.MethodGet, "/api/admin/news", bobToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodPut, "/api/admin/users/"+bob.ID, rootToken, map[string]any{"isActive": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w, env = doJSON(t, r, http.MethodGet, "/api/admin/news", bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, http.StatusForbidden, env.Code)

	w, _ = doJSON(t, r, http.MethodDelete, "/api/admin/users/"+bob.ID+"?permanent=true", rootToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w, env = doJSON(t, r, http.MethodPost, "/api/admin/news", bobToken, map[string]any{"title": "越权发布"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, http.StatusUnauthorized, env.Code)

	var count int64
	require.NoError(t, gdb.Model(&db.AdminUser{}).Where("username = ?", "mallory").Count(&count).Error)
	assert.Zero(t, count)
}

func TestPublicCasesHideRetiredProduct(t *testing.T) {
	r, gdb := setupTestRouter(t, testConfig(t))
	_, err := db.EnsureAdmin(gdb, "admin", "admin-password", "")
	require.NoError(t, err)
	token := login(t, r, "admin", "admin-password")

	w, env := doJSON(t, r, http.MethodPost, "/api/admin/products", token, map[string]any{
		"name":        "停产风冷模块机",
		"description": "内部资料",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product db.Product
	require.NoError(t, json.Unmarshal(env.Data, &product))

	w, env = doJSON(t, r, http.MethodPost, "/api/admin/cases", token, map[string]any{
		"title":      "地铁站空调",
		"productId":  product.ID,
		"isFeatured": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var item db.EngineeringCase
	require.NoError(t, json.Unmarshal(env.Data, &item))

	w, _ = doJSON(t, r, http.MethodDelete, "/api/admin/products/"+product.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, path := range []string{"/api/cases", "/api/home", "/api/cases/" + item.ID} {
		w, _ = doJSON(t, r, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), "地铁站空调", path)
		assert.NotContains(t, w.Body.String(), "停产风冷模块机", path)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/api/admin/cases", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "停产风冷模块机")
}

func TestDisabledModulesAreNotMounted(t *testing.T) {
	cfg := testConfig(t)
	cfg.DisabledModules = []string{"materials"}
	r, gdb := setupTestRouter(t, cfg)
	_, err := db.EnsureAdmin(gdb, "admin", "admin-password", "")
	require.NoError(t, err)
	token := login(t, r, "admin", "admin-password")

	w, _ := doJSON(t, r, http.MethodGet, "/api/materials", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = doJSON(t, r, http.MethodGet, "/api/admin/materials", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/testimonials", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestModuleLoaderContinuesAfterFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	engine := gin.New()
	group := engine.Group("/api")
	loader := moduleLoader{
		engine:    engine,
		routes:    moduleRoutes{public: group, admin: group.Group("/admin")},
		enabled:   func(name string) bool { return name != "skipped" },
		logger:    zap.New(core),
		collector: metrics.New(),
	}

	ok := func(routes moduleRoutes, _ *handler.API) error {
		routes.public.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
		return nil
	}
	mounted := loader.mount([]moduleEntry{
		{name: "first", register: ok},
		{name: "broken", register: func(moduleRoutes, *handler.API) error { return assert.AnError }},
		{name: "duplicate", register: ok},
		{name: "skipped", register: ok},
		{name: "last", register: func(routes moduleRoutes, _ *handler.API) error {
			routes.public.GET("/last", func(c *gin.Context) { c.Status(http.StatusOK) })
			return nil
		}},
	})

	assert.Equal(t, []string{"first", "last"}, mounted)
	assert.Equal(t, 2, logs.FilterMessage("module mounted").Len())
	assert.Equal(t, 2, logs.FilterMessage("module mount failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("module disabled").Len())

	first := logs.FilterMessage("module mounted").All()[0]
	assert.Equal(t, int64(1), first.ContextMap()["routes"])
}
