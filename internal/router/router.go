package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/corpsite/internal/auth"
	"github.com/corpsite/internal/config"
	"github.com/corpsite/internal/db"
	"github.com/corpsite/internal/handler"
	"github.com/corpsite/internal/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sessionName = "corpsite_session"

// Deps 是构建路由所需的依赖，Logger 与 Metrics 可为空。
type Deps struct {
	Config  config.AppConfig
	DB      *gorm.DB
	Logger  *zap.Logger
	Metrics *metrics.Collector
}

// SetupRouter 配置 Gin 引擎、中间件和路由
func SetupRouter(deps Deps) *gin.Engine {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	collector := deps.Metrics
	if collector == nil {
		collector = metrics.New()
	}

	r := gin.New()
	r.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger, true))
	r.Use(collector.Middleware())
	r.Use(cors.New(corsConfig(cfg.CORSAllowOrigins)))

	// 会话仅用于访客留言限流
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 86400, HttpOnly: true, Secure: cfg.AuthCookieSecure, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))

	// 上传文件，/uploads 为兼容旧链接的别名
	uploadURL := strings.TrimRight(cfg.UploadURLPath, "/")
	if uploadURL == "" {
		uploadURL = "/static/uploads"
	}
	r.Static(uploadURL, cfg.UploadDir)
	if uploadURL != "/uploads" {
		r.Static("/uploads", cfg.UploadDir)
	}

	api := handler.NewAPI(deps.DB, auth.NewManager(cfg.JWTSecret, cfg.JWTExpiresIn), logger, handler.Options{
		UploadDir:       cfg.UploadDir,
		UploadURL:       uploadURL,
		UploadMaxBytes:  cfg.UploadMaxBytes,
		CookieSecure:    cfg.AuthCookieSecure,
		ContactThrottle: cfg.ContactThrottle,
	})

	r.GET("/ping", api.Ping)
	r.GET("/healthz", api.HealthCheck)
	r.GET("/metrics", gin.WrapH(collector.Handler()))

	public := r.Group("/api")
	adminAuth := public.Group("/admin/auth")
	{
		adminAuth.POST("/login", api.Login)
		adminAuth.POST("/logout", api.Logout)
	}

	// 需要认证的后台路由
	admin := public.Group("/admin", api.AuthRequired())
	{
		admin.GET("/auth/me", api.Me)
		admin.PUT("/auth/password", api.ChangePassword)
		admin.GET("/dashboard", api.Dashboard)
		admin.POST("/uploads", api.UploadFile)

		users := admin.Group("/users", handler.RequireRole(db.RoleAdmin))
		{
			users.GET("", api.ListUsers)
			users.GET("/:id", api.GetUser)
			users.POST("", api.CreateUser)
			users.PUT("/:id", api.UpdateUser)
			users.DELETE("/:id", api.DeleteUser)
		}
	}

	loader := moduleLoader{
		engine:    r,
		routes:    moduleRoutes{public: public, admin: admin},
		api:       api,
		enabled:   cfg.ModuleEnabled,
		logger:    logger,
		collector: collector,
	}
	loader.mount(defaultModules())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handler.Envelope{Code: http.StatusNotFound, Msg: "接口不存在"})
	})

	return r
}

// corsConfig 在配置为 * 时放开所有来源但不携带凭证；
// 需要 cookie 登录的后台前端必须在 CORS_ALLOW_ORIGINS 中显式列出。
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Location"},
		MaxAge:        12 * time.Hour,
	}

	cleaned := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			cleaned = nil
			break
		}
		if origin != "" {
			cleaned = append(cleaned, origin)
		}
	}
	if len(cleaned) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = cleaned
	cfg.AllowCredentials = true
	return cfg
}
