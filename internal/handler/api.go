package handler

import (
	"time"

	"github.com/corpsite/internal/auth"
	"github.com/corpsite/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options 是 handler 层依赖的运行参数，来自 config.AppConfig。
type Options struct {
	UploadDir       string
	UploadURL       string
	UploadMaxBytes  int64
	CookieSecure    bool
	ContactThrottle time.Duration
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db           *gorm.DB
	about        *service.AboutService
	home         *service.HomeService
	contact      *service.ContactService
	news         *service.NewsService
	products     *service.ProductService
	cases        *service.CaseService
	materials    *service.MaterialService
	testimonials *service.TestimonialService
	users        *service.AdminUserService
	dashboard    *service.DashboardService
	tokens       *auth.Manager
	logger       *zap.Logger

	uploadDir       string
	uploadURL       string
	uploadMaxBytes  int64
	cookieSecure    bool
	contactThrottle time.Duration
	now             func() time.Time
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, tokens *auth.Manager, logger *zap.Logger, opts Options) *API {
	registerValidators()

	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.UploadDir == "" {
		opts.UploadDir = "web/static/uploads"
	}
	if opts.UploadURL == "" {
		opts.UploadURL = "/static/uploads"
	}
	if opts.UploadMaxBytes <= 0 {
		opts.UploadMaxBytes = 20 << 20
	}

	return &API{
		db:              gdb,
		about:           service.NewAboutService(gdb),
		home:            service.NewHomeService(gdb),
		contact:         service.NewContactService(gdb),
		news:            service.NewNewsService(gdb),
		products:        service.NewProductService(gdb),
		cases:           service.NewCaseService(gdb),
		materials:       service.NewMaterialService(gdb),
		testimonials:    service.NewTestimonialService(gdb),
		users:           service.NewAdminUserService(gdb),
		dashboard:       service.NewDashboardService(gdb),
		tokens:          tokens,
		logger:          logger,
		uploadDir:       opts.UploadDir,
		uploadURL:       opts.UploadURL,
		uploadMaxBytes:  opts.UploadMaxBytes,
		cookieSecure:    opts.CookieSecure,
		contactThrottle: opts.ContactThrottle,
		now:             time.Now,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}
