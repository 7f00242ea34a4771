package router

import (
	"fmt"

	"github.com/corpsite/internal/handler"
	"github.com/corpsite/internal/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// moduleRoutes 为模块提供公开与后台两个路由组。
type moduleRoutes struct {
	public *gin.RouterGroup
	admin  *gin.RouterGroup
}

type moduleEntry struct {
	name     string
	register func(routes moduleRoutes, api *handler.API) error
}

type crudHandlers struct {
	list, get, create, update, remove gin.HandlerFunc
}

// defaultModules 是内容模块的静态配置，按顺序挂载。
func defaultModules() []moduleEntry {
	return []moduleEntry{
		{name: "about", register: registerAbout},
		{name: "home", register: registerHome},
		{name: "contact", register: registerContact},
		{name: "news", register: registerNews},
		{name: "products", register: registerProducts},
		{name: "cases", register: registerCases},
		{name: "materials", register: registerMaterials},
		{name: "testimonials", register: registerTestimonials},
	}
}

type moduleLoader struct {
	engine    *gin.Engine
	routes    moduleRoutes
	api       *handler.API
	enabled   func(name string) bool
	logger    *zap.Logger
	collector *metrics.Collector
}

// mount 依次挂载模块，单个模块失败只记录日志，不影响其余模块。
func (l moduleLoader) mount(entries []moduleEntry) []string {
	mounted := make([]string, 0, len(entries))
	for _, entry := range entries {
		if l.enabled != nil && !l.enabled(entry.name) {
			l.logger.Info("module disabled", zap.String("module", entry.name))
			l.collector.SetModule(entry.name, false)
			continue
		}

		before := len(l.engine.Routes())
		if err := l.register(entry); err != nil {
			l.logger.Error("module mount failed", zap.String("module", entry.name), zap.Error(err))
			l.collector.SetModule(entry.name, false)
			continue
		}

		l.logger.Info("module mounted",
			zap.String("module", entry.name),
			zap.Int("routes", len(l.engine.Routes())-before),
		)
		l.collector.SetModule(entry.name, true)
		mounted = append(mounted, entry.name)
	}
	return mounted
}

// register 调用模块的注册函数，gin 在路由冲突时会 panic，这里转成错误。
func (l moduleLoader) register(entry moduleEntry) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("register panicked: %v", recovered)
		}
	}()
	if entry.register == nil {
		return fmt.Errorf("module %s has no register function", entry.name)
	}
	return entry.register(l.routes, l.api)
}

func mountCRUD(group *gin.RouterGroup, path string, h crudHandlers) {
	g := group.Group(path)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func registerAbout(routes moduleRoutes, api *handler.API) error {
	routes.public.GET("/about", api.PublicAbout)
	routes.public.GET("/about/:id", api.PublicAboutDetail)
	mountCRUD(routes.admin, "/about", crudHandlers{api.ListAbout, api.GetAbout, api.CreateAbout, api.UpdateAbout, api.DeleteAbout})
	return nil
}

func registerHome(routes moduleRoutes, api *handler.API) error {
	routes.public.GET("/home", api.PublicHome)
	mountCRUD(routes.admin, "/home", crudHandlers{api.ListHomeBlocks, api.GetHomeBlock, api.CreateHomeBlock, api.UpdateHomeBlock, api.DeleteHomeBlock})
	return nil
}

func registerContact(routes moduleRoutes, api *handler.API) error {
	routes.public.GET("/contact", api.PublicContacts)
	routes.public.POST("/contact/messages", api.SubmitContactMessage)

	messages := routes.admin.Group("/contact/messages")
	messages.GET("", api.ListContactMessages)
	messages.GET("/:id", api.GetContactMessage)
	messages.PUT("/:id/read", api.MarkContactMessageRead)
	messages.DELETE("/:id", api.DeleteContactMessage)

	mountCRUD(routes.admin, "/contact", crudHandlers{api.ListContacts, api.GetContact, api.CreateContact, api.UpdateContact, api.DeleteContact})
	return nil
}

func registerNews(routes moduleRoutes, api *handler.API) error {
	routes.public.GET("/news", api.PublicNews)
	routes.public.GET("/news/:id", api.PublicNewsDetail)
	mountCRUD(routes.admin, "/news", crudHandlers{api.ListNews, api.GetNews, api.CreateNews, api.UpdateNews, api.DeleteNews})
	return nil
}

func registerProducts(routes moduleRoutes, api *handler.API) error {
	routes.public.GET("/products", api.PublicProducts)
	routes.public.GET("/products/categories", api.ProductCategories)
	routes.public.GET("/products/:id", api.PublicProductDetail)
	mountCRUD(routes.admin, "/products", crudHandlers{api.ListProducts, api.GetProduct, api.CreateProduct, api.UpdateProduct, api.DeleteProduct})
	return nil
}

func registerCases(routes moduleRoutes, api *handler.API) error {
	routes.public.GET("/cases", api.PublicCases)
	routes.public.GET("/cases/:id", api.PublicCaseDetail)
	mountCRUD(routes.admin, "/cases", crudHandlers{api.ListCases, api.GetCase, api.CreateCase, api.UpdateCase, api.DeleteCase})
	return nil
}

func registerMaterials(routes moduleRoutes, api *handler.API) error {
	routes.public.GET("/materials", api.PublicMaterials)
	routes.public.GET("/materials/:id/download", api.DownloadMaterial)
	mountCRUD(routes.admin, "/materials", crudHandlers{api.ListMaterials, api.GetMaterial, api.CreateMaterial, api.UpdateMaterial, api.DeleteMaterial})
	return nil
}

func registerTestimonials(routes moduleRoutes, api *handler.API) error {
	routes.public.GET("/testimonials", api.PublicTestimonials)
	mountCRUD(routes.admin, "/testimonials", crudHandlers{api.ListTestimonials, api.GetTestimonial, api.CreateTestimonial, api.UpdateTestimonial, api.DeleteTestimonial})
	return nil
}
