package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tlsy/handicrafts/internal/interfaces/http/dto"
	"github.com/tlsy/handicrafts/internal/interfaces/http/handler"
	"github.com/tlsy/handicrafts/internal/interfaces/http/middleware"
)

// Handlers bundles everything the storefront mounts
type Handlers struct {
	Storefront *handler.StorefrontHandler
	Product    *handler.ProductHandler
	Image      *handler.ImageHandler
	Contact    *handler.ContactHandler
	Profile    *handler.ProfileHandler
	Social     *handler.SocialHandler
	Analytics  *handler.AnalyticsHandler
	Auth       *handler.AuthHandler
	Health     *handler.HealthHandler
	// Media is set only when uploads are kept in memory
	Media *handler.MediaHandler
	// AdminPages is the HTML admin panel; optional
	AdminPages *handler.AdminPageHandler
}

// Options holds the middleware the routes depend on
type Options struct {
	APIVersion string
	// APIMiddleware runs on every API route, e.g. locale resolution
	APIMiddleware []gin.HandlerFunc
	// AdminAuth guards the admin API
	AdminAuth gin.HandlerFunc
	// LoginRateLimit throttles login and refresh; optional
	LoginRateLimit gin.HandlerFunc
	// AdminPageAuth guards the admin panel pages
	AdminPageAuth gin.HandlerFunc
}

// Mount registers the storefront pages, the JSON API and the support routes
func Mount(engine *gin.Engine, h Handlers, opts Options) {
	if opts.APIVersion == "" {
		opts.APIVersion = "v1"
	}

	engine.GET("/health", h.Health.Health)
	engine.StaticFS("/static", handler.StaticFS())
	if h.Media != nil {
		engine.GET("/media/:bucket/*key", h.Media.Serve)
	}

	r := NewRouter(engine, WithAPIVersion(opts.APIVersion))
	r.Use(opts.APIMiddleware...)
	r.Register(publicRoutes(h)).
		Register(authRoutes(h, opts)).
		Register(adminRoutes(h, opts))
	r.Setup()

	if h.AdminPages != nil {
		mountAdminPages(engine, h.AdminPages, opts)
	}
	mountStorefront(engine, h.Storefront)

	apiPrefix := r.Prefix() + "/"
	engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, apiPrefix) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeNotFound, "Route not found", c.GetString(middleware.RequestIDKey)))
			return
		}
		h.Storefront.NotFound(c)
	})
}

func publicRoutes(h Handlers) *DomainGroup {
	public := NewDomainGroup("public", "")

	public.GET("/products", h.Product.ListPublic).
		GET("/products/featured", h.Product.ListFeatured).
		GET("/products/:id", h.Product.GetPublic)

	public.GET("/profile", h.Profile.Get)

	public.GET("/social-links", h.Social.ListActive).
		GET("/social-links/shopee", h.Social.Shopee)

	public.POST("/contact", h.Contact.Submit)

	public.POST("/analytics/page-views", h.Analytics.RecordPageView).
		POST("/analytics/events", h.Analytics.RecordEvent)

	return public
}

func authRoutes(h Handlers, opts Options) *DomainGroup {
	return NewDomainGroup("auth", "/admin").
		Use(opts.LoginRateLimit).
		POST("/login", h.Auth.Login).
		POST("/refresh", h.Auth.Refresh)
}

func adminRoutes(h Handlers, opts Options) *DomainGroup {
	admin := NewDomainGroup("admin", "/admin").Use(opts.AdminAuth)

	admin.POST("/logout", h.Auth.Logout).
		GET("/dashboard", h.Analytics.Dashboard)

	admin.Group("products", "/products").
		GET("", h.Product.List).
		POST("", h.Product.Create).
		GET("/:id", h.Product.GetByID).
		PUT("/:id", h.Product.Update).
		DELETE("/:id", h.Product.Delete).
		POST("/:id/toggle-featured", h.Product.ToggleFeatured)

	admin.Group("images", "/images").
		POST("", h.Image.Upload).
		DELETE("", h.Image.Delete)

	admin.Group("messages", "/messages").
		GET("", h.Contact.List).
		POST("/:id/toggle-read", h.Contact.ToggleRead).
		DELETE("/:id", h.Contact.Delete)

	admin.GET("/profile", h.Profile.Get).
		PUT("/profile", h.Profile.Update)

	admin.Group("social-links", "/social-links").
		GET("", h.Social.List).
		POST("", h.Social.Create).
		PUT("/:id", h.Social.Update).
		DELETE("/:id", h.Social.Delete)

	return admin
}

func mountStorefront(engine *gin.Engine, s *handler.StorefrontHandler) {
	engine.GET("/", s.Root)

	pages := engine.Group("/:locale", s.RequireLocale())
	pages.GET("/", s.Home)
	pages.GET("/products", s.Products)
	pages.GET("/products/:id", s.Product)
	pages.GET("/about", s.About)
	pages.GET("/contact", s.Contact)
	pages.POST("/contact", s.SubmitContact)
	pages.GET("/shopee", s.Shopee)
}

func mountAdminPages(engine *gin.Engine, a *handler.AdminPageHandler, opts Options) {
	login := []gin.HandlerFunc{a.Login}
	if opts.LoginRateLimit != nil {
		login = append([]gin.HandlerFunc{opts.LoginRateLimit}, login...)
	}
	engine.GET("/admin/login", a.LoginPage)
	engine.POST("/admin/login", login...)

	pages := engine.Group("/admin")
	if opts.AdminPageAuth != nil {
		pages.Use(opts.AdminPageAuth)
	}
	pages.GET("", a.Dashboard)
	pages.POST("/logout", a.Logout)

	pages.GET("/products", a.Products)
	pages.GET("/products/new", a.NewProduct)
	pages.POST("/products/new", a.CreateProduct)
	pages.GET("/products/:id/edit", a.EditProduct)
	pages.POST("/products/:id/edit", a.UpdateProduct)
	pages.POST("/products/:id/toggle-featured", a.ToggleFeatured)
	pages.POST("/products/:id/delete", a.DeleteProduct)

	pages.GET("/messages", a.Messages)
	pages.POST("/messages/:id/toggle-read", a.ToggleRead)
	pages.POST("/messages/:id/delete", a.DeleteMessage)

	pages.GET("/profile", a.ProfilePage)
	pages.POST("/profile", a.UpdateProfile)
}
