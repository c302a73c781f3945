// Package folio is a personal marketing and blog site engine built with Go,
// Echo, and templ. It serves the public site, blog CRUD with a JSON API,
// syndication feeds, markdown mirrors for AI agents, a contact form, and an
// admin dashboard from a single binary backed by SQLite.
package folio

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jmaretta/folio/crawler"
)

// App is the central folio application. It wires together the store, cache,
// crawler tracker, handlers, and middleware.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Store   *Store
	Cache   *PostCache
	Tracker *crawler.Tracker

	loginLimiter   *LoginLimiter
	crawlerHandler *crawler.Handler
	customRoutes   []func(*App)
	staticDir      string
}

// New creates a folio App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, middleware, and routes, then starts
// the server. It blocks until the server stops.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("folio: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("folio: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("folio: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.Tracker = crawler.NewTracker(a.Config.CrawlerCapacity)
	a.crawlerHandler = crawler.NewHandler(a.Tracker, a.Config.StatsToken)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Static assets and site plumbing
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/llms.txt", a.handleLLMs)

	// Feeds. /feed.xml keeps its historic address, /api/rss serves all three
	// formats behind the format query param.
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/api/rss", a.handleFeed)

	// Public pages
	e.GET("/", a.handleHome)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/blog/:slug", a.handlePost)
	e.GET("/:slug", a.handleStaticPage)

	// Contact and crawler stats
	e.POST("/api/contact", a.handleContact)
	e.GET("/api/crawler-stats", a.crawlerHandler.GetStats)

	// Post CRUD API
	api := e.Group("/api/posts", a.requireAPIAuth)
	api.GET("", a.handleAPIListPosts)
	api.POST("", a.handleAPICreatePost)
	api.GET("/:slug", a.handleAPIGetPost)
	api.PATCH("/:slug", a.handleAPIUpdatePost)
	api.DELETE("/:slug", a.handleAPIDeletePost)

	// Admin dashboard
	e.GET("/admin", a.handleAdmin)
	e.POST("/admin/login", a.handleAdminLogin)
	e.POST("/admin/logout", handleAdminLogout)
	e.GET("/admin/post/:slug", a.handleAdminPost)
	e.POST("/admin/save", a.handleAdminSave)
	e.DELETE("/admin/post/:slug", a.handleAdminDelete)
	e.GET("/admin/images", a.handleImageList)
	e.POST("/admin/images/upload", a.handleImageUpload)
	e.DELETE("/admin/images/:filename", a.handleImageDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("folio: required environment variable %s is not set", key)
	}
	return v
}
