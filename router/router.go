package router

import (
	"net/http"
	"time"

	"ledgerconsole/api"
	"ledgerconsole/backend"
	"ledgerconsole/config"
	_ "ledgerconsole/docs"
	"ledgerconsole/guard"
	"ledgerconsole/logger"
	"ledgerconsole/metrics"
	"ledgerconsole/middleware"
	"ledgerconsole/sequence"
	"ledgerconsole/session"
	"ledgerconsole/token"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/unrolled/secure"
)

// Deps 路由依赖
type Deps struct {
	Client   *backend.Client
	Sessions *session.Manager
	Guard    *guard.Guard
	Decoder  *token.Decoder
	Tracker  *sequence.Tracker
	Metrics  *metrics.Metrics
	Tree     api.TreeOptions
	Log      *logrus.Logger
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(deps.Log))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}
	r.Use(SecureHeaders(cfg.Server.Mode))
	r.Use(CORSMiddleware(cfg.Server.CORSOrigins))

	// 登录、登出
	authHandler := api.NewAuthHandler(deps.Client, deps.Sessions, deps.Decoder, deps.Log)
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimit(10, time.Minute), authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	// 受保护接口：每个请求都重新校验会话
	console := r.Group("/console")
	console.Use(middleware.AuthGuard(deps.Sessions, deps.Guard))
	{
		consoleHandler := api.NewConsoleHandler(cfg.Sidebar)
		console.GET("/session", consoleHandler.Session)
		console.GET("/sidebar", consoleHandler.Sidebar)

		menuHandler := api.NewMenuHandler(deps.Client, deps.Sessions, deps.Tree, deps.Log)
		console.GET("/navigation", menuHandler.Navigation)
		console.GET("/menus", middleware.RequireRoute("menus"), menuHandler.List)
		console.GET("/menus/parents", middleware.RequireRoute("menus"), menuHandler.Parents)
		console.POST("/menus", middleware.RequireRoute("menus/create"), menuHandler.Create)

		roleHandler := api.NewRoleHandler(deps.Client, deps.Sessions, deps.Tree, deps.Log)
		console.GET("/roles", middleware.RequireRoute("roles"), roleHandler.List)
		console.POST("/roles", middleware.RequireRoute("roles/create"), roleHandler.Create)
		console.GET("/roles/:name/menus", middleware.RequireRoute("roles"), roleHandler.Menus)

		coaHandler := api.NewCoaHandler(deps.Client, deps.Sessions, api.TreeOptions{Orphans: deps.Tree.Orphans}, deps.Log)
		console.GET("/coa/tree", middleware.RequireRoute("coa"), coaHandler.Tree)
		console.GET("/coa/export", middleware.RequireRoute("coa"), coaHandler.Export)
		console.POST("/coa", middleware.RequireRoute("coa/create"), coaHandler.Create)

		var onStale func()
		if deps.Metrics != nil {
			onStale = deps.Metrics.StaleResponsesTotal.Inc
		}
		resourceHandler := api.NewResourceHandler(deps.Client, deps.Sessions, deps.Tracker, onStale, deps.Log)
		resources := console.Group("/r/:resource", middleware.RequireResource())
		{
			resources.GET("", resourceHandler.List)
			resources.POST("", resourceHandler.Create)
			resources.GET("/:id", resourceHandler.Detail)
			resources.PUT("/:id", resourceHandler.Update)
			resources.DELETE("/:id", resourceHandler.Delete)
		}
	}

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件，只对白名单内的 Origin 放行（需携带 cookie）
func CORSMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, accept, origin, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
			c.Writer.Header().Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SecureHeaders 安全响应头；非 release 模式下不做 HTTPS 跳转与 HSTS
func SecureHeaders(mode string) gin.HandlerFunc {
	s := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:      mode != gin.ReleaseMode,
	})
	return func(c *gin.Context) {
		if err := s.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		// secure 已写出重定向
		if status := c.Writer.Status(); status > 300 && status < 399 {
			c.Abort()
			return
		}
		c.Next()
	}
}
