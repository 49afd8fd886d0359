// Package router 组装gin引擎:全局中间件、文档、健康检查与/api/v1路由
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/bookshelf/docs" // 注册swagger文档
	"github.com/xiebiao/bookshelf/internal/domain/permission"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// Handlers 所有HTTP处理器
type Handlers struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Book     *handler.BookHandler
	Review   *handler.ReviewHandler
	Order    *handler.OrderHandler
}

// New 创建并配置gin引擎
func New(cfg *config.Config, h *Handlers, auth *middleware.AuthMiddleware, limiter *middleware.IPRateLimiter) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	metrics.InitMetrics()

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		cors.New(corsConfig(cfg.CORS)),
	)

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 文档:/swagger/index.html 与 /redoc/ 读取同一份 /swagger/doc.json
	r.GET("/swagger/*any", swaggerHandler())
	r.GET("/redoc/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(redocPage))
	})

	v1 := r.Group("/api/v1")
	v1.Use(auth.Authenticate())
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register/", h.Auth.Register)
			authGroup.POST("/token/", middleware.RateLimit(limiter), h.Auth.Token)
			authGroup.POST("/token/refresh/", h.Auth.Refresh)
			authGroup.POST("/logout/", middleware.Permit(permission.IsAuthenticated()), h.Auth.Logout)
		}

		// 目录:所有人可读,管理员可写
		categories := v1.Group("/categories")
		categories.Use(middleware.Permit(permission.AdminOrReadOnly()))
		{
			categories.GET("/", h.Category.List)
			categories.POST("/", h.Category.Create)
			categories.GET("/:id/", h.Category.Get)
			categories.PUT("/:id/", h.Category.Update)
			categories.PATCH("/:id/", h.Category.Patch)
			categories.DELETE("/:id/", h.Category.Delete)
		}

		books := v1.Group("/books")
		books.Use(middleware.Permit(permission.AdminOrReadOnly()))
		{
			books.GET("/", h.Book.List)
			books.POST("/", h.Book.Create)
			books.GET("/:id/", h.Book.Get)
			books.PUT("/:id/", h.Book.Update)
			books.PATCH("/:id/", h.Book.Patch)
			books.DELETE("/:id/", h.Book.Delete)
			books.GET("/:id/reviews/", h.Review.ListByBook)
		}

		// 评价的权限依赖目标记录(购买记录、所有者),在用例中检查
		reviews := v1.Group("/reviews")
		{
			reviews.GET("/", h.Review.List)
			reviews.POST("/", h.Review.Create)
			reviews.GET("/:id/", h.Review.Get)
			reviews.PUT("/:id/", h.Review.Update)
			reviews.PATCH("/:id/", h.Review.Patch)
			reviews.DELETE("/:id/", h.Review.Delete)
		}

		orders := v1.Group("/orders")
		orders.Use(middleware.Permit(permission.IsAuthenticated()))
		{
			orders.GET("/", h.Order.List)
			orders.POST("/", h.Order.Create)
			orders.GET("/:id/", h.Order.Get)
			orders.DELETE("/:id/", middleware.Permit(permission.IsAdminUser()), h.Order.Delete)
			orders.PATCH("/:id/update_status/", middleware.Permit(permission.IsAdminUser()), h.Order.UpdateStatus)
		}
	}

	return r
}

// corsConfig 包含"*"时允许任意来源(此时不能携带凭证)
func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range cfg.AllowOrigins {
		if origin == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	if len(cfg.AllowOrigins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = cfg.AllowOrigins
	c.AllowCredentials = true
	return c
}

// swaggerHandler /swagger/ 跳转到 /swagger/index.html
func swaggerHandler() gin.HandlerFunc {
	serve := ginSwagger.WrapHandler(swaggerFiles.Handler)
	return func(c *gin.Context) {
		if c.Param("any") == "/" {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
			return
		}
		serve(c)
	}
}

const redocPage = `<!DOCTYPE html>
<html>
  <head>
    <title>Bookshelf API - ReDoc</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>body { margin: 0; padding: 0; }</style>
  </head>
  <body>
    <redoc spec-url="/swagger/doc.json"></redoc>
    <script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
  </body>
</html>
`
