// Package http HTTP接口层：路由、中间件、处理器
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-backend/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-backend/pkg/response"
	"github.com/xiebiao/bookstore-backend/pkg/validator"
)

// Handlers 所有HTTP处理器
type Handlers struct {
	User      *handler.UserHandler
	Book      *handler.BookHandler
	Publisher *handler.PublisherHandler
	Author    *handler.AuthorHandler
	Genre     *handler.GenreHandler
	Review    *handler.ReviewHandler
	Order     *handler.OrderHandler
	Lookup    *handler.LookupHandler
}

// NewRouter 创建并配置Gin引擎
// 中间件顺序：Recovery → Logger(请求ID) → CORS → Metrics → 路由级认证
func NewRouter(cfg *config.Config, log *zap.Logger, h *Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	validator.Register()

	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.Logger(log))
	if cfg.CORS.Enabled {
		// 全局中间件同样作用于未注册的OPTIONS路由(404 handlers)
		r.Use(middleware.CORS(cfg.CORS))
	}
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Swagger文档 http://localhost:8080/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// 用户模块（注册、登录、刷新不需要登录）
	users := v1.Group("/users")
	{
		users.POST("/register", h.User.Register)
		users.POST("/login", h.User.Login)
		users.POST("/refresh", h.User.Refresh)
		users.POST("/logout", auth.RequireAuth(), h.User.Logout)
	}

	// 其余接口都需要登录
	authorized := v1.Group("")
	authorized.Use(auth.RequireAuth())

	books := authorized.Group("/books")
	{
		books.GET("", h.Book.List)
		books.POST("", h.Book.Create)
		books.GET("/:id", h.Book.Get)
		books.PUT("/:id", h.Book.Update)
		books.PATCH("/:id", h.Book.Patch)
		books.DELETE("/:id", h.Book.Delete)
		books.GET("/:id/cover", h.Book.GetCover)
		books.PUT("/:id/cover", h.Book.UploadCover)
		books.GET("/:id/reviews", h.Book.ListReviews)
	}

	publishers := authorized.Group("/publishers")
	{
		publishers.GET("", h.Publisher.List)
		publishers.POST("", h.Publisher.Create)
		publishers.GET("/:id", h.Publisher.Get)
		publishers.PUT("/:id", h.Publisher.Update)
		publishers.PATCH("/:id", h.Publisher.Patch)
		publishers.DELETE("/:id", h.Publisher.Delete)
	}

	authors := authorized.Group("/authors")
	{
		authors.GET("", h.Author.List)
		authors.POST("", h.Author.Create)
		authors.GET("/:id", h.Author.Get)
		authors.PUT("/:id", h.Author.Update)
		authors.PATCH("/:id", h.Author.Patch)
		authors.DELETE("/:id", h.Author.Delete)
	}

	genres := authorized.Group("/genres")
	{
		genres.GET("", h.Genre.List)
		genres.POST("", h.Genre.Create)
		genres.GET("/:id", h.Genre.Get)
		genres.PUT("/:id", h.Genre.Update)
		genres.PATCH("/:id", h.Genre.Patch)
		genres.DELETE("/:id", h.Genre.Delete)
	}

	reviews := authorized.Group("/reviews")
	{
		reviews.GET("", h.Review.List)
		reviews.POST("", h.Review.Create)
		reviews.GET("/:id", h.Review.Get)
		reviews.PUT("/:id", h.Review.Update)
		reviews.PATCH("/:id", h.Review.Patch)
		reviews.DELETE("/:id", h.Review.Delete)
	}

	orders := authorized.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id", h.Order.Update)
		orders.PATCH("/:id", h.Order.Patch)
		orders.DELETE("/:id", h.Order.Delete)
		orders.GET("/:id/total", h.Order.Total)
	}

	authorized.GET("/catalog/search", h.Lookup.Search)

	return r
}
