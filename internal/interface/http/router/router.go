// Package router 组装gin引擎:中间件、业务路由以及按配置挂载的/metrics、/swagger
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/bookstore-perflab/docs" // 注册swagger文档
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-perflab/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-perflab/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-perflab/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookstore-perflab/pkg/errors"
	"github.com/xiebiao/bookstore-perflab/pkg/response"
)

// Handlers 路由需要的全部处理器
// wire通过wire.Struct整体注入
type Handlers struct {
	Book           *handler.BookHandler
	Cart           *handler.CartHandler
	Order          *handler.OrderHandler
	Recommendation *handler.RecommendationHandler
	Health         *handler.HealthHandler
}

// New 创建Gin引擎并注册路由
//
// 路由保持压测脚本使用的路径不变(/api/books而不是/api/v1/books)。
// 默认只暴露业务路由,/metrics和/swagger需要在配置中显式开启。
func New(cfg *config.Config, h *Handlers) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	}
	dto.Setup()

	r := gin.New()
	// 中间件顺序:Recovery最外层,Tracing先于日志,日志才能拿到trace_id
	r.Use(
		middleware.Recovery(),
		middleware.Tracing(),
		middleware.RequestLogger(),
	)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
	if cfg.Server.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.ErrNotFound)
	})

	r.GET("/health", h.Health.Health)

	api := r.Group("/api")
	{
		books := api.Group("/books")
		{
			books.GET("", h.Book.ListBooks)
			books.POST("", h.Book.CreateBook)
			books.GET("/:id", h.Book.GetBook)
		}

		api.GET("/search", h.Book.SearchBooks)
		api.GET("/recommendations", h.Recommendation.Recommend)

		cart := api.Group("/cart")
		{
			cart.POST("/add", h.Cart.AddToCart)
			cart.GET("", h.Cart.ViewCart)
		}

		api.POST("/checkout", h.Order.Checkout)
	}

	return r
}
