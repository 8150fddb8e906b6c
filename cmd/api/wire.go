//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 修改本文件后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
//
// 依赖链(自底向上):
// *gorm.DB → Repository → 领域Service → UseCase → Handler → *gin.Engine
//
// leaky/optimized两种变体共用同一张依赖图,差异全部由*config.Config决定:
// RatingLoader/LineLoader选择逐条还是批量查询,cache.New选择缓存后端,
// CheckoutUseCase决定是否开启事务。

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookstore-perflab/internal/application/book"
	appcart "github.com/xiebiao/bookstore-perflab/internal/application/cart"
	apphealth "github.com/xiebiao/bookstore-perflab/internal/application/health"
	apporder "github.com/xiebiao/bookstore-perflab/internal/application/order"
	apprec "github.com/xiebiao/bookstore-perflab/internal/application/recommendation"
	"github.com/xiebiao/bookstore-perflab/internal/domain/book"
	"github.com/xiebiao/bookstore-perflab/internal/domain/user"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/cache"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/persistence/sqlstore"
	"github.com/xiebiao/bookstore-perflab/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-perflab/internal/interface/http/router"
)

// infrastructureSet 基础设施:数据库连接、推荐缓存
var infrastructureSet = wire.NewSet(
	provideDB,
	cache.New, // 按cache.backend选择memory/bounded/redis
)

// repositorySet 仓储层
var repositorySet = wire.NewSet(
	sqlstore.NewUserRepository,
	sqlstore.NewBookRepository,
	sqlstore.NewReviewRepository,
	sqlstore.NewCartRepository,
	sqlstore.NewOrderRepository,
	sqlstore.NewTxManager,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appbook.NewRatingLoader,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewSearchBooksUseCase,
	appcart.NewLineLoader,
	appcart.NewAddToCartUseCase,
	appcart.NewViewCartUseCase,
	apporder.NewCheckoutUseCase,
	apprec.NewScorer,
	apprec.NewRecommendUseCase,
	apphealth.NewCheckUseCase,
)

// handlerSet HTTP处理器和路由
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewCartHandler,
	handler.NewOrderHandler,
	handler.NewRecommendationHandler,
	handler.NewHealthHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// InitializeApp 组装整个应用
// cfg和zl由main创建(logger需要在依赖图之前替换全局Logger)
// 返回的cleanup按创建的逆序关闭缓存和数据库连接
func InitializeApp(cfg *config.Config, zl *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
	)
	return nil, nil, nil
}
