//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改Provider后执行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/google/wire"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	appcategory "github.com/xiebiao/bookshelf/internal/application/category"
	apporder "github.com/xiebiao/bookshelf/internal/application/order"
	appreview "github.com/xiebiao/bookshelf/internal/application/review"
	appuser "github.com/xiebiao/bookshelf/internal/application/user"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/sqldb"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/internal/interface/http/router"
)

// infrastructureSet 数据库、Redis、JWT
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedis,
	provideJWTManager,
	providePasswordHasher,
	redis.NewTokenBlacklist,
)

// repositorySet 仓储与事务管理器
var repositorySet = wire.NewSet(
	sqldb.NewUserRepository,
	sqldb.NewProfileRepository,
	sqldb.NewCategoryRepository,
	sqldb.NewBookRepository,
	sqldb.NewReviewRepository,
	sqldb.NewOrderRepository,
	sqldb.NewTxManager,
	providePurchaseChecker,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewTokenUseCase,
	appuser.NewRefreshUseCase,
	appuser.NewLogoutUseCase,

	appcategory.NewListCategoriesUseCase,
	appcategory.NewGetCategoryUseCase,
	appcategory.NewCreateCategoryUseCase,
	appcategory.NewUpdateCategoryUseCase,
	appcategory.NewDeleteCategoryUseCase,

	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,

	appreview.NewListReviewsUseCase,
	appreview.NewGetReviewUseCase,
	appreview.NewCreateReviewUseCase,
	appreview.NewUpdateReviewUseCase,
	appreview.NewDeleteReviewUseCase,

	apporder.NewCreateOrderUseCase,
	apporder.NewListOrdersUseCase,
	apporder.NewGetOrderUseCase,
	apporder.NewUpdateStatusUseCase,
	apporder.NewDeleteOrderUseCase,
)

// interfaceSet 中间件、处理器与路由
var interfaceSet = wire.NewSet(
	middleware.NewAuthMiddleware,
	provideRateLimiter,
	handler.NewAuthHandler,
	handler.NewCategoryHandler,
	handler.NewBookHandler,
	handler.NewReviewHandler,
	handler.NewOrderHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
	provideServer,
)

// InitializeApp 组装整个应用
// 返回的cleanup按依赖的逆序关闭Redis与数据库连接
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		applicationSet,
		interfaceSet,
		newApp,
	)
	return nil, nil, nil
}
