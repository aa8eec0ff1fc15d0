package main

import (
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appbook "github.com/xiebiao/bookstore-backend/internal/application/book"
	"github.com/xiebiao/bookstore-backend/internal/application/catalog"
	applookup "github.com/xiebiao/bookstore-backend/internal/application/lookup"
	apporder "github.com/xiebiao/bookstore-backend/internal/application/order"
	appreview "github.com/xiebiao/bookstore-backend/internal/application/review"
	appuser "github.com/xiebiao/bookstore-backend/internal/application/user"
	"github.com/xiebiao/bookstore-backend/internal/domain/author"
	"github.com/xiebiao/bookstore-backend/internal/domain/book"
	"github.com/xiebiao/bookstore-backend/internal/domain/genre"
	"github.com/xiebiao/bookstore-backend/internal/domain/lookup"
	"github.com/xiebiao/bookstore-backend/internal/domain/order"
	"github.com/xiebiao/bookstore-backend/internal/domain/publisher"
	"github.com/xiebiao/bookstore-backend/internal/domain/review"
	"github.com/xiebiao/bookstore-backend/internal/domain/user"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/messaging"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/openlibrary"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/storage"
	apihttp "github.com/xiebiao/bookstore-backend/internal/interface/http"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-backend/pkg/jwt"
)

// ========================================
// Provider Sets
// ========================================

// infrastructureSet 基础设施：数据库、Redis、对象存储、消息、外部检索
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedis,
	storage.NewCoverStore,
	messaging.NewOrderEventsFromConfig,
	openlibrary.NewClient,
	provideLookupCache,
	wire.Bind(new(appbook.CoverStore), new(*storage.CoverStore)),
	wire.Bind(new(apporder.EventPublisher), new(*messaging.OrderEvents)),
	wire.Bind(new(lookup.Catalog), new(*openlibrary.Client)),
	wire.Bind(new(lookup.Cache), new(*redis.LookupCache)),
)

// repositorySet 仓储
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewBookReferences,
	mysql.NewPublisherRepository,
	mysql.NewAuthorRepository,
	mysql.NewGenreRepository,
	mysql.NewReviewRepository,
	mysql.NewOrderRepository,
	mysql.NewTxManager,
	wire.Bind(new(apporder.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(appbook.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	provideUserService,
	book.NewService,
	publisher.NewService,
	author.NewService,
	genre.NewService,
	review.NewService,
	order.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewRefreshTokenUseCase,
	appuser.NewLogoutUseCase,
	appbook.NewPublishBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewManageBookUseCase,
	appbook.NewCoverUseCase,
	catalog.NewPublisherUseCase,
	catalog.NewAuthorUseCase,
	catalog.NewGenreUseCase,
	appreview.NewReviewUseCase,
	apporder.NewPlaceOrderUseCase,
	apporder.NewManageOrderUseCase,
	provideSearchUseCase,
)

// middlewareSet 认证
var middlewareSet = wire.NewSet(
	provideJWTManager,
	redis.NewSessionStore,
	middleware.NewAuthMiddleware,
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
)

// handlerSet HTTP处理器与路由
var handlerSet = wire.NewSet(
	handler.NewPaging,
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewPublisherHandler,
	handler.NewAuthorHandler,
	handler.NewGenreHandler,
	handler.NewReviewHandler,
	handler.NewOrderHandler,
	handler.NewLookupHandler,
	wire.Struct(new(apihttp.Handlers), "*"),
	apihttp.NewRouter,
)

// ========================================
// Custom Providers
// ========================================

// provideDB 数据库连接，cleanup时关闭连接池
func provideDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

// provideRedis Redis连接，cleanup时关闭
func provideRedis(cfg *config.Config, log *zap.Logger) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// provideLookupCache 检索结果缓存，TTL来自配置
func provideLookupCache(client *goredis.Client, cfg *config.Config) *redis.LookupCache {
	return redis.NewLookupCache(client, cfg.Lookup.CacheTTL)
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideUserService bcrypt成本来自配置
func provideUserService(repo user.Repository, cfg *config.Config) user.Service {
	return user.NewService(repo, cfg.JWT.BcryptCost)
}

// provideSearchUseCase 检索条数上下限来自配置
func provideSearchUseCase(catalog lookup.Catalog, cache lookup.Cache, cfg *config.Config, log *zap.Logger) *applookup.SearchUseCase {
	return applookup.NewSearchUseCase(catalog, cache, cfg.Lookup.DefaultLimit, cfg.Lookup.MaxLimit, log)
}
