//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 运行 `wire gen ./cmd/api` 生成wire_gen.go
// main.go目前使用手动注入，本文件描述等价的依赖图
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	appcatalog "github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/application/catalog"
	appcustomer "github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/application/customer"
	apporder "github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/application/order"
	apprecommend "github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/application/recommend"
	appreport "github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/application/report"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/catalog"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/customer"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/history"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/inventory"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/order"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/infrastructure/config"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/infrastructure/persistence/mysql"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/infrastructure/persistence/redis"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/interface/http/handler"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/interface/http/middleware"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/circuitbreaker"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/jwt"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/logger"
)

// infrastructureSet 基础设施层：配置、数据库、Redis
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层
var repositorySet = wire.NewSet(
	mysql.NewCustomerRepository,
	mysql.NewProductRepository,
	mysql.NewOrderRepository,
	mysql.NewHistoryRepository,
	mysql.NewRecommendRepository,
	mysql.NewReportRepository,
	mysql.NewInventoryLocker,
	mysql.NewTxManager,
	wire.Bind(new(apporder.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域层
var domainSet = wire.NewSet(
	customer.NewService,
	catalog.NewService,
	inventory.NewLedger,
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	appcustomer.NewRegisterUseCase,
	provideLoginUseCase,
	provideLogoutUseCase,
	appcustomer.NewPurchaseHistoryUseCase,
	appcatalog.NewProductUseCase,
	providePlaceOrderUseCase,
	apporder.NewGetOrderUseCase,
	apporder.NewListOrdersUseCase,
	apprecommend.NewRecommendUseCase,
	appreport.NewReportUseCase,
)

// middlewareSet 认证与基础组件
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	provideLogger,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewCustomerHandler,
	handler.NewProductHandler,
	handler.NewOrderHandler,
	handler.NewRecommendHandler,
	handler.NewReportHandler,
)

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
}

func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

func provideLogger(cfg *config.Config) *logrus.Logger {
	return logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
}

func provideLoginUseCase(service customer.Service, jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore, log *logrus.Logger) *appcustomer.LoginUseCase {
	return appcustomer.NewLoginUseCase(service, jwtManager, sessionStore, log)
}

func provideLogoutUseCase(cfg *config.Config, sessionStore *redis.SessionStore,
	log *logrus.Logger) *appcustomer.LogoutUseCase {
	return appcustomer.NewLogoutUseCase(sessionStore, log, cfg.JWT.AccessTokenExpire)
}

// providePlaceOrderUseCase 下单用例
// MQ发布器和熔断器在main.go中按配置条件创建，Wire图中不发布事件
func providePlaceOrderUseCase(
	cfg *config.Config,
	customerRepo customer.Repository,
	orderRepo order.Repository,
	historyRepo history.Repository,
	ledger *inventory.Ledger,
	txManager apporder.TxManager,
	log *logrus.Logger,
) *apporder.PlaceOrderUseCase {
	var publisher apporder.EventPublisher
	var breaker *circuitbreaker.CircuitBreaker
	return apporder.NewPlaceOrderUseCase(
		customerRepo, orderRepo, historyRepo, ledger, txManager, log,
		publisher, breaker,
		apporder.PlaceOrderOptions{
			ReserveTimeout:       cfg.Inventory.ReserveTimeout,
			RetryMaxAttempts:     cfg.Inventory.RetryMaxAttempts,
			RetryInitialInterval: cfg.Inventory.RetryInitialInterval,
		},
	)
}

// provideGinEngine 创建Gin引擎并注册路由（与main.go的registerRoutes等价）
func provideGinEngine(
	cfg *config.Config,
	log *logrus.Logger,
	customerHandler *handler.CustomerHandler,
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	recommendHandler *handler.RecommendHandler,
	reportHandler *handler.ReportHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Metrics())

	registerRoutes(r, customerHandler, productHandler, orderHandler,
		recommendHandler, reportHandler, authMiddleware)
	return r
}

// InitializeApp 组装整个应用
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
