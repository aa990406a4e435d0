package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appcatalog "github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/application/catalog"
	appcustomer "github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/application/customer"
	apporder "github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/application/order"
	apprecommend "github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/application/recommend"
	appreport "github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/application/report"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/catalog"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/customer"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/inventory"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/infrastructure/config"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/infrastructure/persistence/mysql"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/infrastructure/persistence/redis"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/interface/http/handler"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/interface/http/middleware"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/circuitbreaker"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/jwt"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/logger"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/metrics"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/mq"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/response"
)

func main() {
	// 1. 配置与日志
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	appLogger := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	metrics.InitMetrics()

	// 2. 基础设施连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		appLogger.Fatalf("初始化数据库失败: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		appLogger.Fatalf("初始化Redis失败: %v", err)
	}

	// 消息队列可选：未启用时订单事件只记日志
	var publisher apporder.EventPublisher
	var breaker *circuitbreaker.CircuitBreaker
	if cfg.MQ.Enabled {
		p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic", appLogger)
		if err != nil {
			appLogger.Fatalf("初始化RabbitMQ失败: %v", err)
		}
		defer p.Close()
		publisher = p

		breaker = circuitbreaker.NewCircuitBreaker("mq-publisher", circuitbreaker.Config{
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		})
		breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
			appLogger.WithFields(logrus.Fields{
				"breaker": name, "from": from.String(), "to": to.String(),
			}).Warn("熔断器状态切换")
		})
	}

	// 3. 依赖注入：Repository ← Service ← UseCase ← Handler
	customerRepo := mysql.NewCustomerRepository(db)
	productRepo := mysql.NewProductRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	historyRepo := mysql.NewHistoryRepository(db)
	recommendRepo := mysql.NewRecommendRepository(db)
	reportRepo := mysql.NewReportRepository(db)
	locker := mysql.NewInventoryLocker(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)

	customerService := customer.NewService(customerRepo)
	catalogService := catalog.NewService(productRepo)
	ledger := inventory.NewLedger(locker)

	registerUseCase := appcustomer.NewRegisterUseCase(customerService, appLogger)
	loginUseCase := appcustomer.NewLoginUseCase(customerService, jwtManager, sessionStore, appLogger)
	logoutUseCase := appcustomer.NewLogoutUseCase(sessionStore, appLogger, cfg.JWT.AccessTokenExpire)
	purchaseHistoryUseCase := appcustomer.NewPurchaseHistoryUseCase(historyRepo)
	productUseCase := appcatalog.NewProductUseCase(catalogService)
	placeOrderUseCase := apporder.NewPlaceOrderUseCase(
		customerRepo, orderRepo, historyRepo, ledger, txManager, appLogger,
		publisher, breaker,
		apporder.PlaceOrderOptions{
			ReserveTimeout:       cfg.Inventory.ReserveTimeout,
			RetryMaxAttempts:     cfg.Inventory.RetryMaxAttempts,
			RetryInitialInterval: cfg.Inventory.RetryInitialInterval,
		},
	)
	getOrderUseCase := apporder.NewGetOrderUseCase(orderRepo)
	listOrdersUseCase := apporder.NewListOrdersUseCase(orderRepo)
	recommendUseCase := apprecommend.NewRecommendUseCase(recommendRepo, appLogger)
	reportUseCase := appreport.NewReportUseCase(reportRepo)

	customerHandler := handler.NewCustomerHandler(registerUseCase, loginUseCase, logoutUseCase, purchaseHistoryUseCase)
	productHandler := handler.NewProductHandler(productUseCase)
	orderHandler := handler.NewOrderHandler(placeOrderUseCase, getOrderUseCase, listOrdersUseCase)
	recommendHandler := handler.NewRecommendHandler(recommendUseCase)
	reportHandler := handler.NewReportHandler(reportUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 4. HTTP服务
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(appLogger))
	r.Use(middleware.Metrics())

	registerRoutes(r, customerHandler, productHandler, orderHandler,
		recommendHandler, reportHandler, authMiddleware)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 5. 后台任务：低库存巡检
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Inventory.ScanInterval > 0 {
		scanner := appcatalog.NewLowStockScanner(productRepo, appLogger,
			cfg.Inventory.LowStockThreshold, cfg.Inventory.ScanInterval)
		go scanner.Run(ctx)
	}

	go func() {
		appLogger.WithField("addr", srv.Addr).Info("HTTP服务启动")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("启动服务失败: %v", err)
		}
	}()

	// 6. 优雅退出：等待退出信号，排空在途请求
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("收到退出信号，开始关闭服务")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("服务关闭异常")
	}
	appLogger.Info("服务已退出")
}

// registerRoutes 注册全部路由
func registerRoutes(
	r *gin.Engine,
	customerHandler *handler.CustomerHandler,
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	recommendHandler *handler.RecommendHandler,
	reportHandler *handler.ReportHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查与运维端点
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 顾客模块
		customers := v1.Group("/customers")
		{
			customers.POST("/register", customerHandler.Register)
			customers.POST("/login", customerHandler.Login)
			customers.POST("/logout", authMiddleware.RequireAuth(), customerHandler.Logout)
			customers.GET("/history", authMiddleware.RequireAuth(), customerHandler.PurchaseHistory)
		}

		// 商品模块（查询公开，写入需登录）
		products := v1.Group("/products")
		{
			products.GET("", productHandler.Search)
			products.GET("/:id", productHandler.Get)
			products.POST("", authMiddleware.RequireAuth(), productHandler.Publish)
		}
		v1.GET("/categories", productHandler.ListCategories)
		v1.POST("/categories", authMiddleware.RequireAuth(), productHandler.CreateCategory)
		v1.POST("/authors", authMiddleware.RequireAuth(), productHandler.CreateAuthor)

		// 订单模块（全部需登录）
		orders := v1.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			orders.POST("", orderHandler.PlaceOrder)
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
		}

		// 推荐模块（需登录）
		v1.GET("/recommendations", authMiddleware.RequireAuth(), recommendHandler.Recommend)

		// 报表模块（需登录）
		reports := v1.Group("/reports")
		reports.Use(authMiddleware.RequireAuth())
		{
			reports.GET("/daily-revenue", reportHandler.DailyRevenue)
			reports.GET("/top-products", reportHandler.TopProducts)
			reports.GET("/high-value-customers", reportHandler.HighValueCustomers)
		}
	}
}
