// Storefront 主程序
// 单进程聚合商品目录、购物车、评价、订单、用户五个限界上下文，对外提供 REST API
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	cartapp "github.com/wyfcoding/ecommerce/internal/cart/application"
	cartdomain "github.com/wyfcoding/ecommerce/internal/cart/domain"
	cartclient "github.com/wyfcoding/ecommerce/internal/cart/infrastructure/client"
	cartmemory "github.com/wyfcoding/ecommerce/internal/cart/infrastructure/persistence/memory"
	cartredis "github.com/wyfcoding/ecommerce/internal/cart/infrastructure/persistence/redis"
	carthttp "github.com/wyfcoding/ecommerce/internal/cart/interfaces/http"
	catalogapp "github.com/wyfcoding/ecommerce/internal/catalog/application"
	catalogdomain "github.com/wyfcoding/ecommerce/internal/catalog/domain"
	catalogmysql "github.com/wyfcoding/ecommerce/internal/catalog/infrastructure/persistence/mysql"
	cataloghttp "github.com/wyfcoding/ecommerce/internal/catalog/interfaces/http"
	"github.com/wyfcoding/ecommerce/internal/identity"
	orderapp "github.com/wyfcoding/ecommerce/internal/order/application"
	orderdomain "github.com/wyfcoding/ecommerce/internal/order/domain"
	orderclient "github.com/wyfcoding/ecommerce/internal/order/infrastructure/client"
	ordermessaging "github.com/wyfcoding/ecommerce/internal/order/infrastructure/messaging"
	ordermysql "github.com/wyfcoding/ecommerce/internal/order/infrastructure/persistence/mysql"
	orderhttp "github.com/wyfcoding/ecommerce/internal/order/interfaces/http"
	reviewapp "github.com/wyfcoding/ecommerce/internal/review/application"
	reviewclient "github.com/wyfcoding/ecommerce/internal/review/infrastructure/client"
	reviewdomain "github.com/wyfcoding/ecommerce/internal/review/domain"
	reviewmysql "github.com/wyfcoding/ecommerce/internal/review/infrastructure/persistence/mysql"
	reviewhttp "github.com/wyfcoding/ecommerce/internal/review/interfaces/http"
	userapp "github.com/wyfcoding/ecommerce/internal/user/application"
	userdomain "github.com/wyfcoding/ecommerce/internal/user/domain"
	usermysql "github.com/wyfcoding/ecommerce/internal/user/infrastructure/persistence/mysql"
	userhttp "github.com/wyfcoding/ecommerce/internal/user/interfaces/http"
	"github.com/wyfcoding/pkg/cache"
	"github.com/wyfcoding/pkg/config"
	"github.com/wyfcoding/pkg/database"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/messagequeue/kafka"
	"github.com/wyfcoding/pkg/messagequeue/outbox"
	"github.com/wyfcoding/pkg/metrics"
	"github.com/wyfcoding/pkg/middleware"
	"golang.org/x/sync/errgroup"
)

var configPath = flag.String("config", "configs/storefront/config.toml", "config file path")

// Config 扩展配置结构
type Config struct {
	config.Config `mapstructure:",squash"`
	JWT           struct {
		Secret string `mapstructure:"secret"`
	} `mapstructure:"jwt"`
}

func main() {
	flag.Parse()

	// 1. 配置
	var cfg Config
	if err := config.Load(*configPath, &cfg); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. 日志
	logCfg := &logging.Config{Service: cfg.Server.Name, Level: cfg.Log.Level}
	logger := logging.NewFromConfig(logCfg)
	slog.SetDefault(logger.Logger)

	// 3. 指标
	metricsImpl := metrics.NewMetrics(cfg.Server.Name)

	// 4. 数据库
	db, err := database.NewDB(cfg.Data.Database, cfg.CircuitBreaker, logger, metricsImpl)
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	if cfg.Server.Environment == "dev" {
		if err := db.RawDB().AutoMigrate(
			&catalogdomain.Product{},
			&reviewdomain.Review{},
			&orderdomain.Order{},
			&orderdomain.OrderItem{},
			&userdomain.User{},
			&outbox.Message{},
		); err != nil {
			slog.Error("failed to migrate database", "error", err)
		}
	}

	// 5. Kafka & Outbox
	kafkaProducer := kafka.NewProducer(&cfg.MessageQueue.Kafka, logger, metricsImpl)
	outboxMgr := outbox.NewManager(db.RawDB(), logger.Logger)
	pusher := func(ctx context.Context, topic, key string, payload []byte) error {
		return kafkaProducer.PublishToTopic(ctx, topic, []byte(key), payload)
	}
	outboxProcessor := outbox.NewProcessor(outboxMgr, pusher, 100, 2*time.Second)

	// 6. 购物车存储：优先 Redis，连不上时退回进程内存储
	var cartStore cartdomain.CartStore
	redisCache, err := cache.NewRedisCache(&cfg.Data.Redis, cfg.CircuitBreaker, logger, metricsImpl)
	if err != nil {
		slog.Warn("redis unavailable, falling back to in-memory cart store", "error", err)
		cartStore = cartmemory.NewCartStore()
	} else {
		cartStore = cartredis.NewCartStore(redisCache.GetClient())
	}

	// 7. 仓储与应用服务
	productRepo := catalogmysql.NewProductRepository(db.RawDB())
	catalogSvc := catalogapp.NewCatalogApplicationService(productRepo)

	cartSvc := cartapp.NewCartApplicationService(cartStore, cartclient.NewCatalogReader(catalogSvc))

	reviewRepo := reviewmysql.NewReviewRepository(db.RawDB())
	reviewSvc := reviewapp.NewReviewApplicationService(reviewRepo, reviewclient.NewCatalogGateway(catalogSvc))

	orderRepo := ordermysql.NewOrderRepository(db.RawDB())
	orderPublisher := ordermessaging.NewOutboxPublisher(outboxMgr)
	orderSvc := orderapp.NewOrderApplicationService(orderRepo, orderclient.NewCartGateway(cartSvc), orderPublisher)

	userRepo := usermysql.NewUserRepository(db.RawDB())
	userSvc := userapp.NewUserApplicationService(userRepo, []byte(cfg.JWT.Secret))

	// 8. 接口层
	if cfg.Server.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.HTTPMetricsMiddleware(metricsImpl))
	r.Use(middleware.CORS())

	r.GET("/sys/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := identity.RequireAuth([]byte(cfg.JWT.Secret))
	requireAdmin := identity.RequireAdmin()

	api := r.Group("/api")
	cataloghttp.NewHandler(catalogSvc).RegisterRoutes(api, requireAuth, requireAdmin)
	carthttp.NewHandler(cartSvc).RegisterRoutes(api, requireAuth)
	reviewhttp.NewHandler(reviewSvc).RegisterRoutes(api, requireAuth)
	orderhttp.NewHandler(orderSvc).RegisterRoutes(api, requireAuth, requireAdmin)
	userhttp.NewHandler(userSvc).RegisterRoutes(api, requireAuth)

	// 9. 启动
	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		outboxProcessor.Start()
		<-ctx.Done()
		outboxProcessor.Stop()
		return nil
	})

	server := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Server.HTTP.Port), Handler: r}
	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("shutting down servers...")
		case <-ctx.Done():
			slog.Info("context cancelled, shutting down...")
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited with error", "error", err)
	}
}
