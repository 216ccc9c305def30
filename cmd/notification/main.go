// NotificationService 主程序
// 消费订单生命周期事件并生成用户通知记录
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/wyfcoding/ecommerce/internal/notification/application"
	notifdomain "github.com/wyfcoding/ecommerce/internal/notification/domain"
	notifmysql "github.com/wyfcoding/ecommerce/internal/notification/infrastructure/persistence/mysql"
	"github.com/wyfcoding/ecommerce/internal/notification/interfaces/consumer"
	orderdomain "github.com/wyfcoding/ecommerce/internal/order/domain"
	"github.com/wyfcoding/pkg/config"
	"github.com/wyfcoding/pkg/database"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/messagequeue/kafka"
	"github.com/wyfcoding/pkg/metrics"
)

var configPath = flag.String("config", "configs/notification/config.toml", "config file path")

func main() {
	flag.Parse()

	// 1. 配置
	var cfg config.Config
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
		if err := db.RawDB().AutoMigrate(&notifdomain.Notification{}); err != nil {
			slog.Error("failed to migrate database", "error", err)
		}
	}

	// 5. 应用服务与事件处理器
	repo := notifmysql.NewNotificationRepository(db.RawDB())
	service := application.NewNotificationService(repo, slog.Default())
	handler := consumer.NewOrderEventHandler(service, slog.Default())

	// 6. 每个订单事件 topic 启动一个消费者，共用同一个消费组
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	topics := []string{
		orderdomain.OrderCreatedEventType,
		orderdomain.OrderPaidEventType,
		orderdomain.OrderDeliveredEventType,
	}
	for _, topic := range topics {
		consumerCfg := cfg.MessageQueue.Kafka
		consumerCfg.GroupID = "notification-group"
		consumerCfg.Topic = topic
		c := kafka.NewConsumer(&consumerCfg, logger, metricsImpl)
		c.Start(ctx, 1, handler.Handle)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down...")
	cancel()
}
