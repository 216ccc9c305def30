package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"github.com/wyfcoding/ecommerce/internal/notification/application"
	notifdomain "github.com/wyfcoding/ecommerce/internal/notification/domain"
	orderdomain "github.com/wyfcoding/ecommerce/internal/order/domain"
)

// OrderEventHandler 消费订单生命周期事件并生成用户通知
type OrderEventHandler struct {
	service *application.NotificationService
	logger  *slog.Logger
}

func NewOrderEventHandler(service *application.NotificationService, logger *slog.Logger) *OrderEventHandler {
	return &OrderEventHandler{service: service, logger: logger}
}

// Handle 处理一条订单事件消息；返回错误时由消费端重试
func (h *OrderEventHandler) Handle(ctx context.Context, msg kafka.Message) error {
	switch msg.Topic {
	case orderdomain.OrderCreatedEventType:
		var event orderdomain.OrderCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			h.logger.ErrorContext(ctx, "failed to unmarshal order created event", "error", err)
			return err
		}
		message := fmt.Sprintf("Order %s placed, total %s", event.OrderNo, event.TotalPrice)
		return h.service.Notify(ctx, event.UserID, event.OrderNo, notifdomain.KindOrderCreated, message)
	case orderdomain.OrderPaidEventType:
		var event orderdomain.OrderPaidEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			h.logger.ErrorContext(ctx, "failed to unmarshal order paid event", "error", err)
			return err
		}
		message := fmt.Sprintf("Order %s payment received", event.OrderNo)
		return h.service.Notify(ctx, event.UserID, event.OrderNo, notifdomain.KindOrderPaid, message)
	case orderdomain.OrderDeliveredEventType:
		var event orderdomain.OrderDeliveredEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			h.logger.ErrorContext(ctx, "failed to unmarshal order delivered event", "error", err)
			return err
		}
		message := fmt.Sprintf("Order %s delivered", event.OrderNo)
		return h.service.Notify(ctx, event.UserID, event.OrderNo, notifdomain.KindOrderDelivered, message)
	default:
		h.logger.WarnContext(ctx, "unknown topic", "topic", msg.Topic)
		return nil
	}
}
