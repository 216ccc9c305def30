package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/ecommerce/internal/order/domain"
	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/pkg/idgen"
)

// OrderItemInput 请求方直接提供的订单条目
type OrderItemInput struct {
	ProductID uint
	Name      string
	Image     string
	Price     decimal.Decimal
	Quantity  int
}

// CreateOrderCommand 创建订单命令
// Items 为空时走购物车结算路径，从用户当前购物车取条目
type CreateOrderCommand struct {
	Items           []OrderItemInput
	ShippingAddress domain.ShippingAddress
	PaymentMethod   domain.PaymentMethod
}

// OrderApplicationService 订单应用服务
type OrderApplicationService struct {
	repo      domain.OrderRepository
	carts     domain.CartGateway
	publisher domain.EventPublisher
}

func NewOrderApplicationService(repo domain.OrderRepository, carts domain.CartGateway, publisher domain.EventPublisher) *OrderApplicationService {
	return &OrderApplicationService{repo: repo, carts: carts, publisher: publisher}
}

// CreateOrder 把条目（或当前购物车）固化为一张不可变订单
// 购物车结算路径下，订单落库后尽力清空购物车；清空失败不影响订单，
// 残留的购物车是可接受的失败模式，不构成资金不一致
func (s *OrderApplicationService) CreateOrder(ctx context.Context, userID string, cmd CreateOrderCommand) (*domain.Order, error) {
	if !cmd.PaymentMethod.Valid() {
		return nil, domain.ErrInvalidPaymentMethod
	}

	items := make([]domain.OrderItem, 0, len(cmd.Items))
	for _, in := range cmd.Items {
		items = append(items, domain.OrderItem{
			ProductID: in.ProductID,
			Name:      in.Name,
			Image:     in.Image,
			Price:     in.Price,
			Quantity:  in.Quantity,
		})
	}

	fromCart := len(items) == 0
	if fromCart {
		lines, err := s.carts.Lines(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load cart: %w", err)
		}
		for _, line := range lines {
			items = append(items, domain.OrderItem{
				ProductID: line.ProductID,
				Name:      line.Name,
				Image:     line.Image,
				Price:     line.Price,
				Quantity:  line.Quantity,
			})
		}
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	orderNo := fmt.Sprintf("ORD-%d", idgen.GenID())
	order := domain.NewOrder(orderNo, userID, items, cmd.ShippingAddress, cmd.PaymentMethod)

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Save(txCtx, order); err != nil {
			return err
		}
		if s.publisher == nil {
			return nil
		}
		event := domain.OrderCreatedEvent{
			OrderNo:    order.OrderNo,
			UserID:     order.UserID,
			TotalPrice: order.TotalPrice.String(),
			ItemCount:  len(order.Items),
			Timestamp:  time.Now(),
		}
		return s.publisher.PublishInTx(ctx, contextx.GetTx(txCtx), domain.OrderCreatedEventType, order.OrderNo, event)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if fromCart {
		if err := s.carts.Clear(ctx, userID); err != nil {
			slog.Warn("order created but cart not cleared", "order_no", order.OrderNo, "user_id", userID, "error", err)
		}
	}
	return order, nil
}

// MarkPaid 置订单为已支付；只要求登录，不校验订单归属
func (s *OrderApplicationService) MarkPaid(ctx context.Context, orderID uint) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	order.MarkPaid(time.Now())
	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Save(txCtx, order); err != nil {
			return err
		}
		if s.publisher == nil {
			return nil
		}
		event := domain.OrderPaidEvent{
			OrderNo:   order.OrderNo,
			UserID:    order.UserID,
			PaidAt:    *order.PaidAt,
			Timestamp: time.Now(),
		}
		return s.publisher.PublishInTx(ctx, contextx.GetTx(txCtx), domain.OrderPaidEventType, order.OrderNo, event)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}
	return order, nil
}

// MarkDelivered 置订单为已配送；不要求先支付，重复调用只刷新时间戳
func (s *OrderApplicationService) MarkDelivered(ctx context.Context, orderID uint) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	order.MarkDelivered(time.Now())
	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Save(txCtx, order); err != nil {
			return err
		}
		if s.publisher == nil {
			return nil
		}
		event := domain.OrderDeliveredEvent{
			OrderNo:     order.OrderNo,
			UserID:      order.UserID,
			DeliveredAt: *order.DeliveredAt,
			Timestamp:   time.Now(),
		}
		return s.publisher.PublishInTx(ctx, contextx.GetTx(txCtx), domain.OrderDeliveredEventType, order.OrderNo, event)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mark order delivered: %w", err)
	}
	return order, nil
}

// GetOrder 所有者或管理员可见
func (s *OrderApplicationService) GetOrder(ctx context.Context, userID string, isAdmin bool, orderID uint) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	if !order.CanBeViewedBy(userID, isAdmin) {
		return nil, domain.ErrAccessDenied
	}
	return order, nil
}

// ListMyOrders 用户自己的订单，新的在前
func (s *OrderApplicationService) ListMyOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListAllOrders 管理端全量订单列表
func (s *OrderApplicationService) ListAllOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.ListAll(ctx)
}
