package domain

import "time"

const (
	OrderCreatedEventType   = "order.created"
	OrderPaidEventType      = "order.paid"
	OrderDeliveredEventType = "order.delivered"
)

// OrderCreatedEvent 订单创建事件
type OrderCreatedEvent struct {
	OrderNo    string    `json:"order_no"`
	UserID     string    `json:"user_id"`
	TotalPrice string    `json:"total_price"`
	ItemCount  int       `json:"item_count"`
	Timestamp  time.Time `json:"timestamp"`
}

// OrderPaidEvent 订单支付事件
type OrderPaidEvent struct {
	OrderNo   string    `json:"order_no"`
	UserID    string    `json:"user_id"`
	PaidAt    time.Time `json:"paid_at"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderDeliveredEvent 订单配送事件
type OrderDeliveredEvent struct {
	OrderNo     string    `json:"order_no"`
	UserID      string    `json:"user_id"`
	DeliveredAt time.Time `json:"delivered_at"`
	Timestamp   time.Time `json:"timestamp"`
}
