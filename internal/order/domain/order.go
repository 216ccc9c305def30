// Package domain 包含订单服务的领域模型
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = errors.New("Order not found")
	// ErrAccessDenied 只有订单所有者或管理员能查看订单
	ErrAccessDenied = errors.New("Access denied")
	// ErrEmptyOrder 订单必须至少有一个条目
	ErrEmptyOrder = errors.New("No order items")
	// ErrInvalidPaymentMethod 不支持的支付方式
	ErrInvalidPaymentMethod = errors.New("Invalid payment method")
)

// PaymentMethod 支付方式
type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodPaypal PaymentMethod = "paypal"
	PaymentMethodCash   PaymentMethod = "cash"
)

// Valid 是否为支持的支付方式
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodPaypal, PaymentMethodCash:
		return true
	}
	return false
}

// ShippingAddress 收货地址
type ShippingAddress struct {
	Street  string `gorm:"column:street;type:varchar(255)" json:"street"`
	City    string `gorm:"column:city;type:varchar(100)" json:"city"`
	State   string `gorm:"column:state;type:varchar(100)" json:"state"`
	ZipCode string `gorm:"column:zip_code;type:varchar(20)" json:"zipCode"`
	Country string `gorm:"column:country;type:varchar(100)" json:"country"`
}

// OrderItem 订单条目，价格是下单时刻锁定的单价
type OrderItem struct {
	gorm.Model
	OrderID   uint            `gorm:"column:order_id;index;not null" json:"-"`
	ProductID uint            `gorm:"column:product_id;not null" json:"productId"`
	Name      string          `gorm:"column:name;type:varchar(255)" json:"name"`
	Image     string          `gorm:"column:image;type:varchar(512)" json:"image"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(20,8);not null" json:"price"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
}

func (OrderItem) TableName() string { return "order_items" }

// Order 订单实体
// 创建后不可变，只有支付/配送四个字段允许单向翻转
type Order struct {
	gorm.Model
	OrderNo         string          `gorm:"column:order_no;type:varchar(32);uniqueIndex;not null" json:"orderNo"`
	UserID          string          `gorm:"column:user_id;type:varchar(36);index;not null" json:"userId"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"orderItems"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `gorm:"column:payment_method;type:varchar(20);not null" json:"paymentMethod"`
	TotalPrice      decimal.Decimal `gorm:"column:total_price;type:decimal(20,8);not null" json:"totalPrice"`
	IsPaid          bool            `gorm:"column:is_paid;not null;default:false" json:"isPaid"`
	PaidAt          *time.Time      `gorm:"column:paid_at" json:"paidAt"`
	IsDelivered     bool            `gorm:"column:is_delivered;not null;default:false" json:"isDelivered"`
	DeliveredAt     *time.Time      `gorm:"column:delivered_at" json:"deliveredAt"`
}

func (Order) TableName() string { return "orders" }

// NewOrder 创建未支付、未配送的订单，总价按条目单价×数量计算
func NewOrder(orderNo, userID string, items []OrderItem, address ShippingAddress, method PaymentMethod) *Order {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return &Order{
		OrderNo:         orderNo,
		UserID:          userID,
		Items:           items,
		ShippingAddress: address,
		PaymentMethod:   method,
		TotalPrice:      total,
	}
}

// MarkPaid 置为已支付；重复调用只是刷新时间戳，标志不会被撤销
func (o *Order) MarkPaid(now time.Time) {
	o.IsPaid = true
	o.PaidAt = &now
}

// MarkDelivered 置为已配送；不要求先支付
func (o *Order) MarkDelivered(now time.Time) {
	o.IsDelivered = true
	o.DeliveredAt = &now
}

// CanBeViewedBy 所有者或管理员可见
func (o *Order) CanBeViewedBy(userID string, isAdmin bool) bool {
	return o.UserID == userID || isAdmin
}

// OrderRepository 订单仓储接口
type OrderRepository interface {
	// WithTx 在一个数据库事务内执行 fn
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Save(ctx context.Context, order *Order) error
	// GetByID 订单不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id uint) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
}

// EventPublisher 订单事件发布接口
type EventPublisher interface {
	PublishInTx(ctx context.Context, tx any, topic string, key string, event any) error
}
