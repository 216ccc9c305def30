// Package domain 包含通知服务的领域模型
package domain

import (
	"context"

	"gorm.io/gorm"
)

// 通知类型
const (
	KindOrderCreated   = "order_created"
	KindOrderPaid      = "order_paid"
	KindOrderDelivered = "order_delivered"
)

// Notification 发送给用户的通知记录
// 真正的投递渠道（邮件、短信）在这一层之外，这里只做落库与日志
type Notification struct {
	gorm.Model
	UserID  string `gorm:"column:user_id;type:varchar(36);index;not null" json:"user_id"`
	OrderNo string `gorm:"column:order_no;type:varchar(32);index" json:"order_no"`
	Kind    string `gorm:"column:kind;type:varchar(32);not null" json:"kind"`
	Message string `gorm:"column:message;type:varchar(512);not null" json:"message"`
}

func (Notification) TableName() string { return "notifications" }

// NotificationRepository 通知仓储接口
type NotificationRepository interface {
	Save(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Notification, error)
}
