package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wyfcoding/ecommerce/internal/notification/domain"
)

// NotificationService 通知应用服务
type NotificationService struct {
	repo   domain.NotificationRepository
	logger *slog.Logger
}

func NewNotificationService(repo domain.NotificationRepository, logger *slog.Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger}
}

// Notify 记录一条用户通知
func (s *NotificationService) Notify(ctx context.Context, userID, orderNo, kind, message string) error {
	n := &domain.Notification{
		UserID:  userID,
		OrderNo: orderNo,
		Kind:    kind,
		Message: message,
	}
	if err := s.repo.Save(ctx, n); err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	s.logger.InfoContext(ctx, "notification recorded",
		"user_id", userID, "order_no", orderNo, "kind", kind)
	return nil
}

// ListByUser 用户通知列表
func (s *NotificationService) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}
