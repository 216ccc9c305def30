package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// CartLine 购物车条目快照，下单时转换为订单条目
type CartLine struct {
	ProductID uint
	Name      string
	Image     string
	Price     decimal.Decimal
	Quantity  int
}

// CartGateway 购物车端口
// 订单服务用它读取购物车快照并在下单成功后清空购物车
type CartGateway interface {
	Lines(ctx context.Context, userID string) ([]CartLine, error)
	Clear(ctx context.Context, userID string) error
}
