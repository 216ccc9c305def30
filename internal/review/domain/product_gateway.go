package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductGateway 商品目录端口
// 评价服务用它校验商品存在并回写评分聚合
type ProductGateway interface {
	Exists(ctx context.Context, productID uint) (bool, error)
	UpdateRating(ctx context.Context, productID uint, rating decimal.Decimal, numReviews int) error
}
