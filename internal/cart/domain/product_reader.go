package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrProductNotFound 商品在目录中不存在
var ErrProductNotFound = errors.New("Product not found")

// ProductSnapshot 加入购物车时采集的商品快照
type ProductSnapshot struct {
	ID    uint
	Name  string
	Image string
	Price decimal.Decimal
}

// ProductReader 商品目录读端口
type ProductReader interface {
	// GetByID 返回商品快照；商品不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id uint) (*ProductSnapshot, error)
}
