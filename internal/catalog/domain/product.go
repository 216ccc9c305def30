// Package domain 包含商品目录服务的领域模型
package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrProductNotFound 商品不存在
var ErrProductNotFound = errors.New("Product not found")

// 商品列表排序方式
const (
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortNewest    = "newest"
)

// Product 商品实体
// rating 和 num_reviews 是派生字段，只由评价服务通过 UpdateRating 回写
type Product struct {
	gorm.Model
	Name        string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(20,8);not null" json:"price"`
	Image       string          `gorm:"column:image;type:varchar(512)" json:"image"`
	Category    string          `gorm:"column:category;type:varchar(100);index" json:"category"`
	Stock       int             `gorm:"column:stock;not null;default:0" json:"stock"`
	Rating      decimal.Decimal `gorm:"column:rating;type:decimal(3,1);not null;default:0" json:"rating"`
	NumReviews  int             `gorm:"column:num_reviews;not null;default:0" json:"numReviews"`
}

func (Product) TableName() string { return "products" }

// ProductQuery 商品列表查询条件
type ProductQuery struct {
	Category string
	Search   string
	Sort     string
}

// ProductRepository 商品仓储接口
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context, query ProductQuery) ([]*Product, error)
	Delete(ctx context.Context, id uint) error
	// UpdateRating 回写评分聚合（rating / num_reviews）
	UpdateRating(ctx context.Context, id uint, rating decimal.Decimal, numReviews int) error
}
