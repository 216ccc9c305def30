// Package domain 包含商品评价服务的领域模型
package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// 评分取值范围与评论长度上限
const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 2000
)

var (
	// ErrReviewNotFound 评价不存在
	ErrReviewNotFound = errors.New("Review not found")
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("Product not found")
	// ErrAlreadyReviewed 同一用户对同一商品只能评价一次
	ErrAlreadyReviewed = errors.New("You have already reviewed this product")
	// ErrNotAuthor 只有作者本人（删除时管理员亦可）能操作评价
	ErrNotAuthor = errors.New("Not authorized to modify this review")
	// ErrInvalidRating 评分必须是 1 到 5 的整数
	ErrInvalidRating = errors.New("Rating must be between 1 and 5")
	// ErrEmptyComment 评论不能为空
	ErrEmptyComment = errors.New("Comment is required")
	// ErrCommentTooLong 评论超长
	ErrCommentTooLong = errors.New("Comment is too long")
)

// Review 商品评价实体
// (user_id, product_id) 全局唯一
type Review struct {
	gorm.Model
	UserID    string `gorm:"column:user_id;type:varchar(36);not null;uniqueIndex:idx_user_product" json:"userId"`
	UserName  string `gorm:"column:user_name;type:varchar(255)" json:"userName"`
	ProductID uint   `gorm:"column:product_id;not null;uniqueIndex:idx_user_product;index" json:"productId"`
	Rating    int    `gorm:"column:rating;not null" json:"rating"`
	Comment   string `gorm:"column:comment;type:varchar(2000);not null" json:"comment"`
}

func (Review) TableName() string { return "reviews" }

// ReviewRepository 评价仓储接口
type ReviewRepository interface {
	Save(ctx context.Context, review *Review) error
	// GetByID 评价不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id uint) (*Review, error)
	// GetByUserAndProduct 用于唯一性检查，不存在时返回 (nil, nil)
	GetByUserAndProduct(ctx context.Context, userID string, productID uint) (*Review, error)
	ListByProduct(ctx context.Context, productID uint) ([]*Review, error)
	Delete(ctx context.Context, id uint) error
}
