package mysql

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/ecommerce/internal/catalog/domain"
	"gorm.io/gorm"
)

type productRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context, query domain.ProductQuery) ([]*domain.Product, error) {
	var products []*domain.Product
	q := r.db.WithContext(ctx).Model(&domain.Product{})
	if query.Category != "" {
		q = q.Where("category = ?", query.Category)
	}
	if query.Search != "" {
		like := "%" + query.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	switch query.Sort {
	case domain.SortPriceLow:
		q = q.Order("price asc")
	case domain.SortPriceHigh:
		q = q.Order("price desc")
	case domain.SortRating:
		q = q.Order("rating desc")
	default:
		q = q.Order("created_at desc")
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Product{}, id).Error
}

func (r *productRepository) UpdateRating(ctx context.Context, id uint, rating decimal.Decimal, numReviews int) error {
	return r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{"rating": rating, "num_reviews": numReviews}).Error
}
