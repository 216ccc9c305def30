package application

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/ecommerce/internal/catalog/domain"
)

type CatalogApplicationService struct{ repo domain.ProductRepository }

func NewCatalogApplicationService(repo domain.ProductRepository) *CatalogApplicationService {
	return &CatalogApplicationService{repo: repo}
}

// CreateProductCommand 创建/更新商品命令
type CreateProductCommand struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Category    string
	Stock       int
}

func (s *CatalogApplicationService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	p := &domain.Product{
		Name:        cmd.Name,
		Description: cmd.Description,
		Price:       cmd.Price,
		Image:       cmd.Image,
		Category:    cmd.Category,
		Stock:       cmd.Stock,
		Rating:      decimal.Zero,
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogApplicationService) UpdateProduct(ctx context.Context, id uint, cmd CreateProductCommand) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	p.Name = cmd.Name
	p.Description = cmd.Description
	p.Price = cmd.Price
	p.Image = cmd.Image
	p.Category = cmd.Category
	p.Stock = cmd.Stock
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogApplicationService) DeleteProduct(ctx context.Context, id uint) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrProductNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *CatalogApplicationService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (s *CatalogApplicationService) ListProducts(ctx context.Context, category, search, sort string) ([]*domain.Product, error) {
	return s.repo.List(ctx, domain.ProductQuery{Category: category, Search: search, Sort: sort})
}

// UpdateRating 评价服务回写评分聚合时调用
func (s *CatalogApplicationService) UpdateRating(ctx context.Context, id uint, rating decimal.Decimal, numReviews int) error {
	return s.repo.UpdateRating(ctx, id, rating, numReviews)
}
