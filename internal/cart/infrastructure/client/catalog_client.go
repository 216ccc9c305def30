package client

import (
	"context"
	"errors"

	catalogapp "github.com/wyfcoding/ecommerce/internal/catalog/application"
	catalogdomain "github.com/wyfcoding/ecommerce/internal/catalog/domain"
	"github.com/wyfcoding/ecommerce/internal/cart/domain"
)

// catalogReader 进程内目录适配器，实现购物车的 ProductReader 端口
type catalogReader struct {
	catalog *catalogapp.CatalogApplicationService
}

func NewCatalogReader(catalog *catalogapp.CatalogApplicationService) domain.ProductReader {
	return &catalogReader{catalog: catalog}
}

func (r *catalogReader) GetByID(ctx context.Context, id uint) (*domain.ProductSnapshot, error) {
	product, err := r.catalog.GetProduct(ctx, id)
	if errors.Is(err, catalogdomain.ErrProductNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.ProductSnapshot{
		ID:    product.ID,
		Name:  product.Name,
		Image: product.Image,
		Price: product.Price,
	}, nil
}
