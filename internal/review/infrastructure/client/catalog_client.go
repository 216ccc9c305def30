package client

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	catalogapp "github.com/wyfcoding/ecommerce/internal/catalog/application"
	catalogdomain "github.com/wyfcoding/ecommerce/internal/catalog/domain"
	"github.com/wyfcoding/ecommerce/internal/review/domain"
)

// catalogGateway 进程内目录适配器，实现评价服务的 ProductGateway 端口
type catalogGateway struct {
	catalog *catalogapp.CatalogApplicationService
}

func NewCatalogGateway(catalog *catalogapp.CatalogApplicationService) domain.ProductGateway {
	return &catalogGateway{catalog: catalog}
}

func (g *catalogGateway) Exists(ctx context.Context, productID uint) (bool, error) {
	_, err := g.catalog.GetProduct(ctx, productID)
	if errors.Is(err, catalogdomain.ErrProductNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (g *catalogGateway) UpdateRating(ctx context.Context, productID uint, rating decimal.Decimal, numReviews int) error {
	return g.catalog.UpdateRating(ctx, productID, rating, numReviews)
}
