package client

import (
	"context"

	cartapp "github.com/wyfcoding/ecommerce/internal/cart/application"
	"github.com/wyfcoding/ecommerce/internal/order/domain"
)

// cartGateway 进程内购物车适配器，实现订单服务的 CartGateway 端口
type cartGateway struct {
	carts *cartapp.CartApplicationService
}

func NewCartGateway(carts *cartapp.CartApplicationService) domain.CartGateway {
	return &cartGateway{carts: carts}
}

func (g *cartGateway) Lines(ctx context.Context, userID string) ([]domain.CartLine, error) {
	cart, err := g.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	lines := make([]domain.CartLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, domain.CartLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return lines, nil
}

func (g *cartGateway) Clear(ctx context.Context, userID string) error {
	return g.carts.ClearCart(ctx, userID)
}
