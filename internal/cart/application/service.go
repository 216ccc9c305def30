package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/ecommerce/internal/cart/domain"
)

// CartApplicationService 购物车应用服务
// 无状态：购物车数据全部存放在注入的 CartStore 中
type CartApplicationService struct {
	store    domain.CartStore
	products domain.ProductReader
}

func NewCartApplicationService(store domain.CartStore, products domain.ProductReader) *CartApplicationService {
	return &CartApplicationService{store: store, products: products}
}

// GetCart 返回用户购物车；从不失败于"购物车不存在"，此时返回空购物车
func (s *CartApplicationService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		return domain.NewCart(userID), nil
	}
	return cart, nil
}

// AddItem 加入商品，采集当前目录的名称/图片/价格快照
// 同一商品重复加入时数量累加
func (s *CartApplicationService) AddItem(ctx context.Context, userID string, productID uint, qty int) (*domain.Cart, error) {
	if qty < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	cart, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		cart = domain.NewCart(userID)
	}

	cart.AddItem(product.ID, product.Name, product.Image, product.Price, qty)
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

// UpdateItem 将条目数量设置为给定值；qty <= 0 删除条目
func (s *CartApplicationService) UpdateItem(ctx context.Context, userID string, productID uint, qty int) (*domain.Cart, error) {
	cart, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		return nil, domain.ErrCartNotFound
	}

	if err := cart.SetQuantity(productID, qty); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

// RemoveItem 移除商品；商品不在购物车时是幂等空操作
func (s *CartApplicationService) RemoveItem(ctx context.Context, userID string, productID uint) (*domain.Cart, error) {
	cart, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		return nil, domain.ErrCartNotFound
	}

	cart.RemoveItem(productID)
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

// ClearCart 无条件清空用户购物车
func (s *CartApplicationService) ClearCart(ctx context.Context, userID string) error {
	if err := s.store.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
