package memory

import (
	"context"
	"sync"

	"github.com/wyfcoding/ecommerce/internal/cart/domain"
)

// cartStore 进程内购物车存储，生命周期与进程一致
// 读写都做深拷贝，避免调用方与存储共享切片
type cartStore struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewCartStore() domain.CartStore {
	return &cartStore{carts: make(map[string]*domain.Cart)}
}

func (s *cartStore) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart, ok := s.carts[userID]
	if !ok {
		return nil, nil
	}
	return clone(cart), nil
}

func (s *cartStore) Save(ctx context.Context, cart *domain.Cart) error {
	if cart == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cart.UserID] = clone(cart)
	return nil
}

func (s *cartStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}

func clone(cart *domain.Cart) *domain.Cart {
	c := &domain.Cart{UserID: cart.UserID, Total: cart.Total}
	c.Items = make([]domain.CartItem, len(cart.Items))
	copy(c.Items, cart.Items)
	return c
}
