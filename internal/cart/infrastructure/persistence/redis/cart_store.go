package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wyfcoding/ecommerce/internal/cart/domain"
)

type cartStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewCartStore 创建基于 Redis 的购物车存储
// 购物车是临时状态，带 TTL 过期，不做持久化保证
func NewCartStore(client redis.UniversalClient) domain.CartStore {
	return &cartStore{
		client: client,
		prefix: "cart:user:",
		ttl:    30 * 24 * time.Hour,
	}
}

func (s *cartStore) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	data, err := s.client.Get(ctx, s.prefix+userID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cart from redis: %w", err)
	}
	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	cart.UserID = userID
	return &cart, nil
}

func (s *cartStore) Save(ctx context.Context, cart *domain.Cart) error {
	if cart == nil {
		return nil
	}
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	return s.client.Set(ctx, s.prefix+cart.UserID, data, s.ttl).Err()
}

func (s *cartStore) Delete(ctx context.Context, userID string) error {
	return s.client.Del(ctx, s.prefix+userID).Err()
}
