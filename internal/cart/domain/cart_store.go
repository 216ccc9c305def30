package domain

import "context"

// CartStore 购物车键值存储抽象
// 购物车是用户维度的临时状态，后端实现可在内存 map 与外部缓存之间切换
type CartStore interface {
	// Get 返回用户购物车；不存在时返回 (nil, nil)
	Get(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, userID string) error
}
