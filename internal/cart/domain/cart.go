// Package domain 包含购物车服务的领域模型
package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrCartNotFound 购物车不存在
	ErrCartNotFound = errors.New("Cart not found")
	// ErrItemNotFound 购物车中没有该商品
	ErrItemNotFound = errors.New("Item not found in cart")
	// ErrInvalidQuantity 数量必须为正整数
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// CartItem 购物车条目
// name/image/price 是加入购物车时的商品快照，之后目录价格变化不影响进行中的购物车
type CartItem struct {
	ProductID uint            `json:"productId"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Cart 用户购物车
// 同一商品在购物车中最多只有一条条目；total 在每次变更后重算
type Cart struct {
	UserID string          `json:"-"`
	Items  []CartItem      `json:"items"`
	Total  decimal.Decimal `json:"total"`
}

// NewCart 创建空购物车
func NewCart(userID string) *Cart {
	return &Cart{UserID: userID, Items: []CartItem{}, Total: decimal.Zero}
}

// AddItem 加入商品；已存在同一商品时累加数量，否则按快照追加新条目
func (c *Cart) AddItem(productID uint, name, image string, price decimal.Decimal, qty int) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += qty
			c.recomputeTotal()
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		ProductID: productID,
		Name:      name,
		Image:     image,
		Price:     price,
		Quantity:  qty,
	})
	c.recomputeTotal()
}

// SetQuantity 将条目数量设置为给定值（绝对设置，不是累加）
// qty <= 0 表示删除该条目；商品不在购物车时返回 ErrItemNotFound
func (c *Cart) SetQuantity(productID uint, qty int) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			if qty <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = qty
			}
			c.recomputeTotal()
			return nil
		}
	}
	return ErrItemNotFound
}

// RemoveItem 移除商品；商品不存在时是幂等空操作
func (c *Cart) RemoveItem(productID uint) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			break
		}
	}
	c.recomputeTotal()
}

// IsEmpty 购物车是否为空
func (c *Cart) IsEmpty() bool { return len(c.Items) == 0 }

// recomputeTotal 按快照价格重算总价：total = Σ(price × quantity)
func (c *Cart) recomputeTotal() {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	c.Total = total
}
