package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder_ComputesTotal(t *testing.T) {
	items := []OrderItem{
		{ProductID: 1, Name: "Keyboard", Price: decimal.NewFromInt(10), Quantity: 2},
		{ProductID: 2, Name: "Mouse", Price: decimal.NewFromInt(5), Quantity: 3},
	}
	order := NewOrder("ORD-1", "user-1", items, ShippingAddress{}, PaymentMethodCard)

	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(35)), "total = %s", order.TotalPrice)
	assert.False(t, order.IsPaid)
	assert.False(t, order.IsDelivered)
	assert.Nil(t, order.PaidAt)
	assert.Nil(t, order.DeliveredAt)
}

func TestMarkPaid_Monotonic(t *testing.T) {
	order := NewOrder("ORD-1", "user-1", []OrderItem{{Price: decimal.NewFromInt(1), Quantity: 1}}, ShippingAddress{}, PaymentMethodCard)

	first := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	order.MarkPaid(first)
	require.True(t, order.IsPaid)
	assert.Equal(t, first, *order.PaidAt)

	// 重复支付只刷新时间戳，标志不会回退
	second := first.Add(time.Hour)
	order.MarkPaid(second)
	assert.True(t, order.IsPaid)
	assert.Equal(t, second, *order.PaidAt)
}

func TestMarkDelivered_WithoutPayment(t *testing.T) {
	order := NewOrder("ORD-1", "user-1", []OrderItem{{Price: decimal.NewFromInt(1), Quantity: 1}}, ShippingAddress{}, PaymentMethodCash)

	order.MarkDelivered(time.Now())
	assert.True(t, order.IsDelivered)
	assert.False(t, order.IsPaid)
}

func TestCanBeViewedBy(t *testing.T) {
	order := NewOrder("ORD-1", "user-1", nil, ShippingAddress{}, PaymentMethodCard)

	assert.True(t, order.CanBeViewedBy("user-1", false))
	assert.True(t, order.CanBeViewedBy("admin-9", true))
	assert.False(t, order.CanBeViewedBy("user-2", false))
}

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, PaymentMethodCard.Valid())
	assert.True(t, PaymentMethodPaypal.Valid())
	assert.True(t, PaymentMethodCash.Valid())
	assert.False(t, PaymentMethod("bitcoin").Valid())
	assert.False(t, PaymentMethod("").Valid())
}
