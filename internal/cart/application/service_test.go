package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/ecommerce/internal/cart/domain"
)

type fakeStore struct {
	getFunc    func(ctx context.Context, userID string) (*domain.Cart, error)
	saveFunc   func(ctx context.Context, cart *domain.Cart) error
	deleteFunc func(ctx context.Context, userID string) error
}

func (f *fakeStore) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	if f.getFunc != nil {
		return f.getFunc(ctx, userID)
	}
	return nil, nil
}

func (f *fakeStore) Save(ctx context.Context, cart *domain.Cart) error {
	if f.saveFunc != nil {
		return f.saveFunc(ctx, cart)
	}
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, userID string) error {
	if f.deleteFunc != nil {
		return f.deleteFunc(ctx, userID)
	}
	return nil
}

type fakeProducts struct {
	getByIDFunc func(ctx context.Context, id uint) (*domain.ProductSnapshot, error)
}

func (f *fakeProducts) GetByID(ctx context.Context, id uint) (*domain.ProductSnapshot, error) {
	if f.getByIDFunc != nil {
		return f.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func keyboard() *domain.ProductSnapshot {
	return &domain.ProductSnapshot{ID: 1, Name: "Keyboard", Image: "kb.jpg", Price: decimal.NewFromInt(10)}
}

func TestGetCart_EmptyWhenAbsent(t *testing.T) {
	svc := NewCartApplicationService(&fakeStore{}, &fakeProducts{})

	cart, err := svc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Total.IsZero())
}

func TestAddItem_SnapshotsProduct(t *testing.T) {
	var saved *domain.Cart
	store := &fakeStore{
		saveFunc: func(ctx context.Context, cart *domain.Cart) error {
			saved = cart
			return nil
		},
	}
	products := &fakeProducts{
		getByIDFunc: func(ctx context.Context, id uint) (*domain.ProductSnapshot, error) {
			return keyboard(), nil
		},
	}
	svc := NewCartApplicationService(store, products)

	cart, err := svc.AddItem(context.Background(), "user-1", 1, 2)
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Keyboard", cart.Items[0].Name)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, cart.Total.Equal(decimal.NewFromInt(20)), "total = %s", cart.Total)
}

func TestAddItem_RejectsNonPositiveQuantity(t *testing.T) {
	svc := NewCartApplicationService(&fakeStore{}, &fakeProducts{})

	_, err := svc.AddItem(context.Background(), "user-1", 1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.AddItem(context.Background(), "user-1", 1, -3)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	svc := NewCartApplicationService(&fakeStore{}, &fakeProducts{})

	_, err := svc.AddItem(context.Background(), "user-1", 404, 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestAddItem_MergesIntoExistingCart(t *testing.T) {
	existing := domain.NewCart("user-1")
	existing.AddItem(1, "Keyboard", "kb.jpg", decimal.NewFromInt(10), 1)
	store := &fakeStore{
		getFunc: func(ctx context.Context, userID string) (*domain.Cart, error) {
			return existing, nil
		},
	}
	products := &fakeProducts{
		getByIDFunc: func(ctx context.Context, id uint) (*domain.ProductSnapshot, error) {
			return keyboard(), nil
		},
	}
	svc := NewCartApplicationService(store, products)

	cart, err := svc.AddItem(context.Background(), "user-1", 1, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestUpdateItem_CartNotFound(t *testing.T) {
	svc := NewCartApplicationService(&fakeStore{}, &fakeProducts{})

	_, err := svc.UpdateItem(context.Background(), "user-1", 1, 2)
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
}

func TestUpdateItem_SetsAbsoluteQuantity(t *testing.T) {
	existing := domain.NewCart("user-1")
	existing.AddItem(1, "Keyboard", "kb.jpg", decimal.NewFromInt(10), 5)
	store := &fakeStore{
		getFunc: func(ctx context.Context, userID string) (*domain.Cart, error) {
			return existing, nil
		},
	}
	svc := NewCartApplicationService(store, &fakeProducts{})

	cart, err := svc.UpdateItem(context.Background(), "user-1", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestUpdateItem_ItemNotFound(t *testing.T) {
	existing := domain.NewCart("user-1")
	existing.AddItem(1, "Keyboard", "kb.jpg", decimal.NewFromInt(10), 1)
	store := &fakeStore{
		getFunc: func(ctx context.Context, userID string) (*domain.Cart, error) {
			return existing, nil
		},
	}
	svc := NewCartApplicationService(store, &fakeProducts{})

	_, err := svc.UpdateItem(context.Background(), "user-1", 99, 2)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestRemoveItem_IdempotentOnMissingItem(t *testing.T) {
	existing := domain.NewCart("user-1")
	existing.AddItem(1, "Keyboard", "kb.jpg", decimal.NewFromInt(10), 1)
	store := &fakeStore{
		getFunc: func(ctx context.Context, userID string) (*domain.Cart, error) {
			return existing, nil
		},
	}
	svc := NewCartApplicationService(store, &fakeProducts{})

	cart, err := svc.RemoveItem(context.Background(), "user-1", 99)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestClearCart(t *testing.T) {
	deleted := ""
	store := &fakeStore{
		deleteFunc: func(ctx context.Context, userID string) error {
			deleted = userID
			return nil
		},
	}
	svc := NewCartApplicationService(store, &fakeProducts{})

	require.NoError(t, svc.ClearCart(context.Background(), "user-1"))
	assert.Equal(t, "user-1", deleted)
}

func TestAddItem_StoreError(t *testing.T) {
	store := &fakeStore{
		getFunc: func(ctx context.Context, userID string) (*domain.Cart, error) {
			return nil, errors.New("redis down")
		},
	}
	products := &fakeProducts{
		getByIDFunc: func(ctx context.Context, id uint) (*domain.ProductSnapshot, error) {
			return keyboard(), nil
		},
	}
	svc := NewCartApplicationService(store, products)

	_, err := svc.AddItem(context.Background(), "user-1", 1, 1)
	assert.Error(t, err)
}
