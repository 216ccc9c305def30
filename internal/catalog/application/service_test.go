package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/ecommerce/internal/catalog/domain"
)

type fakeRepo struct {
	saveFunc         func(ctx context.Context, product *domain.Product) error
	getByIDFunc      func(ctx context.Context, id uint) (*domain.Product, error)
	listFunc         func(ctx context.Context, query domain.ProductQuery) ([]*domain.Product, error)
	deleteFunc       func(ctx context.Context, id uint) error
	updateRatingFunc func(ctx context.Context, id uint, rating decimal.Decimal, numReviews int) error
}

func (f *fakeRepo) Save(ctx context.Context, product *domain.Product) error {
	if f.saveFunc != nil {
		return f.saveFunc(ctx, product)
	}
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	if f.getByIDFunc != nil {
		return f.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (f *fakeRepo) List(ctx context.Context, query domain.ProductQuery) ([]*domain.Product, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx, query)
	}
	return nil, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uint) error {
	if f.deleteFunc != nil {
		return f.deleteFunc(ctx, id)
	}
	return nil
}

func (f *fakeRepo) UpdateRating(ctx context.Context, id uint, rating decimal.Decimal, numReviews int) error {
	if f.updateRatingFunc != nil {
		return f.updateRatingFunc(ctx, id, rating, numReviews)
	}
	return nil
}

func TestCreateProduct_StartsUnrated(t *testing.T) {
	var saved *domain.Product
	repo := &fakeRepo{
		saveFunc: func(ctx context.Context, product *domain.Product) error {
			saved = product
			return nil
		},
	}
	svc := NewCatalogApplicationService(repo)

	product, err := svc.CreateProduct(context.Background(), CreateProductCommand{
		Name: "Keyboard", Price: decimal.RequireFromString("49.99"), Category: "peripherals", Stock: 10,
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.True(t, product.Rating.IsZero())
	assert.Equal(t, 0, product.NumReviews)
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := NewCatalogApplicationService(&fakeRepo{})

	_, err := svc.GetProduct(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	svc := NewCatalogApplicationService(&fakeRepo{})

	_, err := svc.UpdateProduct(context.Background(), 404, CreateProductCommand{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestUpdateProduct_DoesNotTouchRating(t *testing.T) {
	stored := &domain.Product{
		Name: "Keyboard", Price: decimal.NewFromInt(10),
		Rating: decimal.RequireFromString("4.3"), NumReviews: 7,
	}
	repo := &fakeRepo{
		getByIDFunc: func(ctx context.Context, id uint) (*domain.Product, error) {
			return stored, nil
		},
	}
	svc := NewCatalogApplicationService(repo)

	product, err := svc.UpdateProduct(context.Background(), 1, CreateProductCommand{
		Name: "Mechanical Keyboard", Price: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.True(t, product.Rating.Equal(decimal.RequireFromString("4.3")))
	assert.Equal(t, 7, product.NumReviews)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	svc := NewCatalogApplicationService(&fakeRepo{})

	err := svc.DeleteProduct(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestListProducts_PassesQuery(t *testing.T) {
	var got domain.ProductQuery
	repo := &fakeRepo{
		listFunc: func(ctx context.Context, query domain.ProductQuery) ([]*domain.Product, error) {
			got = query
			return []*domain.Product{}, nil
		},
	}
	svc := NewCatalogApplicationService(repo)

	_, err := svc.ListProducts(context.Background(), "peripherals", "keyboard", domain.SortPriceLow)
	require.NoError(t, err)
	assert.Equal(t, "peripherals", got.Category)
	assert.Equal(t, "keyboard", got.Search)
	assert.Equal(t, domain.SortPriceLow, got.Sort)
}
