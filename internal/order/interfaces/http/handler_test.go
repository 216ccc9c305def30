package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/ecommerce/internal/identity"
	"github.com/wyfcoding/ecommerce/internal/order/application"
	"github.com/wyfcoding/ecommerce/internal/order/domain"
)

var secret = []byte("test-secret")

type fakeRepo struct {
	orders map[uint]*domain.Order
}

func (f *fakeRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeRepo) Save(ctx context.Context, order *domain.Order) error {
	if order.ID == 0 {
		order.ID = uint(len(f.orders) + 1)
	}
	f.orders[order.ID] = order
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	return f.orders[id], nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

type fakeCarts struct{}

func (fakeCarts) Lines(ctx context.Context, userID string) ([]domain.CartLine, error) {
	return nil, nil
}

func (fakeCarts) Clear(ctx context.Context, userID string) error { return nil }

func newRouter(t *testing.T) (*gin.Engine, *fakeRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &fakeRepo{orders: map[uint]*domain.Order{}}
	svc := application.NewOrderApplicationService(repo, fakeCarts{}, nil)

	r := gin.New()
	api := r.Group("/api")
	NewHandler(svc).RegisterRoutes(api, identity.RequireAuth(secret), identity.RequireAdmin())
	return r, repo
}

func token(t *testing.T, userID string, admin bool) string {
	t.Helper()
	tok, err := identity.NewToken(secret, userID, "Tester", admin, time.Hour)
	require.NoError(t, err)
	return tok
}

func do(r *gin.Engine, token, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func seedOrder(repo *fakeRepo, userID string) *domain.Order {
	order := domain.NewOrder("ORD-1", userID,
		[]domain.OrderItem{{ProductID: 1, Price: decimal.NewFromInt(10), Quantity: 2}},
		domain.ShippingAddress{Street: "1 Main St", City: "Springfield", Country: "US"},
		domain.PaymentMethodCard)
	order.ID = 1
	repo.orders[1] = order
	return order
}

func TestCreateOrder_Created(t *testing.T) {
	r, repo := newRouter(t)

	rr := do(r, token(t, "42", false), http.MethodPost, "/api/orders",
		`{"orderItems":[{"productId":1,"name":"Keyboard","price":10,"quantity":2}],
		  "shippingAddress":{"street":"1 Main St","city":"Springfield","country":"US"},
		  "paymentMethod":"card"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Len(t, repo.orders, 1)
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	r, _ := newRouter(t)

	rr := do(r, token(t, "42", false), http.MethodPost, "/api/orders",
		`{"shippingAddress":{"street":"1 Main St"},"paymentMethod":"card"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetOrder_ForbiddenForStranger(t *testing.T) {
	r, repo := newRouter(t)
	seedOrder(repo, "42")

	rr := do(r, token(t, "99", false), http.MethodGet, "/api/orders/1", "")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(r, token(t, "42", false), http.MethodGet, "/api/orders/1", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(r, token(t, "99", true), http.MethodGet, "/api/orders/1", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMarkDelivered_AdminOnly(t *testing.T) {
	r, repo := newRouter(t)
	order := seedOrder(repo, "42")

	rr := do(r, token(t, "42", false), http.MethodPut, "/api/orders/1/deliver", "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, order.IsDelivered)

	rr = do(r, token(t, "9", true), http.MethodPut, "/api/orders/1/deliver", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, order.IsDelivered)

	// 重复配送确认是安全的
	rr = do(r, token(t, "9", true), http.MethodPut, "/api/orders/1/deliver", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMarkPaid_NotFound(t *testing.T) {
	r, _ := newRouter(t)

	rr := do(r, token(t, "42", false), http.MethodPut, "/api/orders/7/pay", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListAllOrders_AdminOnly(t *testing.T) {
	r, repo := newRouter(t)
	seedOrder(repo, "42")

	rr := do(r, token(t, "42", false), http.MethodGet, "/api/orders", "")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(r, token(t, "9", true), http.MethodGet, "/api/orders", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestListMyOrders(t *testing.T) {
	r, repo := newRouter(t)
	seedOrder(repo, "42")

	rr := do(r, token(t, "42", false), http.MethodGet, "/api/orders/myorders", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ORD-1")

	rr = do(r, token(t, "99", false), http.MethodGet, "/api/orders/myorders", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "ORD-1")
}
