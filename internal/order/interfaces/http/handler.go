package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/ecommerce/internal/identity"
	"github.com/wyfcoding/ecommerce/internal/order/application"
	"github.com/wyfcoding/ecommerce/internal/order/domain"
)

type Handler struct {
	app *application.OrderApplicationService
}

func NewHandler(app *application.OrderApplicationService) *Handler {
	return &Handler{app: app}
}

// RegisterRoutes 注册订单路由，全部需要登录；全量列表与配送确认仅管理员可用
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, requireAuth, requireAdmin gin.HandlerFunc) {
	g := r.Group("/orders", requireAuth)
	g.GET("", requireAdmin, h.ListAllOrders)
	g.GET("/myorders", h.ListMyOrders)
	g.POST("", h.CreateOrder)
	g.GET("/:id", h.GetOrder)
	g.PUT("/:id/pay", h.MarkPaid)
	g.PUT("/:id/deliver", requireAdmin, h.MarkDelivered)
}

type orderItemRequest struct {
	ProductID uint    `json:"productId" binding:"required"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price" binding:"min=0"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
}

type createOrderRequest struct {
	OrderItems      []orderItemRequest     `json:"orderItems"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod   domain.PaymentMethod   `json:"paymentMethod" binding:"required"`
}

func (h *Handler) CreateOrder(c *gin.Context) {
	id, _ := identity.FromContext(c)
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	cmd := application.CreateOrderCommand{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	}
	for _, item := range req.OrderItems {
		cmd.Items = append(cmd.Items, application.OrderItemInput{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Price:     decimal.NewFromFloat(item.Price),
			Quantity:  item.Quantity,
		})
	}
	order, err := h.app.CreateOrder(c.Request.Context(), id.UserID, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) ListMyOrders(c *gin.Context) {
	id, _ := identity.FromContext(c)
	orders, err := h.app.ListMyOrders(c.Request.Context(), id.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) ListAllOrders(c *gin.Context) {
	orders, err := h.app.ListAllOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, _ := identity.FromContext(c)
	orderID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid order id"})
		return
	}
	order, err := h.app.GetOrder(c.Request.Context(), id.UserID, id.Admin, orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) MarkPaid(c *gin.Context) {
	orderID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid order id"})
		return
	}
	order, err := h.app.MarkPaid(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) MarkDelivered(c *gin.Context) {
	orderID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid order id"})
		return
	}
	order, err := h.app.MarkDelivered(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrInvalidPaymentMethod):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}
