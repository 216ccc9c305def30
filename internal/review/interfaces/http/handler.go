package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/ecommerce/internal/identity"
	"github.com/wyfcoding/ecommerce/internal/review/application"
	"github.com/wyfcoding/ecommerce/internal/review/domain"
)

type Handler struct {
	app *application.ReviewApplicationService
}

func NewHandler(app *application.ReviewApplicationService) *Handler {
	return &Handler{app: app}
}

// RegisterRoutes 注册评价路由；商品评价列表公开，其余需要登录
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	g := r.Group("/reviews")
	g.GET("/product/:productId", h.ListProductReviews)
	g.POST("", requireAuth, h.CreateReview)
	g.PUT("/:id", requireAuth, h.UpdateReview)
	g.DELETE("/:id", requireAuth, h.DeleteReview)
}

func (h *Handler) ListProductReviews(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
		return
	}
	reviews, err := h.app.ListProductReviews(c.Request.Context(), uint(productID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *Handler) CreateReview(c *gin.Context) {
	id, _ := identity.FromContext(c)
	var req struct {
		ProductID uint   `json:"productId" binding:"required"`
		Rating    int    `json:"rating" binding:"required"`
		Comment   string `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product ID, rating, and comment are required"})
		return
	}
	review, err := h.app.CreateReview(c.Request.Context(), id.UserID, id.Name, req.ProductID, req.Rating, req.Comment)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *Handler) UpdateReview(c *gin.Context) {
	id, _ := identity.FromContext(c)
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid review id"})
		return
	}
	var req struct {
		Rating  *int    `json:"rating"`
		Comment *string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	review, err := h.app.UpdateReview(c.Request.Context(), id.UserID, uint(reviewID), req.Rating, req.Comment)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *Handler) DeleteReview(c *gin.Context) {
	id, _ := identity.FromContext(c)
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid review id"})
		return
	}
	if err := h.app.DeleteReview(c.Request.Context(), id.UserID, id.Admin, uint(reviewID)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrEmptyComment),
		errors.Is(err, domain.ErrCommentTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrNotAuthor):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrReviewNotFound),
		errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrAlreadyReviewed):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}
