package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/ecommerce/internal/review/domain"
)

// ReviewApplicationService 评价应用服务
// 任何评价变更成功前都必须完成商品评分聚合的重算，
// 否则目录上的 rating/numReviews 会和评价集合失去同步
type ReviewApplicationService struct {
	repo     domain.ReviewRepository
	products domain.ProductGateway
}

func NewReviewApplicationService(repo domain.ReviewRepository, products domain.ProductGateway) *ReviewApplicationService {
	return &ReviewApplicationService{repo: repo, products: products}
}

// CreateReview 创建评价；同一用户对同一商品只能评价一次
func (s *ReviewApplicationService) CreateReview(ctx context.Context, userID, userName string, productID uint, rating int, comment string) (*domain.Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	comment = strings.TrimSpace(comment)
	if err := validateComment(comment); err != nil {
		return nil, err
	}

	exists, err := s.products.Exists(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to check product: %w", err)
	}
	if !exists {
		return nil, domain.ErrProductNotFound
	}

	existing, err := s.repo.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrAlreadyReviewed
	}

	review := &domain.Review{
		UserID:    userID,
		UserName:  userName,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.repo.Save(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	if err := s.recomputeProductRating(ctx, productID); err != nil {
		return nil, err
	}
	return review, nil
}

// UpdateReview 更新评价；只提供的字段才被校验并应用
func (s *ReviewApplicationService) UpdateReview(ctx context.Context, userID string, reviewID uint, rating *int, comment *string) (*domain.Review, error) {
	review, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	if review == nil {
		return nil, domain.ErrReviewNotFound
	}
	if review.UserID != userID {
		return nil, domain.ErrNotAuthor
	}

	if rating != nil {
		if err := validateRating(*rating); err != nil {
			return nil, err
		}
		review.Rating = *rating
	}
	if comment != nil {
		trimmed := strings.TrimSpace(*comment)
		if err := validateComment(trimmed); err != nil {
			return nil, err
		}
		review.Comment = trimmed
	}

	if err := s.repo.Save(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	if err := s.recomputeProductRating(ctx, review.ProductID); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview 删除评价；作者本人或管理员可删
func (s *ReviewApplicationService) DeleteReview(ctx context.Context, userID string, isAdmin bool, reviewID uint) error {
	review, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("failed to load review: %w", err)
	}
	if review == nil {
		return domain.ErrReviewNotFound
	}
	if review.UserID != userID && !isAdmin {
		return domain.ErrNotAuthor
	}

	productID := review.ProductID
	if err := s.repo.Delete(ctx, reviewID); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	return s.recomputeProductRating(ctx, productID)
}

// ListProductReviews 列出商品的全部评价，新的在前
func (s *ReviewApplicationService) ListProductReviews(ctx context.Context, productID uint) ([]*domain.Review, error) {
	return s.repo.ListByProduct(ctx, productID)
}

// recomputeProductRating 重算商品评分聚合
// 每次全量读取评价集合再写回，并发写之间 last-write-wins，下次变更自行修正
func (s *ReviewApplicationService) recomputeProductRating(ctx context.Context, productID uint) error {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to list reviews: %w", err)
	}

	if len(reviews) == 0 {
		if err := s.products.UpdateRating(ctx, productID, decimal.Zero, 0); err != nil {
			return fmt.Errorf("failed to update product rating: %w", err)
		}
		return nil
	}

	sum := int64(0)
	for _, r := range reviews {
		sum += int64(r.Rating)
	}
	// 算术平均，按缩放值四舍五入（half away from zero）保留一位小数
	mean := decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(reviews)))).Round(1)

	if err := s.products.UpdateRating(ctx, productID, mean, len(reviews)); err != nil {
		return fmt.Errorf("failed to update product rating: %w", err)
	}
	return nil
}

func validateRating(rating int) error {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return domain.ErrInvalidRating
	}
	return nil
}

func validateComment(comment string) error {
	if comment == "" {
		return domain.ErrEmptyComment
	}
	if len(comment) > domain.MaxCommentLength {
		return domain.ErrCommentTooLong
	}
	return nil
}
