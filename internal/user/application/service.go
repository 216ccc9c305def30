package application

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/wyfcoding/ecommerce/internal/identity"
	"github.com/wyfcoding/ecommerce/internal/user/domain"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// UserApplicationService 用户应用服务
type UserApplicationService struct {
	repo   domain.UserRepository
	secret []byte
}

func NewUserApplicationService(repo domain.UserRepository, secret []byte) *UserApplicationService {
	return &UserApplicationService{repo: repo, secret: secret}
}

// Register 注册用户，邮箱全局唯一
func (s *UserApplicationService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return user, nil
}

// Login 校验凭证并签发访问令牌
func (s *UserApplicationService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := identity.NewToken(s.secret, strconv.FormatUint(uint64(user.ID), 10), user.Name, user.IsAdmin, tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return user, token, nil
}

// GetProfile 返回用户资料
func (s *UserApplicationService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.getByStringID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile 更新昵称/邮箱；改到已被占用的邮箱时失败
func (s *UserApplicationService) UpdateProfile(ctx context.Context, userID, name, email string) (*domain.User, error) {
	user, err := s.getByStringID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if email != "" && email != user.Email {
		existing, err := s.repo.GetByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if existing != nil {
			return nil, domain.ErrEmailTaken
		}
		user.Email = email
	}
	if name != "" {
		user.Name = name
	}
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return user, nil
}

// ChangePassword 校验原密码后更换密码
func (s *UserApplicationService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.getByStringID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	if err := s.repo.Save(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (s *UserApplicationService) getByStringID(ctx context.Context, userID string) (*domain.User, error) {
	id, err := strconv.ParseUint(userID, 10, 64)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	user, err := s.repo.GetByID(ctx, uint(id))
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
