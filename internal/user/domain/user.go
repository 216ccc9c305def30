// Package domain 包含用户服务的领域模型
package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("User not found")
	// ErrEmailTaken 邮箱已被注册
	ErrEmailTaken = errors.New("Email already registered")
	// ErrInvalidCredentials 邮箱或密码错误
	ErrInvalidCredentials = errors.New("Invalid email or password")
	// ErrWrongPassword 原密码不正确
	ErrWrongPassword = errors.New("Current password is incorrect")
)

// User 用户实体
type User struct {
	gorm.Model
	Name         string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email        string `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	IsAdmin      bool   `gorm:"column:is_admin;not null;default:false" json:"isAdmin"`
}

func (User) TableName() string { return "users" }

// UserRepository 用户仓储接口
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	// GetByID / GetByEmail 用户不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
