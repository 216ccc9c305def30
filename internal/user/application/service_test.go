package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/ecommerce/internal/identity"
	"github.com/wyfcoding/ecommerce/internal/user/domain"
	"golang.org/x/crypto/bcrypt"
)

var secret = []byte("test-secret")

type fakeRepo struct {
	saveFunc       func(ctx context.Context, user *domain.User) error
	getByIDFunc    func(ctx context.Context, id uint) (*domain.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func (f *fakeRepo) Save(ctx context.Context, user *domain.User) error {
	if f.saveFunc != nil {
		return f.saveFunc(ctx, user)
	}
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	if f.getByIDFunc != nil {
		return f.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.getByEmailFunc != nil {
		return f.getByEmailFunc(ctx, email)
	}
	return nil, nil
}

func storedUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{Name: "Alice", Email: "alice@example.com", PasswordHash: string(hash)}
	user.ID = 42
	return user
}

func TestRegister_HashesPassword(t *testing.T) {
	var saved *domain.User
	repo := &fakeRepo{
		saveFunc: func(ctx context.Context, user *domain.User) error {
			saved = user
			return nil
		},
	}
	svc := NewUserApplicationService(repo, secret)

	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := &fakeRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{Email: email}, nil
		},
	}
	svc := NewUserApplicationService(repo, secret)

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLogin_IssuesToken(t *testing.T) {
	stored := storedUser(t, "s3cret")
	stored.IsAdmin = true
	repo := &fakeRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return stored, nil
		},
	}
	svc := NewUserApplicationService(repo, secret)

	user, token, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	id, err := identity.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "42", id.UserID)
	assert.True(t, id.Admin)
}

func TestLogin_WrongPassword(t *testing.T) {
	stored := storedUser(t, "s3cret")
	repo := &fakeRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return stored, nil
		},
	}
	svc := NewUserApplicationService(repo, secret)

	_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewUserApplicationService(&fakeRepo{}, secret)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUpdateProfile_EmailConflict(t *testing.T) {
	stored := storedUser(t, "s3cret")
	repo := &fakeRepo{
		getByIDFunc: func(ctx context.Context, id uint) (*domain.User, error) {
			return stored, nil
		},
		getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{Email: email}, nil
		},
	}
	svc := NewUserApplicationService(repo, secret)

	_, err := svc.UpdateProfile(context.Background(), "42", "", "taken@example.com")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestChangePassword_RequiresCurrent(t *testing.T) {
	stored := storedUser(t, "s3cret")
	repo := &fakeRepo{
		getByIDFunc: func(ctx context.Context, id uint) (*domain.User, error) {
			return stored, nil
		},
	}
	svc := NewUserApplicationService(repo, secret)

	err := svc.ChangePassword(context.Background(), "42", "wrong", "newpass")
	assert.ErrorIs(t, err, domain.ErrWrongPassword)

	err = svc.ChangePassword(context.Background(), "42", "s3cret", "newpass")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpass")))
}

func TestGetProfile_NotFound(t *testing.T) {
	svc := NewUserApplicationService(&fakeRepo{}, secret)

	_, err := svc.GetProfile(context.Background(), "999")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.GetProfile(context.Background(), "not-a-number")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
