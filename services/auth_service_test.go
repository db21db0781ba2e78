package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/youthleague/football-system/models"
	"github.com/youthleague/football-system/repositories"
)

type stubUserRepo struct {
	repositories.UserRepository
	create     func(ctx context.Context, user *models.User) error
	getByEmail func(ctx context.Context, email string) (*models.User, error)
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	return s.create(ctx, user)
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmail(ctx, email)
}

func TestRegister(t *testing.T) {
	var stored *models.User
	svc := NewAuthService(&stubUserRepo{create: func(ctx context.Context, user *models.User) error {
		user.ID = 1
		stored = user
		return nil
	}})

	user, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Dana",
		LastName:  "Voss",
		Email:     "  Dana.Voss@Example.com ",
		Password:  "correct-horse",
	})
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Equal(t, "dana.voss@example.com", user.Email)
	assert.Equal(t, models.RoleViewer, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")))
}

func TestRegister_PasswordTooShort(t *testing.T) {
	svc := NewAuthService(&stubUserRepo{create: func(ctx context.Context, user *models.User) error {
		return nil
	}})

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Dana",
		Email:     "dana@example.com",
		Password:  "short",
	})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegister_EmailConflict(t *testing.T) {
	svc := NewAuthService(&stubUserRepo{create: func(ctx context.Context, user *models.User) error {
		return repositories.ErrUserEmailConflict
	}})

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Dana",
		Email:     "dana@example.com",
		Password:  "correct-horse",
	})
	assert.ErrorIs(t, err, ErrUserEmailConflict)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &stubUserRepo{getByEmail: func(ctx context.Context, email string) (*models.User, error) {
		if email != "dana@example.com" {
			return nil, repositories.ErrUserNotFound
		}
		return &models.User{ID: 1, Email: email, Role: models.RoleAdmin, PasswordHash: string(hash)}, nil
	}}
	svc := NewAuthService(repo)

	user, err := svc.Login(context.Background(), LoginInput{Email: "Dana@Example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)

	_, err = svc.Login(context.Background(), LoginInput{Email: "dana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// An unknown email reads the same as a bad password.
	_, err = svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
