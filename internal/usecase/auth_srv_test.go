package usecase_test

import (
	"context"
	"testing"

	"event-booking/internal/data/repository"
	"event-booking/internal/dto/request"
	"event-booking/internal/usecase"
	"event-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(repo *repository.Repository) usecase.AuthService {
	config := &utils.Config{
		JWT: utils.JWTConfig{
			Secret:      "test-secret-key",
			ExpiryHours: 1,
		},
	}
	return usecase.NewAuthService(repo, config, zap.NewNop())
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns token and user role", func(t *testing.T) {
		repo, _ := newMemRepository()
		svc := newAuthService(repo)

		auth, err := svc.Register(ctx, &request.RegisterRequest{
			Name:     "Budi Santoso",
			Email:    "budi@example.com",
			Password: "rahasia-banget",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, auth.Token)
		assert.Equal(t, "budi@example.com", auth.User.Email)
		assert.Equal(t, "user", auth.User.Role)

		// Token yang baru dibuat harus bisa diparse balik.
		userID, role, err := utils.ParseAccessToken("test-secret-key", auth.Token)
		require.NoError(t, err)
		assert.Equal(t, auth.User.ID, userID.String())
		assert.Equal(t, "user", role)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		repo, _ := newMemRepository()
		svc := newAuthService(repo)

		req := &request.RegisterRequest{
			Name:     "Budi Santoso",
			Email:    "budi@example.com",
			Password: "rahasia-banget",
		}
		_, err := svc.Register(ctx, req)
		require.NoError(t, err)

		_, err = svc.Register(ctx, req)
		assert.ErrorIs(t, err, repository.ErrEmailTaken)
	})

	t.Run("weak password fails validation", func(t *testing.T) {
		repo, _ := newMemRepository()
		svc := newAuthService(repo)

		_, err := svc.Register(ctx, &request.RegisterRequest{
			Name:     "Budi Santoso",
			Email:    "budi@example.com",
			Password: "short",
		})

		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo, _ := newMemRepository()
	svc := newAuthService(repo)

	_, err := svc.Register(ctx, &request.RegisterRequest{
		Name:     "Siti Aminah",
		Email:    "siti@example.com",
		Password: "password-kuat",
	})
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		auth, err := svc.Login(ctx, &request.LoginRequest{
			Email:    "siti@example.com",
			Password: "password-kuat",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, auth.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &request.LoginRequest{
			Email:    "siti@example.com",
			Password: "password-salah",
		})

		assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
	})

	t.Run("unknown email indistinguishable from wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &request.LoginRequest{
			Email:    "tidak-ada@example.com",
			Password: "password-kuat",
		})

		assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
	})
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	repo, _ := newMemRepository()
	svc := newAuthService(repo)

	auth, err := svc.Register(ctx, &request.RegisterRequest{
		Name:     "Siti Aminah",
		Email:    "siti@example.com",
		Password: "password-kuat",
	})
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, auth.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Siti Aminah", profile.Name)
	assert.Equal(t, "siti@example.com", profile.Email)
}
