package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-booking/internal/data/entity"
	"event-booking/internal/data/repository"
	"event-booking/internal/dto/request"
	"event-booking/internal/dto/response"
	"event-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Profile(ctx context.Context, userID string) (*response.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. Create user entity; email unik di-enforce oleh constraint DB
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         entity.RoleUser,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, err
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.log.Error("Failed to find user", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return s.buildAuthResponse(user)
}

func (s *authService) Profile(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) buildAuthResponse(user *entity.User) (*response.AuthResponse, error) {
	token, expiresAt, err := utils.GenerateAccessToken(
		s.config.JWT.Secret, user.ID, string(user.Role), s.config.JWT.ExpiryHours,
	)
	if err != nil {
		s.log.Error("Failed to generate token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &response.AuthResponse{
		User:      response.UserToResponse(user),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
