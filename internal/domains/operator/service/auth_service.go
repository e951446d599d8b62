package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"pharmapos-backend/internal/domains/operator/model"
	"pharmapos-backend/internal/domains/operator/repository"
	"pharmapos-backend/pkg/jwt"
	"pharmapos-backend/pkg/logger"
)

// AuthService authenticates operators and issues tokens
type AuthService interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
}

type authService struct {
	operatorRepo repository.OperatorRepository
	jwtManager   *jwt.Manager
}

// NewAuthService creates a new auth service
func NewAuthService(operatorRepo repository.OperatorRepository, jwtManager *jwt.Manager) AuthService {
	return &authService{
		operatorRepo: operatorRepo,
		jwtManager:   jwtManager,
	}
}

func (s *authService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	operator, err := s.operatorRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, model.ErrOperatorNotFound) {
			// Same answer as a wrong password; do not leak which part failed.
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if !operator.IsActive {
		return nil, model.ErrOperatorInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(operator.ID.String(), operator.Username, operator.Role)
	if err != nil {
		return nil, err
	}

	logger.Info("operator logged in", map[string]interface{}{
		"operator_id": operator.ID.String(),
		"username":    operator.Username,
	})

	return &model.LoginResponse{
		Token:    token,
		Operator: operator.ToResponse(),
	}, nil
}
