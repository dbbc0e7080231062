package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, input LoginInput) error
}

type LoginInput struct {
	Password string `json:"password"`
}

type authService struct {
	adminPasswordHash []byte
}

func NewAuthService(adminPasswordHash string) AuthService {
	return &authService{
		adminPasswordHash: []byte(adminPasswordHash),
	}
}

// Login checks the shared admin password. Signing the token is left to the transport layer.
func (s *authService) Login(ctx context.Context, input LoginInput) error {
	if input.Password == "" {
		return ErrInvalidCredentials
	}

	err := bcrypt.CompareHashAndPassword(s.adminPasswordHash, []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to compare password hash: %w", err)
	}
	return nil
}
