package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"tickets-go-admin/internal/auth"
	"tickets-go-admin/internal/clock"
	"tickets-go-admin/internal/gateway"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingCredentials = errors.New("email and password are required")
)

// AuthService signs operators in against the ticketing API
type AuthService struct {
	api         AuthAPI
	clock       clock.Clock
	fallbackTTL time.Duration
	logger      *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(api AuthAPI, clk clock.Clock, fallbackTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{api: api, clock: clk, fallbackTTL: fallbackTTL, logger: logger}
}

// Login exchanges email and password for a credential. The display name is
// the token's name claim, else the email.
func (s *AuthService) Login(ctx context.Context, email, password string) (auth.Credential, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return auth.Credential{}, ErrMissingCredentials
	}

	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		if gateway.IsStatus(err, http.StatusUnauthorized) ||
			gateway.IsStatus(err, http.StatusBadRequest) ||
			gateway.IsStatus(err, http.StatusNotFound) {
			return auth.Credential{}, ErrInvalidCredentials
		}
		return auth.Credential{}, fmt.Errorf("failed to login: %w", err)
	}

	return auth.NewCredential(res.AccessToken, email, s.clock.Now(), s.fallbackTTL), nil
}

// Logout tells the API the operator left. Failures are logged only: the
// console clears its own state regardless.
func (s *AuthService) Logout(ctx context.Context) {
	if gateway.TokenFromContext(ctx) == "" {
		return
	}
	if err := s.api.Logout(ctx); err != nil {
		s.logger.Warn("remote logout failed", zap.Error(err))
	}
}
