package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"classregistration/internal/domain"
)

type adminAuthService struct {
	passwordHash string
	verifier     domain.PasswordVerifier
	issuer       domain.TokenIssuer
	tokenTTL     time.Duration
	logger       *slog.Logger
}

// NewAdminAuthService authenticates the single operator account against passwordHash.
func NewAdminAuthService(passwordHash string, verifier domain.PasswordVerifier, issuer domain.TokenIssuer, tokenTTL time.Duration, logger *slog.Logger) domain.AdminAuthService {
	return &adminAuthService{
		passwordHash: passwordHash,
		verifier:     verifier,
		issuer:       issuer,
		tokenTTL:     tokenTTL,
		logger:       logger,
	}
}

func (s *adminAuthService) Login(ctx context.Context, password string) (string, error) {
	if password == "" || s.passwordHash == "" {
		return "", domain.ErrInvalidCredentials
	}
	if err := s.verifier.Compare(s.passwordHash, password); err != nil {
		s.logger.WarnContext(ctx, "operator login rejected")
		return "", domain.ErrInvalidCredentials
	}
	token, err := s.issuer.Issue(domain.AdminSubject, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}
