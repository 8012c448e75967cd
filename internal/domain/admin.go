package domain

import (
	"context"
	"time"
)

// AdminSubject is the token subject issued to operators.
const AdminSubject = "admin"

// PasswordVerifier checks a plaintext password against a stored hash.
type PasswordVerifier interface {
	Compare(hash, password string) error
}

// TokenIssuer issues signed tokens (e.g. JWT) for an authenticated subject.
type TokenIssuer interface {
	Issue(subject string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// AdminAuthService authenticates operators for the reconciliation endpoints.
type AdminAuthService interface {
	// Login returns a token when password matches. Returns ErrInvalidCredentials otherwise.
	Login(ctx context.Context, password string) (string, error)
}
