package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"classregistration/internal/domain"
)

type bcryptVerifier struct{}

// NewBcryptVerifier returns a PasswordVerifier for bcrypt hashes such as the one stored in
// ADMIN_PASSWORD_HASH.
func NewBcryptVerifier() domain.PasswordVerifier {
	return bcryptVerifier{}
}

func (bcryptVerifier) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// HashPassword produces a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
