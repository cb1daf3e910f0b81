package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminDisabled      = errors.New("admin login is not configured")
)

const (
	bcryptCost        = 12
	minPasswordLength = 8
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword compares a password with its hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// AdminAuthenticator checks the shared admin password against a bcrypt hash.
type AdminAuthenticator struct {
	passwordHash string
}

func NewAdminAuthenticator(passwordHash string) *AdminAuthenticator {
	return &AdminAuthenticator{passwordHash: passwordHash}
}

// Authenticate returns ErrAdminDisabled when no hash is configured.
func (a *AdminAuthenticator) Authenticate(password string) error {
	if a.passwordHash == "" {
		return ErrAdminDisabled
	}
	if !CheckPassword(password, a.passwordHash) {
		return ErrInvalidCredentials
	}
	return nil
}
