package security

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/angelmondragon/talentconnect-backend/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultBcryptCost = 12
	resetCodeDigits   = 6
)

// HashPassword returns a bcrypt hash for the provided password.
func HashPassword(password string, cfg config.PasswordConfig) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), costFromConfig(cfg))
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword returns true when the password matches the encoded hash.
func VerifyPassword(password, encoded string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}

func costFromConfig(cfg config.PasswordConfig) int {
	switch {
	case cfg.BcryptCost == 0:
		return defaultBcryptCost
	case cfg.BcryptCost < bcrypt.MinCost:
		return bcrypt.MinCost
	case cfg.BcryptCost > bcrypt.MaxCost:
		return bcrypt.MaxCost
	default:
		return cfg.BcryptCost
	}
}

// GenerateResetCode produces a six digit numeric one-time code.
func GenerateResetCode() (string, error) {
	lower := int64(100000)
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate reset code: %w", err)
	}
	return fmt.Sprintf("%0*d", resetCodeDigits, lower+n.Int64()), nil
}
