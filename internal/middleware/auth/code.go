package auth

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// GenerateCode produces a fresh confirmation code. The raw value goes out by
// mail; only its hash is persisted.
func GenerateCode() string {
	return uuid.New().String()
}

// HashCode creates a bcrypt hash of a confirmation code.
func HashCode(code string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyCode checks a presented code against the stored hash.
func VerifyCode(hashedCode, providedCode string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedCode), []byte(providedCode))
}
