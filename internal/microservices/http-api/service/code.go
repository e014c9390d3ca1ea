package service

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// newCode is swapped in tests that need a known confirmation code.
var newCode = uuid.NewString

// hashCode creates a bcrypt hash of a confirmation code.
func hashCode(code string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// verifyCode checks a plaintext code against the stored hash.
func verifyCode(hash, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
