package bcrypt

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultCost = 10
)

// HashPassword returns a one-way bcrypt hash of password.
func HashPassword(password string) (string, error) {
	return HashPasswordWithCost(password, DefaultCost)
}

func HashPasswordWithCost(password string, cost int) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// ComparePassword reports a non-nil error when password does not match.
func ComparePassword(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		return fmt.Errorf("password comparison failed: %w", err)
	}
	return nil
}

// VerifyHash reports whether hash looks like a bcrypt hash.
func VerifyHash(hash string) bool {
	return len(hash) == 60 && hash[0:2] == "$2"
}

var (
	dummyOnce sync.Once
	dummyHash string
)

// DummyHash returns a valid hash at DefaultCost that no real password is
// checked against. Comparing with it when an account is missing makes the
// miss cost as much as a wrong password.
func DummyHash() string {
	dummyOnce.Do(func() {
		h, err := HashPassword("maeum:no-such-account")
		if err != nil {
			panic(err)
		}
		dummyHash = h
	})
	return dummyHash
}
