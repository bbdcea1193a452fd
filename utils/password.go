package utils

import (
	"warehouse-app/config"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a self-describing bcrypt string (algorithm, cost, salt, digest).
func HashPassword(plaintext string) (string, error) {
	cost := config.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares in constant time. A malformed hash never matches.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
