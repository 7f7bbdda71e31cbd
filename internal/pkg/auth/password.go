package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is used for seeded accounts and password changes
const BcryptCost = 12

// HashPassword hashes with BcryptCost
func HashPassword(password string) (string, error) {
	return HashPasswordCost(password, BcryptCost)
}

// HashPasswordCost hashes with an explicit cost; bulk imports use bcrypt.MinCost.
func HashPasswordCost(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword compares a bcrypt hash with a plain password
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
