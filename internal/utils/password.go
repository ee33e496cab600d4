package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the cost used by the seed migration so hashes written by
// either path are interchangeable.
const bcryptCost = 10

// HashPassword derives a bcrypt hash for storage in the users table.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether the plaintext matches the stored hash.
func CheckPasswordHash(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
