package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor the account base was created with.
// Raising it only affects newly hashed passwords.
const bcryptCost = 10

// HashPassword returns the salted bcrypt digest of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored digest.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
