package auth

import (
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

func bcryptCost() int {
	if s := os.Getenv("BCRYPT_COST"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= bcrypt.MinCost && n <= bcrypt.MaxCost {
			return n
		}
	}
	return bcrypt.DefaultCost
}

// HashPassword hashes a plaintext password with bcrypt. Cost comes from
// BCRYPT_COST when set, DefaultCost otherwise.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost())
	return string(b), err
}

// CheckPassword compares a stored bcrypt hash with a candidate plaintext.
func CheckPassword(hash, pw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
}
