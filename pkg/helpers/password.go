package helpers

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor used when no explicit cost is given.
const PasswordCost = 10

// HashPassword hashes the plain text password using bcrypt with a random salt.
// A cost outside bcrypt's accepted range falls back to PasswordCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = PasswordCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
