package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost is the work factor applied when config does not set one.
// bcrypt salts every hash, so two identical passwords never share a hash value.
const DefaultBcryptCost = 10

// dummyHash is a valid bcrypt hash of a random throwaway string. Login paths
// compare against it when no user matches the email, so a missing account
// costs the same bcrypt work as a wrong password.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword returns the bcrypt hash of password at cost. A cost of 0
// falls back to DefaultBcryptCost.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password verifies against hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// BurnPasswordCheck performs a bcrypt comparison against a fixed dummy hash
// and discards the result. Used to equalize timing between the "no such
// user" and "wrong password" login failures.
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}
