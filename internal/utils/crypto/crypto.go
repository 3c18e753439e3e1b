package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// Pre-compiled regexes for password strength validation
var (
	reLetter            = regexp.MustCompile(`[A-Za-z]`)
	reDigit             = regexp.MustCompile(`[0-9]`)
	ErrPasswordStrength = errors.New("password must be at least 8 characters long and contain at least one letter and one digit")
)

// HashPassword hashes a password using bcrypt with the given cost
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a password against its hash
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// IsStrong checks if a password meets minimum strength requirements
// Requirements: ≥8 chars, 1 letter, 1 digit
func IsStrong(password string) bool {
	if len(password) < 8 {
		return false
	}

	return reLetter.MatchString(password) && reDigit.MatchString(password)
}

// VerificationCode returns a random 6-digit numeric code for email
// verification. The range is [100000, 999999] so the code never starts
// with a zero and survives naive integer round-trips.
func VerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100_000), nil
}
