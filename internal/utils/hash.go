package utils

import "golang.org/x/crypto/bcrypt"

// HashOTP returns a bcrypt hash of a one-time code for at-rest storage.
func HashOTP(code string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckOTP compares a stored hash with a candidate code.
func CheckOTP(hash, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
