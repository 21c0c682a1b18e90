package utils

import (
	"crypto/rand"
	"math/big"
)

// ReferralPrefix starts every generated referral code.
const ReferralPrefix = "RF"

const referralAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const referralLength = 6

// GenerateReferralCode returns a referral code: the fixed prefix followed
// by six random uppercase alphanumeric characters.
func GenerateReferralCode() (string, error) {
	code := make([]byte, referralLength)
	max := big.NewInt(int64(len(referralAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = referralAlphabet[n.Int64()]
	}
	return ReferralPrefix + string(code), nil
}
