package utils

import (
	"crypto/rand"
	"math/big"
	"time"
)

// GenerateOTP returns a 6-digit verification code and its expiry. Codes
// are drawn from crypto/rand so prior codes reveal nothing about the next.
func GenerateOTP(window time.Duration) (int, time.Time, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return 0, time.Time{}, err
	}
	code := int(n.Int64()) + 100000
	return code, time.Now().Add(window), nil
}
