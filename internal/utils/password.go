package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrCorruptCredential reports a stored digest that bcrypt cannot parse,
// as opposed to a plain mismatch.
var ErrCorruptCredential = errors.New("corrupt password digest")

const bcryptCost = 10

func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored digest. A
// mismatch is not an error; only a malformed digest is.
func CheckPassword(hash string, plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, ErrCorruptCredential
}
