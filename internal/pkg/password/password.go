// Package password wraps bcrypt hashing and generates the short-lived
// temporary passwords issued on reset.
package password

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

func Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func Compare(hash, plaintext string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
}

// NewTemporary returns a temporary password: one uppercase ASCII letter
// followed by exactly five decimal digits. Low entropy on purpose; the value
// is meant to be replaced by the user immediately after reset.
func NewTemporary() (string, error) {
	letter, err := rand.Int(rand.Reader, big.NewInt(26))
	if err != nil {
		return "", err
	}
	// 10000..99999 keeps the number at five digits without padding.
	digits, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%c%05d", 'A'+letter.Int64(), 10000+digits.Int64()), nil
}
