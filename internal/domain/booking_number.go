package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	bookingNumberLetters = 6
	bookingNumberDigits  = 10000
	alphabet             = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewBookingNumber builds a number like "QWERTY0042": six random upper-case
// letters followed by the sequence value, wrapped into four digits (0001..9999).
func NewBookingNumber(seq int64) (string, error) {
	letters := make([]byte, bookingNumberLetters)
	limit := big.NewInt(int64(len(alphabet)))
	for i := range letters {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("booking number: %w", err)
		}
		letters[i] = alphabet[n.Int64()]
	}

	if seq < 1 {
		seq = 1
	}
	suffix := (seq-1)%(bookingNumberDigits-1) + 1

	return fmt.Sprintf("%s%04d", letters, suffix), nil
}
