package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const orderCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateOrderCode returns length characters drawn uniformly from A-Z0-9.
func GenerateOrderCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("order code length must be positive, got %d", length)
	}
	n := big.NewInt(int64(len(orderCodeAlphabet)))
	code := make([]byte, length)
	for i := range code {
		idx, err := rand.Int(rand.Reader, n)
		if err != nil {
			return "", fmt.Errorf("order code: %w", err)
		}
		code[i] = orderCodeAlphabet[idx.Int64()]
	}
	return string(code), nil
}
