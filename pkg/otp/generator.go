package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Generator produces one-time verification codes.
type Generator interface {
	RandomCode(length int) (string, error)
}

// CryptoGenerator draws fixed-length numeric codes from crypto/rand.
type CryptoGenerator struct{}

func NewCryptoGenerator() *CryptoGenerator {
	return &CryptoGenerator{}
}

var ten = big.NewInt(10)

func (g *CryptoGenerator) RandomCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid code length %d", length)
	}

	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("random digit failed: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}

	return string(digits), nil
}
