package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const tokenDigits = "1234567890"

// GenerateNumericToken draws a fixed-length digit string from crypto/rand.
func GenerateNumericToken(length int) (string, error) {
	var builder strings.Builder
	builder.Grow(length)
	max := big.NewInt(int64(len(tokenDigits)))
	for i := 0; i < length; i++ {
		index, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(tokenDigits[index.Int64()])
	}
	return builder.String(), nil
}
