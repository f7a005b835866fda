package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateCode produces a cryptographically random numeric code of the given
// length, left-padded with zeros. The code is an opaque string: "000042" is
// a distinct code from "42".
func GenerateCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid code length %d", length)
	}

	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	return fmt.Sprintf("%0*d", length, n), nil
}
