// utils/codes.go
package utils

import (
	"crypto/rand"
	"math/big"
)

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RandomBase36 returns n uppercase base-36 characters from crypto/rand.
func RandomBase36(n int) (string, error) {
	max := big.NewInt(int64(len(base36)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = base36[idx.Int64()]
	}
	return string(out), nil
}
