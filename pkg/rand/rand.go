package rand

import (
	"crypto/rand"
	"encoding/hex"
)

// String returns n random bytes hex encoded, suitable for OAuth state nonces.
func String(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
