package booking

import (
	"crypto/rand"
	"encoding/hex"
)

// newCheckinToken returns a fresh opaque check-in token: 32 bytes of
// cryptographically secure randomness, hex encoded (64 characters).
// 256 bits of entropy makes collisions with live tokens and enumeration
// attacks practically impossible.
func newCheckinToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
