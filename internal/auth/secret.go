package auth

import "crypto/rand"

// GenerateSecret returns n random bytes suitable for use as a signing key.
func GenerateSecret(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
