// Package sampling implements secure sampling of bytes.
package sampling

import (
	"crypto/rand"
)

// RandBytes returns a slice of n bytes read from crypto/rand.
func RandBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}
