package utils

import (
	"crypto/rand"
	"fmt"
)

// IDLength is the fixed length of identities assigned to stored records.
const IDLength = 15

const idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewID returns a fixed-length random lowercase alphanumeric identifier.
func NewID() (string, error) {
	// Make a slice of IDLength random bytes.
	b := make([]byte, IDLength)

	// Read into the slice.
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}

	// Map bytes onto the charset.
	for i := range b {
		b[i] = idCharset[int(b[i])%len(idCharset)]
	}

	return string(b), nil
}
