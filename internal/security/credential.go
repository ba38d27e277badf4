package security

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// credentialAlphabet excludes look-alike characters so credentials survive
// being read aloud or retyped from the one-time confirmation view.
const credentialAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// credentialLength is the generated credential length before grouping.
const credentialLength = 20

// GenerateOneTimeCredential returns a random plaintext credential for a
// newly provisioned admin. It is returned to the caller exactly once and
// must only ever be stored hashed.
func GenerateOneTimeCredential() (string, error) {
	raw := make([]byte, credentialLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("security: generate credential: %w", err)
	}
	var b strings.Builder
	b.Grow(credentialLength + credentialLength/5)
	for i, c := range raw {
		if i > 0 && i%5 == 0 {
			b.WriteByte('-')
		}
		b.WriteByte(credentialAlphabet[int(c)%len(credentialAlphabet)])
	}
	return b.String(), nil
}
