// Package cryptox provides the password digest helpers shared by the
// registration and login flows.
package cryptox

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the SHA-512 digest of the UTF-8 bytes of plaintext,
// hex-encoded (128 characters). The scheme is deliberately unsalted: stored
// digests predate this rewrite and must keep verifying, so the algorithm
// cannot change without a migration.
func HashPassword(plaintext string) string {
	sum := sha512.Sum512([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// DigestsEqual compares two password digests in constant time.
func DigestsEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
