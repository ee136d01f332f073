// Package models holds the server-side data structures persisted in Postgres.
package models

// Profile is the descriptive part of a user account, created atomically with
// the credential at registration and never mutated afterwards.
type Profile struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Gender    string `json:"gender"`
	// Birthday is stored as epoch seconds.
	Birthday int64 `json:"birthday"`
}

// User is a credential (unique email + password digest) plus its profile.
type User struct {
	ID       int64
	Email    string
	Password string // SHA-512 hex digest, never the plaintext
	Profile  Profile
}
