// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "errors"

// ErrMalformedHash is returned by Verify when the stored hash string cannot
// be parsed. It is distinct from a plain mismatch so callers can audit
// corrupted credentials, even though both outcomes read as "invalid
// credentials" to the end user.
var ErrMalformedHash = errors.New("malformed password hash")

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm, keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a self-describing salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Verify compares a plaintext password against a stored hash. A wrong
	// password yields (false, nil); an unparseable stored hash yields
	// (false, ErrMalformedHash).
	Verify(password, encodedHash string) (bool, error)
}
