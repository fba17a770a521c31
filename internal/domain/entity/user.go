// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the durable record of a registered account. PasswordHash stores the
// argon2id-encoded credential and is never serialized toward clients.
type User struct {
	ID           int64      // Auto-generated identifier, owned by the store.
	Username     string     // Unique login name.
	Email        string     // Unique contact email, also usable as a login identifier.
	PasswordHash string     // Self-describing argon2id hash string.
	Age          *int       // Optional age supplied at registration.
	Roles        Roles      // Ordered role list, defaults to ["user"].
	IsActive     bool       // Inactive users cannot log in.
	CreatedAt    time.Time  // Timestamp of account creation, set by the store.
	UpdatedAt    time.Time  // Timestamp of the last modification, set by the store.
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role Role) bool {
	return u.Roles.Contains(role)
}
