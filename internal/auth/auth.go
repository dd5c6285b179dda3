// Package auth models the caller's privilege as an explicit capability token.
// Mutation services take a Capability argument instead of consulting any
// process-wide admin flag, so tests and callers state their privilege
// directly.
package auth

import "crypto/subtle"

// Capability says what the caller is allowed to do. The zero value is
// read-only.
type Capability struct {
	admin bool
}

// Admin returns a capability that permits mutations.
func Admin() Capability { return Capability{admin: true} }

// ReadOnly returns a capability limited to reads.
func ReadOnly() Capability { return Capability{} }

// CanWrite reports whether the caller may create, update, or delete.
func (c Capability) CanWrite() bool { return c.admin }

// FromToken derives a capability from a presented bearer token. An empty
// configured token means the deployment runs open and every caller is
// privileged; otherwise the presented token must match exactly.
func FromToken(presented, configured string) Capability {
	if configured == "" {
		return Admin()
	}
	if subtle.ConstantTimeCompare([]byte(presented), []byte(configured)) == 1 {
		return Admin()
	}
	return ReadOnly()
}
