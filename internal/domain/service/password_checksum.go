// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordChecksum defines the interface for the demo-grade password
// verification value. The implementation must be deterministic and
// order-sensitive so stored records keep verifying across sessions; it is
// explicitly not a security boundary.
type PasswordChecksum interface {
	// Sum derives the checksum for a plaintext password.
	Sum(password string) string

	// Check reports whether a plaintext password matches a stored checksum.
	Check(password, sum string) bool
}
