// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strconv"
	"unicode/utf16"

	"storefront/internal/domain/service"
)

// rollingChecksum is a concrete implementation of the PasswordChecksum
// interface. It reproduces the storefront's historical verification value:
// a 31-multiplier rolling hash over the password's UTF-16 code units,
// wrapping at 32 bits, rendered as a base-10 string. Stored credential
// records depend on this exact sequence, so the algorithm must not change.
type rollingChecksum struct{}

// NewRollingChecksum is the constructor for rollingChecksum.
// It returns the implementation as a service.PasswordChecksum interface.
func NewRollingChecksum() service.PasswordChecksum {
	return &rollingChecksum{}
}

// Sum derives the checksum for a plaintext password.
func (rollingChecksum) Sum(password string) string {
	var h int32
	for _, unit := range utf16.Encode([]rune(password)) {
		h = (h << 5) - h + int32(unit)
	}

	return strconv.FormatInt(int64(h), 10)
}

// Check compares a plaintext password with a stored checksum.
func (c rollingChecksum) Check(password, sum string) bool {
	return c.Sum(password) == sum
}
