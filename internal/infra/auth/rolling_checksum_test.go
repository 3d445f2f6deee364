package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollingChecksum_Sum_KnownValues(t *testing.T) {
	checksum := NewRollingChecksum()

	// Hand-computed reference values: h = h*31 + codeUnit, wrapping at 32 bits.
	tests := []struct {
		password string
		want     string
	}{
		{password: "", want: "0"},
		{password: "abc", want: "96354"},
		{password: "abcdef", want: "-1424385949"}, // wraps past int32 max
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, checksum.Sum(tt.password), "Sum(%q)", tt.password)
	}
}

func TestRollingChecksum_Sum_Deterministic(t *testing.T) {
	checksum := NewRollingChecksum()

	assert.Equal(t, checksum.Sum("hunter2!"), checksum.Sum("hunter2!"))
}

func TestRollingChecksum_Sum_OrderSensitive(t *testing.T) {
	checksum := NewRollingChecksum()

	assert.NotEqual(t, checksum.Sum("abcdef"), checksum.Sum("fedcba"))
}

func TestRollingChecksum_Check(t *testing.T) {
	checksum := NewRollingChecksum()
	sum := checksum.Sum("secret123")

	assert.True(t, checksum.Check("secret123", sum))
	assert.False(t, checksum.Check("secret124", sum))
	assert.False(t, checksum.Check("", sum))
}

func TestRollingChecksum_Sum_NonASCII(t *testing.T) {
	checksum := NewRollingChecksum()

	// Multi-byte runes hash by UTF-16 code unit, not by byte.
	assert.NotEqual(t, checksum.Sum("café"), checksum.Sum("cafe"))
	assert.Equal(t, checksum.Sum("café"), checksum.Sum("café"))
}
