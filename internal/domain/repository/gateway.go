// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
)

// ErrKeyNotFound is a domain-specific error returned when a key has no stored value.
var ErrKeyNotFound = errors.New("key not found")

// Well-known gateway keys. Each store owns exactly one key and re-serializes
// its full state under it after every successful mutation.
const (
	KeyCart    = "cart"  // JSON mapping product id -> cart line.
	KeySession = "user"  // JSON session marker; absent when anonymous.
	KeyUsers   = "users" // JSON mapping email -> credential record.
)

// KVGateway is the synchronous string key-value collaborator the stores
// persist through. A missing key is reported as ErrKeyNotFound, never as a
// fatal condition.
type KVGateway interface {
	// Get retrieves the value stored under key.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error

	// Remove deletes the value stored under key. Removing an absent key is a no-op.
	Remove(ctx context.Context, key string) error
}
