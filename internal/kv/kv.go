// Package kv provides the durable key-value port the tracker persists through.
package kv

import (
	"context"
	"errors"
)

// Well-known keys. Each is written independently; there are no transactions
// spanning keys.
const (
	KeyWaterIntakes = "waterIntakes"
	KeyDailyGoal    = "dailyGoal"
	KeyUserProfile  = "userProfile"
	KeyReminders    = "waterReminders"
	KeySession      = "session"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Store maps string keys to byte blobs.
type Store interface {
	// Get returns the bytes stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the bytes stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying resources.
	Close() error
}
