// Package store provides the snapshot store the catalog mirrors itself into:
// a small key/value surface carrying JSON-serialized collections.
package store

import (
	"context"
	"errors"
)

var (
	ErrKeyNotFound = errors.New("key not found")
)

// Store is the persistence boundary. Get returns ErrKeyNotFound for a key
// that was never written; Set overwrites unconditionally.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
