// Package blob defines the generic key-value blob boundary the snapshot
// store persists through, plus the two implementations the application
// uses: an embedded BadgerDB store and an in-memory store for tests and
// degraded operation.
package blob

import "errors"

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("blob: key not found")

// Store is a named-blob interface: whole values are read at startup and
// overwritten on every mutation. Implementations must be safe for
// concurrent use.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}
