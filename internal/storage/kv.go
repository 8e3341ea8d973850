package storage

import (
	"context"
	"errors"
)

var ErrNilDB = errors.New("storage: nil db")

// KeyValue is a string store with no transactional guarantees beyond a
// single Set replacing the whole value.
type KeyValue interface {
	// Get reports ok=false when key has never been set or was deleted.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
