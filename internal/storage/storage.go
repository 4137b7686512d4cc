// Package storage holds the console's durable key/value state.
package storage

import (
	"context"
	"errors"
)

// ErrClosed is returned by a store that has been closed.
var ErrClosed = errors.New("storage closed")

// KV is a small durable key/value store. SetMany and Delete are atomic:
// either every key is written (or removed) or none is.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}
