// Package storage provides the named-blob Storage Adapter used by the quote book.
//
// Two scopes exist: a persistent store that survives restarts (backed by the
// settings table) and a session store whose values live as long as the
// browser session (scs) or, for the CLI, the process.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("storage: key not found")

// Store gets and sets named blobs of bytes.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}

// GetString is a helper returning the value as a string and whether it was present.
func GetString(ctx context.Context, s Store, key string) (string, bool, error) {
	value, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(value), true, nil
}

// SetString is a helper storing a string value.
func SetString(ctx context.Context, s Store, key, value string) error {
	return s.Set(ctx, key, []byte(value))
}
