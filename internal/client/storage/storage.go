// Package storage provides the durable client-side key/value store that
// backs the session (token, profile) and display preferences. It is the
// terminal-client analog of browser local storage, kept in a small
// sqlite database next to the binary.
package storage

import "context"

// Well-known keys. The session store is the only writer of the auth
// keys; the view layer is the only writer of the theme key.
const (
	KeyToken    = "token"
	KeyProfile  = "profile"
	KeyDarkMode = "dark_mode"
)

// Store is a durable key/value store. Get returns nil (no error) for a
// missing key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes all pairs in a single transaction, so related
	// values (token and profile) are never persisted one without the
	// other.
	SetMany(ctx context.Context, pairs map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, keys ...string) error
}
