// Package session persists the authenticated session between runs.
//
// The store is a plain key-value table holding exactly two keys: the raw
// bearer token and the serialized user record. An absent key is never an
// error, it simply means "not logged in".
package session

import "context"

const (
	// KeyToken holds the raw bearer token string.
	KeyToken = "token"
	// KeyUser holds the JSON-serialized user record.
	KeyUser = "user"
)

// Store is a durable key-value mirror of the in-memory session.
type Store interface {
	// Get returns the stored value, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Clear removes every key. Safe to call on an already-empty store.
	Clear(ctx context.Context) error
}

// Save writes token and user atomically enough for a single-writer client:
// the token is written last so a partially written session never carries a
// token without a user record.
func Save(ctx context.Context, s Store, token string, userJSON []byte) error {
	if err := s.Set(ctx, KeyUser, userJSON); err != nil {
		return err
	}
	return s.Set(ctx, KeyToken, []byte(token))
}

// Load reads both session keys. Either both values are returned, or both
// are empty: a one-sided leftover is treated as absent.
func Load(ctx context.Context, s Store) (token string, userJSON []byte, err error) {
	t, err := s.Get(ctx, KeyToken)
	if err != nil {
		return "", nil, err
	}
	u, err := s.Get(ctx, KeyUser)
	if err != nil {
		return "", nil, err
	}
	if len(t) == 0 || len(u) == 0 {
		return "", nil, nil
	}
	return string(t), u, nil
}

// Drop removes both session keys. Removing an already-absent key is a no-op,
// so Drop is idempotent.
func Drop(ctx context.Context, s Store) error {
	if err := s.Delete(ctx, KeyToken); err != nil {
		return err
	}
	return s.Delete(ctx, KeyUser)
}
