package storage

import (
	"context"

	"github.com/alexedwards/scs/v2"
)

// SessionStore keeps blobs in the current HTTP session. The context passed to
// Get and Set must carry session data, i.e. come from a request that went
// through the session manager's LoadAndSave middleware.
type SessionStore struct {
	sm *scs.SessionManager
}

func NewSessionStore(sm *scs.SessionManager) *SessionStore {
	return &SessionStore{sm: sm}
}

func (s *SessionStore) Get(ctx context.Context, key string) ([]byte, error) {
	if !s.sm.Exists(ctx, key) {
		return nil, ErrNotFound
	}
	return s.sm.GetBytes(ctx, key), nil
}

func (s *SessionStore) Set(ctx context.Context, key string, value []byte) error {
	s.sm.Put(ctx, key, value)
	return nil
}

var _ Store = (*SessionStore)(nil)
