// Package session provides browser-session scoped state for the web UI.
//
// The quote book keeps one value per session (the index of the last shown
// quote), so the manager is a thin wrapper around scs with a SQLite store on
// the main database.
package session

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/quotebook/internal/config"
)

// Manager wraps scs.SessionManager with gin integration.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates a configured session manager.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewManager(sqlDB *sql.DB, cfg config.Session) (*Manager, error) {
	// Create sessions table if it doesn't exist
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)
	sm.Lifetime = cfg.Lifetime

	sm.Cookie.Name = "quotebook_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}, nil
}

// GenerateSecret creates a random 32-byte secret, hex encoded.
func GenerateSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// SecretBytes turns the configured secret into the CSRF key. A hex value is
// decoded; anything else is used as raw bytes. An empty value yields a fresh
// random key, so tokens don't survive a restart.
func SecretBytes(configured string) ([]byte, bool, error) {
	if configured != "" {
		if secret, err := hex.DecodeString(configured); err == nil {
			return secret, false, nil
		}
		return []byte(configured), false, nil
	}

	generated, err := GenerateSecret()
	if err != nil {
		return nil, false, err
	}
	secret, _ := hex.DecodeString(generated)
	return secret, true, nil
}
