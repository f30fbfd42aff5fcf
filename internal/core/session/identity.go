// Package session manages the durable per-install session token that
// correlates successive submissions server-side. The token is opaque to this
// client; it carries no local meaning beyond identity.
package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const tokenFile = "session_id"

var (
	mu       sync.Mutex
	memToken string // fallback when durable storage is unavailable
)

// GetOrCreate returns the session token stored under dir, creating and
// persisting a new one on first use. An existing token is never rewritten.
//
// If the token cannot be persisted (unwritable dir, read-only filesystem),
// GetOrCreate degrades to an in-memory token that stays stable for the life
// of the process and returns a nil error; the divergence is logged.
func GetOrCreate(dir string) (string, error) {
	mu.Lock()
	defer mu.Unlock()

	path := filepath.Join(dir, tokenFile)
	if data, err := os.ReadFile(path); err == nil {
		if token := strings.TrimSpace(string(data)); token != "" {
			return token, nil
		}
	}

	if memToken != "" {
		return memToken, nil
	}

	token := uuid.NewString()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("session token not persisted, using in-memory token")
		memToken = token
		return token, nil
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("session token not persisted, using in-memory token")
		memToken = token
		return token, nil
	}
	return token, nil
}
