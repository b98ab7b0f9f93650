// Package credentials stores per-user OAuth token bundles on disk. Token
// acquisition and refresh happen out-of-band; this store only loads and saves
// the opaque bundles.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

// ErrNoCredential is returned when a user has no stored token bundle.
var ErrNoCredential = errors.New("no stored credential")

// Store persists token bundles as JSON files, one per user, under a root
// directory with restricted permissions.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// Load reads the token bundle for userID.
func (s *Store) Load(userID string) (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path(userID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNoCredential)
		}
		return nil, fmt.Errorf("read credential: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("decode credential: %w", err)
	}
	return &tok, nil
}

// Save persists the token bundle for userID with owner-only permissions.
func (s *Store) Save(userID string, tok *oauth2.Token) error {
	if err := os.MkdirAll(s.root, 0o700); err != nil {
		return fmt.Errorf("ensure credential directory: %w", err)
	}

	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	if err := os.WriteFile(s.path(userID), data, 0o600); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}

func (s *Store) path(userID string) string {
	return filepath.Join(s.root, userID+".json")
}

// Usable reports whether a token can authenticate an upload: either it has not
// expired or it carries a refresh token the transport can redeem.
func Usable(tok *oauth2.Token) bool {
	if tok == nil {
		return false
	}
	if tok.RefreshToken != "" {
		return true
	}
	return tok.AccessToken != "" && (tok.Expiry.IsZero() || tok.Expiry.After(time.Now()))
}
