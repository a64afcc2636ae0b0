package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/oaworkspace/oaclient/internal/core/domain"
	"github.com/oaworkspace/oaclient/internal/core/ports"
	"github.com/oaworkspace/oaclient/internal/pkg/metrics"
)

// SessionStore persists the current user profile under the "user" key and
// is the source of truth for whether someone is logged in.
type SessionStore struct {
	kv     ports.KeyValueStore
	tokens *TokenStore
	log    zerolog.Logger
}

func NewSessionStore(kv ports.KeyValueStore, tokens *TokenStore, log zerolog.Logger) *SessionStore {
	return &SessionStore{kv: kv, tokens: tokens, log: log}
}

// Save serializes user and writes it.
func (s *SessionStore) Save(ctx context.Context, user domain.UserProfile) error {
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Set(ctx, ports.KeyUser, string(b)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the stored profile. A corrupted value clears both the session
// and the token and reads as absent; it is never reported to the caller.
func (s *SessionStore) Load(ctx context.Context) (*domain.UserProfile, bool) {
	raw, found, err := s.kv.Get(ctx, ports.KeyUser)
	if err != nil {
		s.log.Warn().Err(err).Msg("session read failed, treating as absent")
		return nil, false
	}
	if !found {
		return nil, false
	}

	user, err := decodeSession(raw)
	if err != nil {
		s.log.Warn().Err(err).Msg("session data corrupted, clearing storage")
		metrics.SessionCorruptionsTotal.Inc()
		if clearErr := s.Clear(ctx); clearErr != nil {
			s.log.Error().Err(clearErr).Msg("failed to clear corrupted session")
		}
		return nil, false
	}
	return user, true
}

// Clear removes the stored session and token.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, ports.KeyUser, ports.KeyToken); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether a token is present, regardless of whether
// the profile loads.
func (s *SessionStore) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.tokens.Load(ctx)
	return ok
}

func decodeSession(raw string) (*domain.UserProfile, error) {
	if raw == "undefined" || raw == "null" {
		return nil, fmt.Errorf("%w: literal %q", domain.ErrStorageCorruption, raw)
	}
	b := bytes.TrimSpace([]byte(raw))
	if len(b) == 0 || b[0] != '{' {
		return nil, fmt.Errorf("%w: not a JSON object", domain.ErrStorageCorruption)
	}
	var user domain.UserProfile
	if err := json.Unmarshal(b, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageCorruption, err)
	}
	return &user, nil
}
