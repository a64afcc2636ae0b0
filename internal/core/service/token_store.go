package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/oaworkspace/oaclient/internal/core/domain"
	"github.com/oaworkspace/oaclient/internal/core/ports"
)

// NormalizeToken strips surrounding whitespace and one layer of quote
// characters, which earlier clients left behind when they stored the token
// JSON-encoded.
func NormalizeToken(raw string) string {
	t := strings.TrimSpace(raw)
	if len(t) > 0 && isQuote(t[0]) {
		t = t[1:]
	}
	if len(t) > 0 && isQuote(t[len(t)-1]) {
		t = t[:len(t)-1]
	}
	return strings.TrimSpace(t)
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}

// TokenStore persists the bearer credential under the "token" key.
type TokenStore struct {
	kv  ports.KeyValueStore
	log zerolog.Logger
}

func NewTokenStore(kv ports.KeyValueStore, log zerolog.Logger) *TokenStore {
	return &TokenStore{kv: kv, log: log}
}

// Save normalizes raw and writes it.
func (s *TokenStore) Save(ctx context.Context, raw string) error {
	token := NormalizeToken(raw)
	if token == "" {
		return domain.ErrEmptyToken
	}
	if err := s.kv.Set(ctx, ports.KeyToken, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Load returns the normalized token. Backend failures and values that
// normalize to nothing read as absent.
func (s *TokenStore) Load(ctx context.Context) (string, bool) {
	raw, found, err := s.kv.Get(ctx, ports.KeyToken)
	if err != nil {
		s.log.Warn().Err(err).Msg("token read failed, treating as absent")
		return "", false
	}
	if !found {
		return "", false
	}
	token := NormalizeToken(raw)
	if token == "" {
		return "", false
	}
	return token, true
}

// Clear removes the stored token.
func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, ports.KeyToken); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
