package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/oaworkspace/oaclient/internal/core/domain"
	"github.com/oaworkspace/oaclient/internal/core/ports"
	"github.com/oaworkspace/oaclient/internal/i18n"
)

// LanguageStore persists the UI language under "app_lang".
type LanguageStore struct {
	kv  ports.KeyValueStore
	log zerolog.Logger
}

func NewLanguageStore(kv ports.KeyValueStore, log zerolog.Logger) *LanguageStore {
	return &LanguageStore{kv: kv, log: log}
}

// Get returns the saved language, or English when nothing valid is stored.
func (s *LanguageStore) Get(ctx context.Context) domain.Language {
	raw, found, err := s.kv.Get(ctx, ports.KeyLanguage)
	if err != nil {
		s.log.Warn().Err(err).Msg("language read failed")
		return domain.LanguageEnglish
	}
	lang := domain.Language(raw)
	if !found || !lang.Valid() {
		return domain.LanguageEnglish
	}
	return lang
}

// Set stores lang.
func (s *LanguageStore) Set(ctx context.Context, lang domain.Language) error {
	if !lang.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidLanguage, lang)
	}
	if err := s.kv.Set(ctx, ports.KeyLanguage, string(lang)); err != nil {
		return fmt.Errorf("save language: %w", err)
	}
	return nil
}

// Translate looks key up in the saved language.
func (s *LanguageStore) Translate(ctx context.Context, key string) string {
	return i18n.T(s.Get(ctx), key)
}
