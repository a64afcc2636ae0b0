package ports

import (
	"context"

	"github.com/oaworkspace/oaclient/internal/core/domain"
)

// LanguagePreference reads and writes the persisted UI language.
type LanguagePreference interface {
	Get(ctx context.Context) domain.Language
	Set(ctx context.Context, lang domain.Language) error
}
