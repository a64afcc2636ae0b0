package ports

import "context"

// Storage keys owned by the core. Each key has exactly one writer.
const (
	KeyToken    = "token"
	KeyUser     = "user"
	KeyLanguage = "app_lang"
)

// KeyValueStore is the durable client storage the stores persist into.
// Get reports found=false for a missing key; it returns an error only when
// the backend itself failed.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}
