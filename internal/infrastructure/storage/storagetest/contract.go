// Package storagetest checks KeyValueStore implementations against the
// behavior the session core relies on.
package storagetest

import (
	"context"
	"testing"

	"github.com/oaworkspace/oaclient/internal/core/ports"
)

// Contract exercises s with the keys the client persists. s must start empty.
func Contract(t *testing.T, s ports.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, ports.KeyToken); err != nil || ok {
		t.Fatalf("fresh store: ok=%v err=%v", ok, err)
	}
	for k, v := range map[string]string{ports.KeyToken: "t", ports.KeyUser: `{"id":1}`, ports.KeyLanguage: "zh"} {
		if err := s.Set(ctx, k, v); err != nil {
			t.Fatalf("Set %s: %v", k, err)
		}
	}
	if err := s.Set(ctx, ports.KeyToken, "t2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, ok, err := s.Get(ctx, ports.KeyToken); err != nil || !ok || v != "t2" {
		t.Fatalf("expected overwritten token, got %q ok=%v err=%v", v, ok, err)
	}
	if err := s.Delete(ctx, ports.KeyToken, ports.KeyUser); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	for _, k := range []string{ports.KeyToken, ports.KeyUser} {
		if _, ok, err := s.Get(ctx, k); err != nil || ok {
			t.Fatalf("%s should be gone: ok=%v err=%v", k, ok, err)
		}
	}
	if v, ok, _ := s.Get(ctx, ports.KeyLanguage); !ok || v != "zh" {
		t.Fatalf("unrelated key removed")
	}
	if err := s.Delete(ctx); err != nil {
		t.Fatalf("empty delete: %v", err)
	}
	if err := s.Delete(ctx, "never-set"); err != nil {
		t.Fatalf("delete of a missing key: %v", err)
	}
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
