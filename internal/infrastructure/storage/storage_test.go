package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/oaworkspace/oaclient/internal/infrastructure/storage/storagetest"
)

func TestMemory(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, ok, _ := m.Get(ctx, "token"); ok {
		t.Fatalf("expected empty store")
	}
	_ = m.Set(ctx, "token", "a")
	_ = m.Set(ctx, "user", "{}")
	if v, ok, _ := m.Get(ctx, "token"); !ok || v != "a" {
		t.Fatalf("unexpected value %q", v)
	}
	_ = m.Delete(ctx, "token", "user", "missing")
	if _, ok, _ := m.Get(ctx, "user"); ok {
		t.Fatalf("expected user deleted")
	}
}

func TestFile_PlainRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	ctx := context.Background()

	f, err := OpenFile(path, "", zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if err := f.Set(ctx, "token", "abc"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600, got %o", perm)
	}

	// A second handle on the same path sees the write.
	other, err := OpenFile(path, "", zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if v, ok, _ := other.Get(ctx, "token"); !ok || v != "abc" {
		t.Fatalf("expected abc, got %q", v)
	}

	if err := other.Delete(ctx, "token"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := f.Get(ctx, "token"); ok {
		t.Fatalf("delete not visible to first handle")
	}
}

func TestFile_Encrypted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	ctx := context.Background()

	f, err := OpenFile(path, "s3cret", zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if err := f.Set(ctx, "token", "visible-token"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	raw, _ := os.ReadFile(path)
	if strings.Contains(string(raw), "visible-token") {
		t.Fatalf("token stored in clear text")
	}

	again, err := OpenFile(path, "s3cret", zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if v, ok, _ := again.Get(ctx, "token"); !ok || v != "visible-token" {
		t.Fatalf("expected decrypted token, got %q", v)
	}

	if _, err := OpenFile(path, "wrong", zerolog.Nop()); err == nil {
		t.Fatalf("expected an error with the wrong secret")
	}
	if _, err := OpenFile(path, "", zerolog.Nop()); err == nil {
		t.Fatalf("expected an error without a secret")
	}
}

func TestFile_PlainFileIsSealedOnNextWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	ctx := context.Background()

	plain, _ := OpenFile(path, "", zerolog.Nop())
	_ = plain.Set(ctx, "app_lang", "zh")

	sealed, err := OpenFile(path, "k", zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if v, _, _ := sealed.Get(ctx, "app_lang"); v != "zh" {
		t.Fatalf("plain values should still read, got %q", v)
	}
	_ = sealed.Set(ctx, "token", "t")

	var doc fileDocument
	raw, _ := os.ReadFile(path)
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Values != nil || doc.Sealed == nil {
		t.Fatalf("expected sealed document, got %s", raw)
	}
}

func TestFile_CorruptFileIsQuarantined(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	if err := os.WriteFile(path, []byte("{garbage"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := OpenFile(path, "", zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if _, ok, _ := f.Get(context.Background(), "user"); ok {
		t.Fatalf("expected empty storage")
	}
	if _, err := os.Stat(path + ".corrupt"); err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
}

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	b, err := Open(ctx, Config{Driver: DriverMemory}, zerolog.Nop())
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	if _, ok := b.Store.(*Memory); !ok {
		t.Fatalf("expected memory store, got %T", b.Store)
	}

	b, err = Open(ctx, Config{Driver: DriverFile, Path: filepath.Join(t.TempDir(), "s.json")}, zerolog.Nop())
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if err := b.Store.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	_ = b.Close(ctx)

	if _, err := Open(ctx, Config{Driver: "etcd"}, zerolog.Nop()); err == nil {
		t.Fatalf("expected unknown driver error")
	}
}

func TestStoreContract(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		storagetest.Contract(t, NewMemory())
	})
	t.Run("file", func(t *testing.T) {
		f, err := OpenFile(filepath.Join(t.TempDir(), "s.json"), "", zerolog.Nop())
		if err != nil {
			t.Fatalf("OpenFile: %v", err)
		}
		storagetest.Contract(t, f)
	})
	t.Run("sealed file", func(t *testing.T) {
		f, err := OpenFile(filepath.Join(t.TempDir(), "s.json"), "secret", zerolog.Nop())
		if err != nil {
			t.Fatalf("OpenFile: %v", err)
		}
		storagetest.Contract(t, f)
	})
}
