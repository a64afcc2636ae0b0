package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/oaworkspace/oaclient/internal/infrastructure/storage/storagetest"
)

func TestStore_Key(t *testing.T) {
	s := NewStore(nil, "oaclient")
	if got := s.key("token"); got != "oaclient:token" {
		t.Fatalf("unexpected key %q", got)
	}

	bare := NewStore(nil, "")
	if got := bare.key("user"); got != "user" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestStore_DeleteNoKeys(t *testing.T) {
	s := NewStore(nil, "oaclient")
	if err := s.Delete(context.Background()); err != nil {
		t.Fatalf("Delete with no keys: %v", err)
	}
}

func TestStore_Contract(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := Open(context.Background(), Config{Addr: mr.Addr()}, "oaclient")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	storagetest.Contract(t, s)

	if v, err := mr.Get("oaclient:app_lang"); err != nil || v != "zh" {
		t.Fatalf("expected namespaced key in redis, got %q (%v)", v, err)
	}
	if mr.Exists("oaclient:token") || mr.Exists("token") {
		t.Fatalf("token should have been deleted")
	}
}

func TestStore_NamespacesDoNotCollide(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	a, b := NewStore(client, "a"), NewStore(client, "b")
	if err := a.Set(ctx, "token", "for-a"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, err := b.Get(ctx, "token"); err != nil || ok {
		t.Fatalf("namespace b should not see a's token: ok=%v err=%v", ok, err)
	}
}

func TestStore_ServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := Open(context.Background(), Config{Addr: mr.Addr()}, "oaclient")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	mr.Close()

	ctx := context.Background()
	if _, ok, err := s.Get(ctx, "token"); err == nil || ok {
		t.Fatalf("expected a read error, got ok=%v err=%v", ok, err)
	}
	if err := s.Ping(ctx); err == nil {
		t.Fatalf("expected ping to fail")
	}
}

func TestOpen_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := Open(context.Background(), Config{Addr: addr, Timeout: 200 * time.Millisecond}, "oaclient"); err == nil {
		t.Fatalf("expected Open to fail against a stopped server")
	}
}
