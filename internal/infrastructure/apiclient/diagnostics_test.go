package apiclient

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/oaworkspace/oaclient/internal/core/domain"
)

func TestDiagnose(t *testing.T) {
	cases := []struct {
		name            string
		status          int
		withCredentials bool
		wantSuccess     bool
		wantMessage     string
	}{
		{"ok", http.StatusOK, false, true, "Connection Successful"},
		{"forbidden without credentials", http.StatusForbidden, false, false, "403 Forbidden (403 Forbidden: Access Denied)"},
		{"forbidden with credentials", http.StatusForbidden, true, false, "403 Forbidden (403 Forbidden: Server rejected credentials. Check CORS Allow-Credentials=true)"},
		{"unauthorized", http.StatusUnauthorized, true, false, "401 Unauthorized (401 Unauthorized: Invalid Token)"},
		{"server error", http.StatusInternalServerError, false, false, "500 Internal Server Error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var auth string
			exec, status := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/workspace/meetingRoom" {
					t.Errorf("unexpected probe path %s", r.URL.Path)
				}
				auth = r.Header.Get("Authorization")
				w.WriteHeader(tc.status)
			}, "tok")

			d := exec.Diagnose(context.Background(), tc.withCredentials)

			if d.Success != tc.wantSuccess || d.Message != tc.wantMessage || d.StatusCode != tc.status {
				t.Fatalf("unexpected diagnosis: %+v", d)
			}
			if tc.withCredentials && auth != "Bearer tok" {
				t.Fatalf("expected token with credentials, got %q", auth)
			}
			if !tc.withCredentials && auth != "" {
				t.Fatalf("expected no token, got %q", auth)
			}
			if status.count() != 0 {
				t.Fatalf("diagnostics must not change the connection status")
			}
		})
	}
}

func TestDiagnose_NetworkError(t *testing.T) {
	exec, err := NewExecutor(Config{BaseURL: "http://127.0.0.1:1/api", HealthPath: "/x"}, staticTokens{}, &statusLog{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewExecutor: %v", err)
	}

	d := exec.Diagnose(context.Background(), false)
	if d.Success || d.StatusCode != 0 || d.Message == "" {
		t.Fatalf("unexpected diagnosis: %+v", d)
	}
}

func TestProbe_ReportsStatus(t *testing.T) {
	var fail atomic.Bool
	exec, status := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("probe should be authenticated")
		}
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, `{"code":200,"msg":"","data":[]}`)
	}, "tok")

	if err := exec.Probe(context.Background()); err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if got := status.last(t); got.State != domain.ConnectionOnline {
		t.Fatalf("expected online, got %+v", got)
	}

	fail.Store(true)
	if err := exec.Probe(context.Background()); err == nil {
		t.Fatalf("expected probe error")
	}
	if got := status.last(t); got.State != domain.ConnectionOffline || got.Error != "API Error: 503 Service Unavailable" {
		t.Fatalf("expected offline, got %+v", got)
	}
}
