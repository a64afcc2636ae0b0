package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/oaworkspace/oaclient/internal/core/domain"
)

func TestOfficeClient_Login(t *testing.T) {
	var creds domain.Credentials
	var auth string
	exec, _ := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&creds)
		writeJSON(w, http.StatusOK, `{"code":200,"msg":"ok","data":{"token":"abc","user":{"id":2,"username":"alice"}}}`)
	}, "stale-token")

	res, err := NewOfficeClient(exec).Login(context.Background(), domain.Credentials{Username: "alice", Password: "pw"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if auth != "" {
		t.Fatalf("login must not send a bearer token, got %q", auth)
	}
	if creds.Username != "alice" || creds.Password != "pw" {
		t.Fatalf("unexpected credentials sent: %+v", creds)
	}
	if res.Data.Kind != domain.PayloadTokenObject || res.Data.Token != "abc" || res.Data.User.ID != 2 {
		t.Fatalf("unexpected payload: %+v", res.Data)
	}
}

func TestOfficeClient_LoginHasNoFallback(t *testing.T) {
	exec, _ := newTestExecutor(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, "")

	_, err := NewOfficeClient(exec).Login(context.Background(), domain.Credentials{Username: "a", Password: "b"})
	if !errors.Is(err, domain.ErrHTTP) {
		t.Fatalf("expected ErrHTTP, got %v", err)
	}
}

func TestOfficeClient_SignInTimestamp(t *testing.T) {
	var stamp, path string
	exec, _ := newTestExecutor(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		stamp = r.URL.Query().Get("signInTime")
		writeJSON(w, http.StatusOK, `{"code":200,"msg":"ok","data":null}`)
	}, "t")

	at := time.Date(2025, 6, 1, 17, 4, 5, 123_000_000, time.FixedZone("X", 2*3600))
	res := NewOfficeClient(exec).SignIn(context.Background(), at)

	if !res.OK() {
		t.Fatalf("expected success, got %+v", res)
	}
	if path != "/api/workspace/sign/in" || stamp != "2025-06-01T15:04:05.123Z" {
		t.Fatalf("unexpected request %s signInTime=%s", path, stamp)
	}
}

func TestOfficeClient_FallbackFixtures(t *testing.T) {
	exec, _ := newTestExecutor(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, "t")
	c := NewOfficeClient(exec)
	ctx := context.Background()

	if res := c.ListWorkers(ctx, domain.PageSelectWorker{PageNum: 1, PageSize: 10}); !res.Synthetic() || res.Data.Total != 4 || len(res.Data.List) != 4 {
		t.Fatalf("unexpected workers fallback: %+v", res)
	}
	if res := c.MeetingRooms(ctx); len(res.Data) != 3 || res.Data[1].NextMeeting == "" {
		t.Fatalf("unexpected rooms fallback: %+v", res)
	}
	if res := c.LeaveTypes(ctx); len(res.Data) != 3 || res.Data[0].Name != "Annual Leave" {
		t.Fatalf("unexpected leave types fallback: %+v", res)
	}
	if res := c.ApplyLeave(ctx, domain.LeaveApplication{LeaveTypeID: 1}); !res.OK() || res.Data != nil {
		t.Fatalf("unexpected leave fallback: %+v", res)
	}
	if res := c.UserProfile(ctx, 9); res.Data.Username != "admin" {
		t.Fatalf("unexpected profile fallback: %+v", res)
	}
	if res := c.SignOut(ctx, time.Now()); !res.Synthetic() {
		t.Fatalf("expected synthetic sign out")
	}
}

func TestOfficeClient_FixturesAreFreshCopies(t *testing.T) {
	a := mockWorkers()
	a.List[0].RealName = "changed"
	if b := mockWorkers(); b.List[0].RealName != "John Doe" {
		t.Fatalf("fixtures share state")
	}
}
