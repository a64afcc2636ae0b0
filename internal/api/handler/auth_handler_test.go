package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/oaworkspace/oaclient/internal/core/domain"
	"github.com/oaworkspace/oaclient/internal/core/ports"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.LoginOutcome, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &ports.LoginOutcome{
				Token:         "tok",
				User:          domain.UserProfile{ID: 7, Username: "alice"},
				ProfileSource: "embedded",
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"alice","password":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := resp["token"]; ok {
		t.Fatalf("token must not be returned: %+v", resp)
	}
	if resp["profileSource"] != "embedded" {
		t.Fatalf("unexpected profileSource: %v", resp["profileSource"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "alice" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginOutcome, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"alice"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "password is required") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_InvalidJSON(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_FailurePropagates(t *testing.T) {
	e := newEcho()
	loginErr := &domain.LoginError{Message: "Wrong password"}
	handler := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginOutcome, error) {
			return nil, loginErr
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"a","password":"b"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Login(c)
	if !errors.Is(err, domain.ErrLoginFailed) {
		t.Fatalf("expected login error, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if stub.logoutCalls != 1 {
		t.Fatalf("expected one logout, got %d", stub.logoutCalls)
	}
}

func TestAuthHandler_Session(t *testing.T) {
	tests := []struct {
		name     string
		stub     *stubAuthService
		wantAuth bool
		wantUser bool
	}{
		{name: "logged out", stub: &stubAuthService{}},
		{
			name:     "logged in",
			stub:     &stubAuthService{authenticated: true, user: &domain.UserProfile{Username: "alice"}},
			wantAuth: true,
			wantUser: true,
		},
		{
			name:     "token without profile",
			stub:     &stubAuthService{authenticated: true},
			wantAuth: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho()
			req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := NewAuthHandler(tt.stub).Session(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}

			var resp sessionResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Authenticated != tt.wantAuth {
				t.Fatalf("authenticated = %v, want %v", resp.Authenticated, tt.wantAuth)
			}
			if (resp.User != nil) != tt.wantUser {
				t.Fatalf("user present = %v, want %v", resp.User != nil, tt.wantUser)
			}
		})
	}
}

func TestAuthHandler_Reset(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{authenticated: true}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/session/reset", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Reset(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.logoutCalls != 1 {
		t.Fatalf("expected reset to clear the session")
	}
	if !strings.Contains(rec.Body.String(), `"reset":true`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Reset_StorageFailure(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAuthService{logoutErr: errBackend})

	req := httptest.NewRequest(http.MethodPost, "/api/session/reset", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Reset(c); !errors.Is(err, errBackend) {
		t.Fatalf("expected storage error, got %v", err)
	}
}
