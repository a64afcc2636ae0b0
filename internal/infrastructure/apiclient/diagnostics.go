package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/oaworkspace/oaclient/internal/core/ports"
)

var _ ports.Diagnostician = (*Executor)(nil)

// Diagnose probes the health path and describes the outcome. With
// credentials it sends the stored token and cookies, so a CORS or
// credential problem on the backend shows up as a distinct result. It never
// falls back and never changes the connection status.
func (e *Executor) Diagnose(ctx context.Context, withCredentials bool) ports.Diagnosis {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.url(e.healthPath, nil), nil)
	if err != nil {
		return ports.Diagnosis{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if e.origin != "" {
		req.Header.Set("Origin", e.origin)
	}

	client := e.probe
	if withCredentials {
		client = e.client
		if token, ok := e.tokens.Load(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		e.log.Debug().Err(err).Bool("with_credentials", withCredentials).Msg("diagnostic probe failed")
		return ports.Diagnosis{Message: err.Error()}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return ports.Diagnosis{Success: true, Message: "Connection Successful", StatusCode: resp.StatusCode}
	}
	return ports.Diagnosis{
		Message:    fmt.Sprintf("%d %s%s", resp.StatusCode, statusText(resp), diagnosisHint(resp.StatusCode, withCredentials)),
		StatusCode: resp.StatusCode,
	}
}

func diagnosisHint(code int, withCredentials bool) string {
	switch code {
	case http.StatusForbidden:
		if withCredentials {
			return " (403 Forbidden: Server rejected credentials. Check CORS Allow-Credentials=true)"
		}
		return " (403 Forbidden: Access Denied)"
	case http.StatusUnauthorized:
		return " (401 Unauthorized: Invalid Token)"
	default:
		return ""
	}
}

// Probe requests the health path through the regular request path, so the
// outcome updates the connection status. The response body is not decoded
// beyond the envelope.
func (e *Executor) Probe(ctx context.Context) error {
	_, err := Fetch[json.RawMessage](ctx, e, Request{
		Name:        "probe",
		Method:      http.MethodGet,
		Path:        e.healthPath,
		RequireAuth: true,
	})
	return err
}
