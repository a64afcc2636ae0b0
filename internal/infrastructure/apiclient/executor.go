// Package apiclient talks to the OA REST backend. Every call goes through
// the Executor, which classifies failures, keeps the connection status up to
// date, and optionally substitutes fallback data so the UI keeps working
// while the backend is unreachable.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/oaworkspace/oaclient/internal/core/domain"
	"github.com/oaworkspace/oaclient/internal/core/ports"
	"github.com/oaworkspace/oaclient/internal/pkg/metrics"
)

// TokenSource yields the bearer credential for authenticated requests.
type TokenSource interface {
	Load(ctx context.Context) (string, bool)
}

// Config holds the backend connection settings.
type Config struct {
	BaseURL       string
	HealthPath    string
	Origin        string
	FallbackDelay time.Duration
	// Timeout bounds a single request; zero means no timeout.
	Timeout time.Duration
}

// Request describes one backend call.
type Request struct {
	// Name labels the call in logs and metrics.
	Name        string
	Method      string
	Path        string
	Query       url.Values
	Body        any
	Header      http.Header
	RequireAuth bool
}

// Executor sends requests to the backend.
type Executor struct {
	baseURL    string
	healthPath string
	origin     string
	delay      time.Duration

	// client carries the cookie jar; probe is used for credential-less
	// diagnostics and never sends cookies.
	client *http.Client
	probe  *http.Client

	tokens TokenSource
	status ports.StatusReporter
	log    zerolog.Logger
}

// NewExecutor builds an Executor for cfg.
func NewExecutor(cfg Config, tokens TokenSource, status ports.StatusReporter, log zerolog.Logger) (*Executor, error) {
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid backend base url %q: %w", cfg.BaseURL, err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	return &Executor{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		healthPath: cfg.HealthPath,
		origin:     cfg.Origin,
		delay:      cfg.FallbackDelay,
		client:     &http.Client{Jar: jar, Timeout: cfg.Timeout},
		probe:      &http.Client{Timeout: cfg.Timeout},
		tokens:     tokens,
		status:     status,
		log:        log,
	}, nil
}

// Execute runs req and decodes the envelope. On any failure it reports the
// backend offline, waits the fallback delay, and returns a synthetic success
// envelope wrapping fallback. It never returns an error.
func Execute[T any](ctx context.Context, e *Executor, req Request, fallback T) domain.Result[T] {
	res, err := exchange[T](ctx, e, req)
	if err == nil {
		return res
	}

	metrics.APIFallbacksTotal.WithLabelValues(req.Name).Inc()
	e.log.Warn().
		Err(err).
		Str("endpoint", req.Name).
		Str("path", req.Path).
		Msg("backend request failed, serving fallback data")

	e.wait(ctx)
	return domain.FallbackResult(fallback)
}

// Fetch runs req without fallback substitution. Failures are returned as
// *domain.RequestError.
func Fetch[T any](ctx context.Context, e *Executor, req Request) (domain.Result[T], error) {
	return exchange[T](ctx, e, req)
}

func exchange[T any](ctx context.Context, e *Executor, req Request) (domain.Result[T], error) {
	start := time.Now()
	res, err := roundTrip[T](ctx, e, req)
	metrics.APIRequestDuration.WithLabelValues(req.Name).Observe(time.Since(start).Seconds())

	if err != nil {
		var reqErr *domain.RequestError
		outcome := domain.KindNetwork.String()
		if errors.As(err, &reqErr) {
			outcome = reqErr.Kind.String()
		}
		metrics.APIRequestsTotal.WithLabelValues(req.Name, outcome).Inc()

		// A caller that gave up says nothing about the backend.
		if ctx.Err() == nil {
			e.status.Report(domain.ConnectionOffline, err.Error())
		}
		return domain.Result[T]{}, err
	}

	metrics.APIRequestsTotal.WithLabelValues(req.Name, "ok").Inc()
	e.status.Report(domain.ConnectionOnline, "")
	res.Source = domain.SourceLive
	return res, nil
}

func roundTrip[T any](ctx context.Context, e *Executor, req Request) (domain.Result[T], error) {
	var zero domain.Result[T]

	httpReq, err := e.newRequest(ctx, req)
	if err != nil {
		return zero, err
	}

	e.log.Debug().Str("endpoint", req.Name).Str("method", httpReq.Method).Str("url", httpReq.URL.String()).Msg("backend request")
	resp, err := e.client.Do(httpReq)
	if err != nil {
		return zero, &domain.RequestError{Kind: domain.KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp); err != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return zero, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, &domain.RequestError{Kind: domain.KindNetwork, Err: err}
	}

	res, err := decodeEnvelope[T](body)
	if err != nil {
		return zero, &domain.RequestError{
			Kind:       domain.KindMalformedResponse,
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}
	return res, nil
}

// wireEnvelope holds data undecoded until the code says it is a payload.
type wireEnvelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// decodeEnvelope decodes data into T only for success codes. Failure
// envelopes keep code and msg and leave data zero, whatever shape the
// backend put there.
func decodeEnvelope[T any](body []byte) (domain.Result[T], error) {
	var env wireEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return domain.Result[T]{}, err
	}
	res := domain.Result[T]{Code: env.Code, Msg: env.Msg}
	if !domain.IsSuccessCode(env.Code) || len(env.Data) == 0 {
		return res, nil
	}
	if err := json.Unmarshal(env.Data, &res.Data); err != nil {
		return domain.Result[T]{}, fmt.Errorf("decode data: %w", err)
	}
	return res, nil
}

func (e *Executor) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request body: %w", req.Name, err)
		}
		body = bytes.NewReader(b)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, e.url(req.Path, req.Query), body)
	if err != nil {
		return nil, &domain.RequestError{Kind: domain.KindNetwork, Err: err}
	}

	h := httpReq.Header
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", "no-cache")
	h.Set("Accept", "application/json")
	h.Set("X-Request-ID", uuid.NewString())
	if e.origin != "" {
		h.Set("Origin", e.origin)
	}
	for k, vs := range req.Header {
		h[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}

	if req.RequireAuth {
		if token, ok := e.tokens.Load(ctx); ok {
			h.Set("Authorization", "Bearer "+token)
			e.log.Debug().Str("endpoint", req.Name).Str("token_prefix", tokenPrefix(token)).Msg("sending authenticated request")
		} else {
			e.log.Warn().Str("endpoint", req.Name).Msg("authenticated request sent without a stored token")
		}
	}
	return httpReq, nil
}

func tokenPrefix(token string) string {
	if len(token) > 10 {
		return token[:10] + "..."
	}
	return token
}

func (e *Executor) url(path string, query url.Values) string {
	u := e.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (e *Executor) wait(ctx context.Context) {
	if e.delay <= 0 {
		return
	}
	t := time.NewTimer(e.delay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func classifyStatus(resp *http.Response) error {
	code := resp.StatusCode
	if code >= 200 && code < 300 {
		return nil
	}

	err := &domain.RequestError{StatusCode: code, StatusText: statusText(resp)}
	switch code {
	case http.StatusUnauthorized:
		err.Kind = domain.KindUnauthorized
	case http.StatusForbidden:
		err.Kind = domain.KindForbidden
	default:
		err.Kind = domain.KindHTTP
	}
	return err
}

// statusText returns the reason phrase the server sent, or the standard one.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
