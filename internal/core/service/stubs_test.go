package service

import (
	"context"
	"errors"
	"sync"

	"github.com/oaworkspace/oaclient/internal/core/domain"
	"github.com/oaworkspace/oaclient/internal/core/ports"
)

type stubKV struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
	setErr error
}

func newStubKV() *stubKV {
	return &stubKV{values: make(map[string]string)}
}

func (s *stubKV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *stubKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

func (s *stubKV) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}

func (s *stubKV) Ping(context.Context) error { return nil }

func (s *stubKV) raw(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

var _ ports.KeyValueStore = (*stubKV)(nil)

var errBackend = errors.New("backend unavailable")

// fixedText echoes the key back so tests can assert which message was chosen.
type fixedText struct{}

func (fixedText) Translate(_ context.Context, key string) string { return key }

type stubAuthAPI struct {
	login        func(domain.Credentials) (domain.Result[domain.LoginPayload], error)
	fetchProfile func(id int64) (domain.Result[*domain.UserProfile], error)
	profileCalls []int64
}

func (s *stubAuthAPI) Login(_ context.Context, creds domain.Credentials) (domain.Result[domain.LoginPayload], error) {
	return s.login(creds)
}

func (s *stubAuthAPI) FetchProfile(_ context.Context, id int64) (domain.Result[*domain.UserProfile], error) {
	s.profileCalls = append(s.profileCalls, id)
	if s.fetchProfile == nil {
		return domain.Result[*domain.UserProfile]{}, errors.New("unexpected profile fetch")
	}
	return s.fetchProfile(id)
}
