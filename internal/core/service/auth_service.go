package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/oaworkspace/oaclient/internal/core/domain"
	"github.com/oaworkspace/oaclient/internal/core/ports"
	"github.com/oaworkspace/oaclient/internal/i18n"
	"github.com/oaworkspace/oaclient/internal/pkg/metrics"
)

// LoginState is the position of the login flow.
type LoginState int32

const (
	LoginIdle LoginState = iota
	LoginSubmitting
	LoginSucceeded
	LoginFailed
)

func (s LoginState) String() string {
	switch s {
	case LoginSubmitting:
		return "submitting"
	case LoginSucceeded:
		return "success"
	case LoginFailed:
		return "failure"
	default:
		return "idle"
	}
}

// Where the session profile came from.
const (
	ProfileEmbedded    = "embedded"
	ProfileFromClaims  = "claims"
	ProfilePlaceholder = "placeholder"
)

// Translator resolves a catalog key in the user's language.
type Translator interface {
	Translate(ctx context.Context, key string) string
}

// AuthService runs the login flow and owns logout.
type AuthService struct {
	api      ports.AuthAPI
	tokens   *TokenStore
	sessions *SessionStore
	text     Translator
	parser   *jwt.Parser
	state    atomic.Int32
	log      zerolog.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(api ports.AuthAPI, tokens *TokenStore, sessions *SessionStore, text Translator, log zerolog.Logger) *AuthService {
	return &AuthService{
		api:      api,
		tokens:   tokens,
		sessions: sessions,
		text:     text,
		parser:   jwt.NewParser(),
		log:      log,
	}
}

// State returns the current login flow state.
func (s *AuthService) State() LoginState {
	return LoginState(s.state.Load())
}

// Login submits the credentials and, on success, persists token and session.
// Every failure is a *domain.LoginError carrying the message to show.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginOutcome, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	s.state.Store(int32(LoginSubmitting))
	outcome, err := s.login(ctx, username, password)
	if err != nil {
		s.state.Store(int32(LoginFailed))
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		s.log.Info().Err(err).Str("username", username).Msg("login failed")
		return nil, err
	}

	s.state.Store(int32(LoginSucceeded))
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().
		Str("username", username).
		Str("profile_source", outcome.ProfileSource).
		Msg("login succeeded")
	return outcome, nil
}

func (s *AuthService) login(ctx context.Context, username, password string) (*ports.LoginOutcome, error) {
	res, err := s.api.Login(ctx, domain.Credentials{Username: username, Password: password})
	if err != nil {
		return nil, &domain.LoginError{Message: s.text.Translate(ctx, i18n.KeyNetworkError), Err: err}
	}
	if !res.OK() {
		msg := res.Msg
		if msg == "" {
			msg = s.text.Translate(ctx, i18n.KeyLoginFailed)
		}
		return nil, &domain.LoginError{Message: msg}
	}

	token := NormalizeToken(res.Data.Token)
	if token == "" {
		return nil, &domain.LoginError{Message: s.text.Translate(ctx, i18n.KeyNoToken), Err: domain.ErrEmptyToken}
	}

	// The token goes in first so the profile lookup below is authenticated.
	if err := s.tokens.Save(ctx, token); err != nil {
		return nil, &domain.LoginError{Message: s.text.Translate(ctx, i18n.KeyLoginFailed), Err: err}
	}

	user, source := s.resolveProfile(ctx, username, token, res.Data)
	if err := s.sessions.Save(ctx, user); err != nil {
		if clearErr := s.tokens.Clear(ctx); clearErr != nil {
			s.log.Error().Err(clearErr).Msg("failed to roll back token after session save error")
		}
		return nil, &domain.LoginError{Message: s.text.Translate(ctx, i18n.KeyLoginFailed), Err: err}
	}

	return &ports.LoginOutcome{Token: token, User: user, ProfileSource: source}, nil
}

func (s *AuthService) resolveProfile(ctx context.Context, username, token string, payload domain.LoginPayload) (domain.UserProfile, string) {
	if payload.User != nil {
		return *payload.User, ProfileEmbedded
	}

	id, err := subjectID(s.parser, token)
	if err != nil {
		s.log.Debug().Err(err).Msg("no usable subject in token, using placeholder profile")
		return domain.PlaceholderUser(username), ProfilePlaceholder
	}

	res, err := s.api.FetchProfile(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", id).Msg("could not fetch user profile from token")
		return domain.PlaceholderUser(username), ProfilePlaceholder
	}
	if !res.OK() || res.Data == nil {
		return domain.PlaceholderUser(username), ProfilePlaceholder
	}
	return *res.Data, ProfileFromClaims
}

// subjectID reads the numeric "sub" claim from the middle token segment.
// The signature and header are not checked: the client holds no key and
// only needs the identifier for a profile lookup. A zero subject counts as
// no subject.
func subjectID(parser *jwt.Parser, token string) (int64, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 || parts[1] == "" {
		return 0, fmt.Errorf("%w: token has no claims segment", domain.ErrClaimDecode)
	}
	payload, err := parser.DecodeSegment(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrClaimDecode, err)
	}
	claims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrClaimDecode, err)
	}

	id, err := subjectValue(claims["sub"])
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, fmt.Errorf("%w: subject is zero", domain.ErrClaimDecode)
	}
	return id, nil
}

func subjectValue(sub any) (int64, error) {
	switch sub := sub.(type) {
	case nil:
		return 0, fmt.Errorf("%w: no subject claim", domain.ErrClaimDecode)
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(sub), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: subject %q is not numeric", domain.ErrClaimDecode, sub)
		}
		return id, nil
	case float64:
		if sub != math.Trunc(sub) {
			return 0, fmt.Errorf("%w: subject %v is not an integer", domain.ErrClaimDecode, sub)
		}
		return int64(sub), nil
	case json.Number:
		id, err := sub.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrClaimDecode, err)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("%w: subject has type %T", domain.ErrClaimDecode, sub)
	}
}

// Logout clears the persisted session and token.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return err
	}
	s.state.Store(int32(LoginIdle))
	s.log.Info().Msg("logged out")
	return nil
}

// CurrentUser returns the persisted profile, if any.
func (s *AuthService) CurrentUser(ctx context.Context) (*domain.UserProfile, bool) {
	return s.sessions.Load(ctx)
}

// IsAuthenticated reports whether a token is stored.
func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	return s.sessions.IsAuthenticated(ctx)
}
