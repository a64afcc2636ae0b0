package ports

import (
	"context"

	"github.com/oaworkspace/oaclient/internal/core/domain"
)

// LoginOutcome is what a successful login established.
type LoginOutcome struct {
	Token         string             `json:"-"`
	User          domain.UserProfile `json:"user"`
	ProfileSource string             `json:"profileSource"`
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginOutcome, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.UserProfile, bool)
	IsAuthenticated(ctx context.Context) bool
}
