package ports

import (
	"context"
	"time"

	"github.com/oaworkspace/oaclient/internal/core/domain"
)

// AuthAPI is the strict (non-fallback) backend surface used by the login
// flow. Errors are *domain.RequestError values.
type AuthAPI interface {
	Login(ctx context.Context, creds domain.Credentials) (domain.Result[domain.LoginPayload], error)
	FetchProfile(ctx context.Context, id int64) (domain.Result[*domain.UserProfile], error)
}

// OfficeAPI is the data-fetching backend surface. Every call substitutes
// fallback data on failure, so none of them return an error.
type OfficeAPI interface {
	ListWorkers(ctx context.Context, filter domain.PageSelectWorker) domain.Result[domain.WorkerPage]
	SignIn(ctx context.Context, at time.Time) domain.Result[any]
	SignOut(ctx context.Context, at time.Time) domain.Result[any]
	MeetingRooms(ctx context.Context) domain.Result[[]domain.MeetingRoom]
	LeaveTypes(ctx context.Context) domain.Result[[]domain.LeaveType]
	ApplyLeave(ctx context.Context, app domain.LeaveApplication) domain.Result[any]
	UserProfile(ctx context.Context, id int64) domain.Result[domain.UserProfile]
}

// Diagnosis is the outcome of a connectivity probe.
type Diagnosis struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	StatusCode int    `json:"status"`
}

// Diagnostician probes backend connectivity without fallback.
type Diagnostician interface {
	Diagnose(ctx context.Context, withCredentials bool) Diagnosis
}
