package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/oaworkspace/oaclient/internal/core/domain"
	"github.com/oaworkspace/oaclient/internal/core/ports"
)

// attendanceLayout is the millisecond ISO-8601 form the backend expects.
const attendanceLayout = "2006-01-02T15:04:05.000Z"

// OfficeClient binds the OA endpoints to an Executor.
type OfficeClient struct {
	exec *Executor
}

var (
	_ ports.AuthAPI   = (*OfficeClient)(nil)
	_ ports.OfficeAPI = (*OfficeClient)(nil)
)

func NewOfficeClient(exec *Executor) *OfficeClient {
	return &OfficeClient{exec: exec}
}

// Login posts credentials. It is sent without a bearer token and never
// substitutes fallback data.
func (c *OfficeClient) Login(ctx context.Context, creds domain.Credentials) (domain.Result[domain.LoginPayload], error) {
	return Fetch[domain.LoginPayload](ctx, c.exec, Request{
		Name:   "login",
		Method: http.MethodPost,
		Path:   "/login",
		Body:   creds,
	})
}

// FetchProfile is the strict variant of UserProfile used during login.
func (c *OfficeClient) FetchProfile(ctx context.Context, id int64) (domain.Result[*domain.UserProfile], error) {
	return Fetch[*domain.UserProfile](ctx, c.exec, Request{
		Name:        "user_profile",
		Method:      http.MethodGet,
		Path:        profilePath(id),
		RequireAuth: true,
	})
}

func (c *OfficeClient) ListWorkers(ctx context.Context, filter domain.PageSelectWorker) domain.Result[domain.WorkerPage] {
	return Execute(ctx, c.exec, Request{
		Name:        "workers",
		Method:      http.MethodPost,
		Path:        "/wim/page/get/workers",
		Body:        filter,
		RequireAuth: true,
	}, mockWorkers())
}

func (c *OfficeClient) SignIn(ctx context.Context, at time.Time) domain.Result[any] {
	return c.attendance(ctx, "sign_in", "/workspace/sign/in", "signInTime", at)
}

func (c *OfficeClient) SignOut(ctx context.Context, at time.Time) domain.Result[any] {
	return c.attendance(ctx, "sign_out", "/workspace/sign/out", "signOutTime", at)
}

func (c *OfficeClient) attendance(ctx context.Context, name, path, param string, at time.Time) domain.Result[any] {
	return Execute[any](ctx, c.exec, Request{
		Name:        name,
		Method:      http.MethodPost,
		Path:        path,
		Query:       url.Values{param: {at.UTC().Format(attendanceLayout)}},
		RequireAuth: true,
	}, nil)
}

func (c *OfficeClient) MeetingRooms(ctx context.Context) domain.Result[[]domain.MeetingRoom] {
	return Execute(ctx, c.exec, Request{
		Name:        "meeting_rooms",
		Method:      http.MethodGet,
		Path:        "/workspace/meetingRoom",
		RequireAuth: true,
	}, mockMeetingRooms())
}

func (c *OfficeClient) LeaveTypes(ctx context.Context) domain.Result[[]domain.LeaveType] {
	return Execute(ctx, c.exec, Request{
		Name:        "leave_types",
		Method:      http.MethodGet,
		Path:        "/leave/type",
		RequireAuth: true,
	}, mockLeaveTypes())
}

func (c *OfficeClient) ApplyLeave(ctx context.Context, app domain.LeaveApplication) domain.Result[any] {
	return Execute[any](ctx, c.exec, Request{
		Name:        "apply_leave",
		Method:      http.MethodPut,
		Path:        "/leave/add/leave",
		Body:        app,
		RequireAuth: true,
	}, nil)
}

func (c *OfficeClient) UserProfile(ctx context.Context, id int64) domain.Result[domain.UserProfile] {
	return Execute(ctx, c.exec, Request{
		Name:        "user_profile",
		Method:      http.MethodGet,
		Path:        profilePath(id),
		RequireAuth: true,
	}, mockUser())
}

func profilePath(id int64) string {
	return "/wim/" + strconv.FormatInt(id, 10)
}
