package ports

import (
	"context"

	"github.com/oaworkspace/oaclient/internal/core/domain"
)

// WorkerQuery is the worker search input from the UI.
type WorkerQuery struct {
	PageNum  int
	PageSize int
	Username string
}

// LeaveOutcome reports a submitted leave application.
type LeaveOutcome struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Synthetic bool   `json:"synthetic"`
}

// OfficeService defines the use cases the dashboard, employee, leave and
// profile views call into.
type OfficeService interface {
	Workers(ctx context.Context, q WorkerQuery) (domain.Result[domain.WorkerPage], error)
	Attendance(ctx context.Context, kind domain.AttendanceKind) (*domain.AttendanceRecord, error)
	MeetingRooms(ctx context.Context) domain.Result[[]domain.MeetingRoom]
	LeaveTypes(ctx context.Context) domain.Result[[]domain.LeaveType]
	ApplyLeave(ctx context.Context, app domain.LeaveApplication) (*LeaveOutcome, error)
	Profile(ctx context.Context) (domain.Result[domain.UserProfile], error)
}
