package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/oaworkspace/oaclient/internal/core/domain"
	"github.com/oaworkspace/oaclient/internal/core/ports"
	"github.com/oaworkspace/oaclient/internal/i18n"
)

const (
	defaultPageNum  = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// OfficeService implements the dashboard, employee, leave and profile use
// cases on top of the fallback-backed OfficeAPI.
type OfficeService struct {
	api      ports.OfficeAPI
	sessions *SessionStore
	text     Translator
	now      func() time.Time
	log      zerolog.Logger
}

var _ ports.OfficeService = (*OfficeService)(nil)

func NewOfficeService(api ports.OfficeAPI, sessions *SessionStore, text Translator, log zerolog.Logger) *OfficeService {
	return &OfficeService{
		api:      api,
		sessions: sessions,
		text:     text,
		now:      time.Now,
		log:      log,
	}
}

// Workers returns one page of the worker listing.
func (s *OfficeService) Workers(ctx context.Context, q ports.WorkerQuery) (domain.Result[domain.WorkerPage], error) {
	if err := ctx.Err(); err != nil {
		return domain.Result[domain.WorkerPage]{}, err
	}

	filter := domain.PageSelectWorker{
		PageNum:  q.PageNum,
		PageSize: q.PageSize,
		Username: strings.TrimSpace(q.Username),
	}
	if filter.PageNum < 1 {
		filter.PageNum = defaultPageNum
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}

	return s.api.ListWorkers(ctx, filter), nil
}

// Attendance signs the current user in or out, stamped with the current time.
func (s *OfficeService) Attendance(ctx context.Context, kind domain.AttendanceKind) (*domain.AttendanceRecord, error) {
	var (
		call  func(context.Context, time.Time) domain.Result[any]
		okKey string
	)
	switch kind {
	case domain.AttendanceIn:
		call, okKey = s.api.SignIn, i18n.KeySignInOK
	case domain.AttendanceOut:
		call, okKey = s.api.SignOut, i18n.KeySignOutOK
	default:
		return nil, fmt.Errorf("unknown attendance kind %q", kind)
	}

	at := s.now().UTC()
	res := call(ctx, at)

	rec := &domain.AttendanceRecord{
		Kind:      kind,
		At:        at,
		Success:   res.OK(),
		Synthetic: res.Synthetic(),
	}
	switch {
	case rec.Success:
		rec.Message = s.text.Translate(ctx, okKey)
	case res.Msg != "":
		rec.Message = res.Msg
	default:
		rec.Message = s.text.Translate(ctx, i18n.KeyOperationFailed)
	}

	s.log.Info().
		Str("kind", string(kind)).
		Bool("success", rec.Success).
		Bool("synthetic", rec.Synthetic).
		Msg("attendance recorded")
	return rec, nil
}

func (s *OfficeService) MeetingRooms(ctx context.Context) domain.Result[[]domain.MeetingRoom] {
	return s.api.MeetingRooms(ctx)
}

func (s *OfficeService) LeaveTypes(ctx context.Context) domain.Result[[]domain.LeaveType] {
	return s.api.LeaveTypes(ctx)
}

// ApplyLeave validates and submits a leave application.
func (s *OfficeService) ApplyLeave(ctx context.Context, app domain.LeaveApplication) (*ports.LeaveOutcome, error) {
	app.Reason = strings.TrimSpace(app.Reason)
	if err := validateLeave(app); err != nil {
		return nil, err
	}

	res := s.api.ApplyLeave(ctx, app)
	out := &ports.LeaveOutcome{Success: res.OK(), Synthetic: res.Synthetic()}
	switch {
	case out.Success:
		out.Message = s.text.Translate(ctx, i18n.KeyLeaveSuccess)
	case res.Msg != "":
		out.Message = res.Msg
	default:
		out.Message = s.text.Translate(ctx, i18n.KeyError)
	}
	return out, nil
}

func validateLeave(app domain.LeaveApplication) error {
	if app.LeaveTypeID <= 0 {
		return fmt.Errorf("%w: leave type is required", domain.ErrInvalidLeave)
	}
	start, err := time.Parse(domain.LeaveDateLayout, app.StartTime)
	if err != nil {
		return fmt.Errorf("%w: start date must be YYYY-MM-DD", domain.ErrInvalidLeave)
	}
	end, err := time.Parse(domain.LeaveDateLayout, app.EndTime)
	if err != nil {
		return fmt.Errorf("%w: end date must be YYYY-MM-DD", domain.ErrInvalidLeave)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end date is before start date", domain.ErrInvalidLeave)
	}
	if app.Reason == "" {
		return fmt.Errorf("%w: reason is required", domain.ErrInvalidLeave)
	}
	return nil
}

// Profile returns the logged-in user's profile. A placeholder session has no
// backend id, so it is returned as stored.
func (s *OfficeService) Profile(ctx context.Context) (domain.Result[domain.UserProfile], error) {
	user, ok := s.sessions.Load(ctx)
	if !ok {
		return domain.Result[domain.UserProfile]{}, domain.ErrNotAuthenticated
	}
	if user.ID == 0 {
		return domain.Result[domain.UserProfile]{Code: domain.CodeOK, Data: *user}, nil
	}
	return s.api.UserProfile(ctx, user.ID), nil
}
