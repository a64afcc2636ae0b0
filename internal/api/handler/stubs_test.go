package handler

import (
	"context"
	"errors"
	"sync"

	"github.com/oaworkspace/oaclient/internal/core/domain"
	"github.com/oaworkspace/oaclient/internal/core/ports"
)

type stubAuthService struct {
	loginFn       func(ctx context.Context, username, password string) (*ports.LoginOutcome, error)
	logoutErr     error
	logoutCalls   int
	user          *domain.UserProfile
	authenticated bool
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.LoginOutcome, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(context.Context) error {
	s.logoutCalls++
	return s.logoutErr
}

func (s *stubAuthService) CurrentUser(context.Context) (*domain.UserProfile, bool) {
	return s.user, s.user != nil
}

func (s *stubAuthService) IsAuthenticated(context.Context) bool {
	return s.authenticated
}

type stubOfficeService struct {
	workersFn    func(ctx context.Context, q ports.WorkerQuery) (domain.Result[domain.WorkerPage], error)
	attendanceFn func(ctx context.Context, kind domain.AttendanceKind) (*domain.AttendanceRecord, error)
	rooms        domain.Result[[]domain.MeetingRoom]
	leaveTypes   domain.Result[[]domain.LeaveType]
	applyFn      func(ctx context.Context, app domain.LeaveApplication) (*ports.LeaveOutcome, error)
	profileFn    func(ctx context.Context) (domain.Result[domain.UserProfile], error)
}

func (s *stubOfficeService) Workers(ctx context.Context, q ports.WorkerQuery) (domain.Result[domain.WorkerPage], error) {
	return s.workersFn(ctx, q)
}

func (s *stubOfficeService) Attendance(ctx context.Context, kind domain.AttendanceKind) (*domain.AttendanceRecord, error) {
	return s.attendanceFn(ctx, kind)
}

func (s *stubOfficeService) MeetingRooms(context.Context) domain.Result[[]domain.MeetingRoom] {
	return s.rooms
}

func (s *stubOfficeService) LeaveTypes(context.Context) domain.Result[[]domain.LeaveType] {
	return s.leaveTypes
}

func (s *stubOfficeService) ApplyLeave(ctx context.Context, app domain.LeaveApplication) (*ports.LeaveOutcome, error) {
	return s.applyFn(ctx, app)
}

func (s *stubOfficeService) Profile(ctx context.Context) (domain.Result[domain.UserProfile], error) {
	return s.profileFn(ctx)
}

type stubLanguage struct {
	lang   domain.Language
	setErr error
}

func (s *stubLanguage) Get(context.Context) domain.Language { return s.lang }

func (s *stubLanguage) Set(_ context.Context, lang domain.Language) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.lang = lang
	return nil
}

type stubDiagnostician struct{}

func (stubDiagnostician) Diagnose(_ context.Context, withCredentials bool) ports.Diagnosis {
	if withCredentials {
		return ports.Diagnosis{Success: false, StatusCode: 403, Message: "403 Forbidden"}
	}
	return ports.Diagnosis{Success: true, StatusCode: 200, Message: "Connection Successful"}
}

type stubStatusSource struct {
	mu      sync.Mutex
	current domain.ConnectionStatus
}

func (s *stubStatusSource) Subscribe(listener ports.StatusListener) func() {
	listener(s.Current())
	return func() {}
}

func (s *stubStatusSource) Current() domain.ConnectionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

type stubStorage struct {
	pingErr error
}

func (s *stubStorage) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (s *stubStorage) Set(context.Context, string, string) error         { return nil }
func (s *stubStorage) Delete(context.Context, ...string) error           { return nil }
func (s *stubStorage) Ping(context.Context) error                        { return s.pingErr }

var errBackend = errors.New("backend down")
