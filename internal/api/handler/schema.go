package handler

import (
	"github.com/oaworkspace/oaclient/internal/core/domain"
	"github.com/oaworkspace/oaclient/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type workersQuery struct {
	PageNum  int    `query:"pageNum"  validate:"min=0"`
	PageSize int    `query:"pageSize" validate:"min=0,max=100"`
	Name     string `query:"name"`
}

type leaveRequest struct {
	LeaveTypeID int64  `json:"leaveTypeId" validate:"gt=0"`
	StartTime   string `json:"startTime"   validate:"required,datetime=2006-01-02"`
	EndTime     string `json:"endTime"     validate:"required,datetime=2006-01-02"`
	Reason      string `json:"reason"      validate:"required"`
}

type languageRequest struct {
	Language string `json:"language" validate:"required,oneof=en zh"`
}

// --- Response types ---

// envelope is a backend envelope as the console returns it. Synthetic marks
// fallback data.
type envelope[T any] struct {
	Code      int    `json:"code"`
	Msg       string `json:"msg"`
	Data      T      `json:"data"`
	Synthetic bool   `json:"synthetic"`
}

func toEnvelope[T any](r domain.Result[T]) envelope[T] {
	return envelope[T]{Code: r.Code, Msg: r.Msg, Data: r.Data, Synthetic: r.Synthetic()}
}

type sessionResponse struct {
	Authenticated bool                `json:"authenticated"`
	User          *domain.UserProfile `json:"user,omitempty"`
}

type statusResponse struct {
	domain.ConnectionStatus
	Notice string `json:"notice,omitempty"`
}

type resetResponse struct {
	Reset bool `json:"reset"`
}

type diagnosticsResponse struct {
	Basic        ports.Diagnosis `json:"basic"`
	Credentialed ports.Diagnosis `json:"credentialed"`
}

type languageResponse struct {
	Language domain.Language `json:"language"`
}
