package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oaworkspace/oaclient/internal/core/domain"
	"github.com/oaworkspace/oaclient/internal/core/ports"
)

// OfficeHandler serves the dashboard, employee, leave and profile data.
// Every route sits behind RequireSession.
type OfficeHandler struct {
	service ports.OfficeService
}

func NewOfficeHandler(service ports.OfficeService) *OfficeHandler {
	return &OfficeHandler{service: service}
}

// Workers lists employees.
//
// @Summary      List workers
// @Tags         office
// @Produce      json
// @Param        pageNum   query     int     false  "Page number (default 1)"
// @Param        pageSize  query     int     false  "Page size (default 10, max 100)"
// @Param        name      query     string  false  "Username filter"
// @Success      200       {object}  envelope[domain.WorkerPage]
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Router       /api/workers [get]
func (h *OfficeHandler) Workers(c echo.Context) error {
	var q workersQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&q); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	res, err := h.service.Workers(c.Request().Context(), ports.WorkerQuery{
		PageNum:  q.PageNum,
		PageSize: q.PageSize,
		Username: q.Name,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEnvelope(res))
}

// SignIn records the start of the working day.
//
// @Summary      Sign in
// @Tags         office
// @Produce      json
// @Success      200  {object}  domain.AttendanceRecord
// @Failure      401  {object}  errorResponse
// @Router       /api/attendance/sign-in [post]
func (h *OfficeHandler) SignIn(c echo.Context) error {
	return h.attendance(c, domain.AttendanceIn)
}

// SignOut records the end of the working day.
//
// @Summary      Sign out
// @Tags         office
// @Produce      json
// @Success      200  {object}  domain.AttendanceRecord
// @Failure      401  {object}  errorResponse
// @Router       /api/attendance/sign-out [post]
func (h *OfficeHandler) SignOut(c echo.Context) error {
	return h.attendance(c, domain.AttendanceOut)
}

func (h *OfficeHandler) attendance(c echo.Context, kind domain.AttendanceKind) error {
	rec, err := h.service.Attendance(c.Request().Context(), kind)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// MeetingRooms returns meeting room availability.
//
// @Summary      Meeting rooms
// @Tags         office
// @Produce      json
// @Success      200  {object}  envelope[[]domain.MeetingRoom]
// @Failure      401  {object}  errorResponse
// @Router       /api/meeting-rooms [get]
func (h *OfficeHandler) MeetingRooms(c echo.Context) error {
	return c.JSON(http.StatusOK, toEnvelope(h.service.MeetingRooms(c.Request().Context())))
}

// LeaveTypes returns the selectable kinds of leave.
//
// @Summary      Leave types
// @Tags         office
// @Produce      json
// @Success      200  {object}  envelope[[]domain.LeaveType]
// @Failure      401  {object}  errorResponse
// @Router       /api/leave/types [get]
func (h *OfficeHandler) LeaveTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, toEnvelope(h.service.LeaveTypes(c.Request().Context())))
}

// ApplyLeave submits a leave application.
//
// @Summary      Apply for leave
// @Tags         office
// @Accept       json
// @Produce      json
// @Param        body  body      leaveRequest  true  "Leave application"
// @Success      200   {object}  ports.LeaveOutcome
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/leave [post]
func (h *OfficeHandler) ApplyLeave(c echo.Context) error {
	var req leaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	out, err := h.service.ApplyLeave(c.Request().Context(), domain.LeaveApplication{
		LeaveTypeID: req.LeaveTypeID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Reason:      req.Reason,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Profile returns the logged-in user's profile.
//
// @Summary      Profile
// @Tags         office
// @Produce      json
// @Success      200  {object}  envelope[domain.UserProfile]
// @Failure      401  {object}  errorResponse
// @Router       /api/profile [get]
func (h *OfficeHandler) Profile(c echo.Context) error {
	res, err := h.service.Profile(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEnvelope(res))
}
