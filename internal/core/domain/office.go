package domain

import "time"

// PageSelectWorker is the worker search filter accepted by the backend.
type PageSelectWorker struct {
	PageNum      int    `json:"pageNum"`
	PageSize     int    `json:"pageSize"`
	Username     string `json:"username,omitempty"`
	EmployeeID   string `json:"employeeId,omitempty"`
	DepartmentID *int64 `json:"departmentId,omitempty"`
	Status       *int   `json:"status,omitempty"`
	Position     string `json:"position,omitempty"`
	StartTime    string `json:"startTime,omitempty"`
}

// WorkerPage is one page of the worker listing.
type WorkerPage struct {
	List  []UserProfile `json:"list"`
	Total int64         `json:"total"`
}

// MeetingRoomState is the availability of a meeting room.
type MeetingRoomState string

const (
	RoomAvailable   MeetingRoomState = "available"
	RoomOccupied    MeetingRoomState = "occupied"
	RoomMaintenance MeetingRoomState = "maintenance"
)

// MeetingRoom is a dashboard meeting-room tile.
type MeetingRoom struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Status      MeetingRoomState `json:"status"`
	NextMeeting string           `json:"nextMeeting,omitempty"`
}

// LeaveType is a selectable kind of leave.
type LeaveType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// LeaveApplication is the leave request body. Times use the date format of
// the backend (YYYY-MM-DD).
type LeaveApplication struct {
	LeaveTypeID int64  `json:"leaveTypeId"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Reason      string `json:"reason"`
}

// LeaveDateLayout is the date layout used by leave applications.
const LeaveDateLayout = "2006-01-02"

// AttendanceKind selects sign-in or sign-out.
type AttendanceKind string

const (
	AttendanceIn  AttendanceKind = "in"
	AttendanceOut AttendanceKind = "out"
)

// AttendanceRecord is the outcome of an attendance action.
type AttendanceRecord struct {
	Kind      AttendanceKind `json:"kind"`
	At        time.Time      `json:"at"`
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	Synthetic bool           `json:"synthetic"`
}

// Language is a UI language preference.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageChinese Language = "zh"
)

// Valid reports whether the language is supported.
func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageChinese
}
