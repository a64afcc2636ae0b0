package domain

// UserStatus is the employment state reported by the OA backend.
type UserStatus int

const (
	UserStatusInactive UserStatus = 0
	UserStatusActive   UserStatus = 1
	UserStatusOnLeave  UserStatus = 2
)

// String returns the catalog key suffix used by the UI for badges.
func (s UserStatus) String() string {
	switch s {
	case UserStatusActive:
		return "active"
	case UserStatusOnLeave:
		return "leave"
	default:
		return "inactive"
	}
}

// PlaceholderPosition is the position given to sessions synthesized from a
// bare username.
const PlaceholderPosition = "Employee"

// UserProfile models the current user as the backend serializes it. It is
// also the persisted form of the session under the "user" storage key.
type UserProfile struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	EmployeeID   string     `json:"employeeId"`
	DepartmentID int64      `json:"departmentId"`
	Status       UserStatus `json:"status"`
	Position     string     `json:"position"`
	RealName     string     `json:"realName"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
}

// PlaceholderUser builds the minimal session used when the server returned
// no usable profile.
func PlaceholderUser(username string) UserProfile {
	return UserProfile{
		Username: username,
		RealName: username,
		Position: PlaceholderPosition,
		Status:   UserStatusActive,
	}
}

// DisplayName prefers the real name and falls back to the username.
func (u UserProfile) DisplayName() string {
	if u.RealName != "" {
		return u.RealName
	}
	return u.Username
}

// Credentials carries the login form input.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}
