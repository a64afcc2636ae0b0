package apiclient

import "github.com/oaworkspace/oaclient/internal/core/domain"

// Fallback data served while the backend is unreachable. Each call returns a
// fresh copy so callers may modify what they get.

func mockUser() domain.UserProfile {
	return domain.UserProfile{
		ID:           1,
		Username:     "admin",
		RealName:     "Alex Administrator",
		EmployeeID:   "EMP001",
		DepartmentID: 101,
		Email:        "admin@company.com",
		Phone:        "123-456-7890",
		Position:     "Senior Manager",
		Status:       domain.UserStatusActive,
	}
}

func mockWorkers() domain.WorkerPage {
	list := []domain.UserProfile{
		{ID: 1, Username: "jdoe", RealName: "John Doe", EmployeeID: "EMP002", DepartmentID: 102, Email: "jdoe@company.com", Phone: "555-0101", Position: "Developer", Status: domain.UserStatusActive},
		{ID: 2, Username: "asmith", RealName: "Alice Smith", EmployeeID: "EMP003", DepartmentID: 102, Email: "asmith@company.com", Phone: "555-0102", Position: "Designer", Status: domain.UserStatusActive},
		{ID: 3, Username: "bwilliams", RealName: "Bob Williams", EmployeeID: "EMP004", DepartmentID: 103, Email: "bwilliams@company.com", Phone: "555-0103", Position: "HR Specialist", Status: domain.UserStatusOnLeave},
		{ID: 4, Username: "cjones", RealName: "Charlie Jones", EmployeeID: "EMP005", DepartmentID: 101, Email: "cjones@company.com", Phone: "555-0104", Position: "Manager", Status: domain.UserStatusActive},
	}
	return domain.WorkerPage{List: list, Total: int64(len(list))}
}

func mockMeetingRooms() []domain.MeetingRoom {
	return []domain.MeetingRoom{
		{ID: 1, Name: "Conference Room A", Status: domain.RoomAvailable},
		{ID: 2, Name: "Meeting Room B", Status: domain.RoomOccupied, NextMeeting: "14:00 - Team Sync"},
		{ID: 3, Name: "Focus Pod 1", Status: domain.RoomAvailable},
	}
}

func mockLeaveTypes() []domain.LeaveType {
	return []domain.LeaveType{
		{ID: 1, Name: "Annual Leave"},
		{ID: 2, Name: "Sick Leave"},
		{ID: 3, Name: "Personal Leave"},
	}
}
