package handler

import (
	"testing"
)

func TestValidator_Messages(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{
			name: "login",
			in:   &loginRequest{Username: "alice"},
			want: "password is required",
		},
		{
			name: "leave",
			in:   &leaveRequest{LeaveTypeID: 0, StartTime: "03/04/2024", EndTime: "2024-03-05", Reason: "x"},
			want: "leaveTypeId must be greater than 0; startTime must be a date (YYYY-MM-DD)",
		},
		{
			name: "language",
			in:   &languageRequest{Language: "fr"},
			want: "language must be one of en, zh",
		},
		{
			name: "workers query",
			in:   &workersQuery{PageSize: 101},
			want: "pageSize must be at most 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.in)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if err.Error() != tt.want {
				t.Fatalf("got %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestValidator_Valid(t *testing.T) {
	v := NewValidator()
	ok := &leaveRequest{LeaveTypeID: 1, StartTime: "2024-03-04", EndTime: "2024-03-05", Reason: "trip"}
	if err := v.Validate(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
