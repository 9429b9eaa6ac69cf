package utils

import (
	"errors"
	"testing"
)

func TestUserError(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		solution string
		err      error
		want     string
	}{
		{
			name:     "with solution and cause",
			message:  "Bearer token is required",
			solution: "Pass --token or set WENI_BEARER_TOKEN",
			err:      errors.New("no credentials found"),
			want:     "Bearer token is required\n\n💡 Solution: Pass --token or set WENI_BEARER_TOKEN\n\nDetails: no credentials found",
		},
		{
			name:     "message only",
			message:  "Project UUID is required",
			solution: "",
			err:      nil,
			want:     "Project UUID is required",
		},
		{
			name:     "with solution only",
			message:  "Config file already exists",
			solution: "Remove it first, or use --path to write elsewhere",
			err:      nil,
			want:     "Config file already exists\n\n💡 Solution: Remove it first, or use --path to write elsewhere",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ue := NewUserError(tt.message, tt.solution, tt.err)
			if got := ue.Error(); got != tt.want {
				t.Errorf("UserError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	ve := NewValidationError("start-date", "must be in DD-MM-YYYY format")
	want := "start-date: must be in DD-MM-YYYY format"

	if got := ve.Error(); got != want {
		t.Errorf("ValidationError.Error() = %v, want %v", got, want)
	}
}

func TestUserErrorUnwrap(t *testing.T) {
	fetchErr := errors.New("HTTP 403 from /api/v1/project-123/conversations/")
	ue := NewUserError("Failed to list conversations", "Check that the bearer token is still valid", fetchErr)

	if err := ue.Unwrap(); !errors.Is(err, fetchErr) {
		t.Error("Unwrap() did not return the fetch error")
	}
}
