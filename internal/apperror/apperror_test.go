package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("user", "9"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("user", "user must be a number or \"all\""),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("user", "9"),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "ValidationFailed does NOT match ErrNotFound",
			err:       ValidationFailed("q", "search term too long"),
			target:    ErrNotFound,
			wantMatch: false,
		},
		{
			name:      "match survives fmt.Errorf wrapping",
			err:       fmt.Errorf("selecting user: %w", ValidationFailed("user", "unknown user 9")),
			target:    ErrValidation,
			wantMatch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("user", "9"),
			wantMessage: "user not found with id 9",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("q", "search term too long"),
			wantMessage: "search term too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestValidationFailedField(t *testing.T) {
	err := ValidationFailed("user", "unknown user 9")

	if err.Field != "user" {
		t.Errorf("Field = %q, want %q", err.Field, "user")
	}
	if err.Unwrap() != ErrValidation {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), ErrValidation)
	}
}
