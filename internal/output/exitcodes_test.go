package output

import (
	"errors"
	"testing"
)

func TestExitCodeConstants(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"ExitSuccess", ExitSuccess, 0},
		{"ExitUserError", ExitUserError, 1},
		{"ExitSystemError", ExitSystemError, 2},
		{"ExitPolicy", ExitPolicy, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("%s = %d, want %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ExitError
		wantCode int
		wantMsg  string
	}{
		{
			name:     "user error",
			err:      NewUserError("unknown confirmation id"),
			wantCode: ExitUserError,
			wantMsg:  "unknown confirmation id",
		},
		{
			name:     "system error",
			err:      NewSystemError("git executable not found in PATH"),
			wantCode: ExitSystemError,
			wantMsg:  "git executable not found in PATH",
		},
		{
			name:     "policy error",
			err:      NewPolicyError("empty git args are not allowed"),
			wantCode: ExitPolicy,
			wantMsg:  "empty git args are not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	cause := errors.New("underlying failure")
	err := NewSystemErrorWithCause("git command failed", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"user error", NewUserError("bad phrase"), ExitUserError},
		{"system error", NewSystemError("spawn failed"), ExitSystemError},
		{"policy error", NewPolicyError("blocked"), ExitPolicy},
		{"untyped error", errors.New("plain"), ExitUserError},
		{"wrapped exit error", errors.Join(errors.New("ctx"), NewPolicyError("blocked")), ExitPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
