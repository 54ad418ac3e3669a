//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlayerClear,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpPlayerClear,
			err:      errors.New("connection refused"),
			expected: "Failed to clear queue: connection refused",
		},
		{
			name:     "player query",
			op:       OpPlayerUpdate,
			err:      errors.New("no such playlist"),
			expected: "Failed to query player: no such playlist",
		},
		{
			name:     "state operation",
			op:       OpStateOpen,
			err:      errors.New("database is locked"),
			expected: "Failed to open state: database is locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlayerStart,
			context:  "jazz",
			err:      nil,
			expected: "",
		},
		{
			name:     "includes context",
			op:       OpPlayerStart,
			context:  "jazz",
			err:      errors.New("exit status 1"),
			expected: "Failed to start playlist 'jazz': exit status 1",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpPowerAction,
			context:  "",
			err:      errors.New("not found"),
			expected: "Failed to run power action: not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	if got := Label(nil); got != "" {
		t.Errorf("Label(nil) = %q, want empty", got)
	}
	if got := Label(errors.New("boom")); got != "callerr: boom" {
		t.Errorf("Label = %q, want %q", got, "callerr: boom")
	}
}
