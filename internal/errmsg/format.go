// Package errmsg provides consistent error formatting for messages shown on
// the display and in the log.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Player operations
	OpPlayerClear  Op = "clear queue"
	OpPlayerStart  Op = "start playlist"
	OpPlayerUpdate Op = "query player"

	// Device operations
	OpIndicatorRestore Op = "restore indicator"
	OpPowerAction      Op = "run power action"

	// State
	OpStateOpen Op = "open state"
	OpStateLoad Op = "load state"
)

// labelPrefix marks a node label whose producer failed.
const labelPrefix = "callerr: "

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Label renders a producer failure as a short inline node label.
func Label(err error) string {
	if err == nil {
		return ""
	}
	return labelPrefix + err.Error()
}
