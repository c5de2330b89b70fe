// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Session operations
	OpSessionStart  Op = "start session"
	OpSessionResume Op = "resume session"
	OpSessionStop   Op = "stop session"

	// Timing input
	OpSetClassTime Op = "set class time"
	OpSetRestTime  Op = "set rest time"
	OpSetElapsed   Op = "set elapsed time"

	// Cue playback
	OpCuePlay Op = "play cue"
	OpCueStop Op = "stop cue"

	// Settings
	OpConfigLoad   Op = "load config"
	OpSettingsLoad Op = "load settings"
	OpSettingsSave Op = "save settings"

	// Desktop notifications
	OpNotify Op = "send notification"

	// Initialization
	OpInitialize Op = "initialize application"
)

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
