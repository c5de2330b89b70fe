// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Session actions
	ActionStart  Action = "start"
	ActionResume Action = "resume"
	ActionStop   Action = "stop"

	// Input actions
	ActionApply     Action = "apply"      // enter - apply the focused field
	ActionNextField Action = "next_field" // tab
	ActionPrevField Action = "prev_field" // shift+tab

	// Volume
	ActionVolumeUp   Action = "volume_up"
	ActionVolumeDown Action = "volume_down"
)
