package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "session", "input"
}

// All contains all key bindings, used for dispatch and help generation.
var All = []Binding{
	// Global
	{ActionQuit, []string{"ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"ctrl+h", "f1"}, "Toggle help", "global"},

	// Session
	{ActionStart, []string{"ctrl+s"}, "Start session (elapsed reset)", "session"},
	{ActionResume, []string{"ctrl+r"}, "Resume session", "session"},
	{ActionStop, []string{"ctrl+x"}, "Stop session", "session"},
	{ActionVolumeUp, []string{"ctrl+up"}, "Volume up", "session"},
	{ActionVolumeDown, []string{"ctrl+down"}, "Volume down", "session"},

	// Input fields
	{ActionApply, []string{"enter"}, "Apply field", "input"},
	{ActionNextField, []string{"tab", "down"}, "Next field", "input"},
	{ActionPrevField, []string{"shift+tab", "up"}, "Previous field", "input"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
