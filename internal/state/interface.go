package state

// Interface is the settings store as the UI sees it.
type Interface interface {
	Settings() (*Settings, error)
	SaveSettings(s Settings) error
	ScheduleSave(s Settings)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
