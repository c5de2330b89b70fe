// Package notify announces session phases as desktop notifications.
package notify

// Urgency is the freedesktop notification urgency hint.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Freedesktop icon names shown next to each notification.
const (
	IconClass = "alarm-symbolic"
	IconRest  = "weather-clear-symbolic"
	IconError = "dialog-error-symbolic"
)

// Notification is one desktop notification.
type Notification struct {
	Title      string
	Body       string
	Icon       string
	Timeout    int32 // ms; -1 lets the server decide, 0 never expires
	ReplacesID uint32
	Urgency    Urgency
}

// Notifier sends desktop notifications. Notify returns the server's id for
// the notification, or 0 when notifications are unavailable.
type Notifier interface {
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// nopNotifier drops everything. It stands in when no notification server
// can be reached.
type nopNotifier struct{}

func (nopNotifier) Notify(Notification) (uint32, error) { return 0, nil }

func (nopNotifier) Close(uint32) error { return nil }
