// Package notify delivers user-visible notifications about directory and
// submission results.
package notify

import (
	"github.com/gen2brain/beeep"
	"github.com/rs/zerolog"
)

// Level is the severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one user-visible message.
type Notification struct {
	Level   Level  `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (n Notification) IsError() bool { return n.Level == LevelError }

// Notifier receives notifications. Implementations must not block for long;
// the TUI calls them from its update loop.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Multi fans a notification out to every non-nil notifier.
type Multi []Notifier

func (m Multi) Notify(n Notification) {
	for _, x := range m {
		if x != nil {
			x.Notify(n)
		}
	}
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	Log zerolog.Logger
}

func (l LogNotifier) Notify(n Notification) {
	ev := l.Log.Info()
	if n.IsError() {
		ev = l.Log.Warn()
	}
	ev.Str("title", n.Title).Str("level", string(n.Level)).Msg(n.Message)
}

// DesktopNotifier raises an OS notification through beeep.
type DesktopNotifier struct {
	AppName string
	Log     zerolog.Logger

	notify func(title, message string, icon any) error
}

func NewDesktopNotifier(appName string, log zerolog.Logger) *DesktopNotifier {
	return &DesktopNotifier{AppName: appName, Log: log, notify: beeep.Notify}
}

func (d *DesktopNotifier) Notify(n Notification) {
	title := n.Title
	if title == "" {
		title = d.AppName
	}
	if err := d.notify(title, n.Message, ""); err != nil {
		d.Log.Debug().Err(err).Msg("desktop notification failed")
	}
}
