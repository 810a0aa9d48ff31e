package notify

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	got []Notification
}

func (r *recorder) Notify(n Notification) { r.got = append(r.got, n) }

func TestMultiSkipsNil(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	m := Multi{a, nil, b}
	n := Notification{Level: LevelSuccess, Message: "Message sent successfully!"}
	m.Notify(n)
	require.Equal(t, []Notification{n}, a.got)
	require.Equal(t, []Notification{n}, b.got)
}

func TestLogNotifierLevels(t *testing.T) {
	var buf bytes.Buffer
	l := LogNotifier{Log: zerolog.New(&buf)}
	l.Notify(Notification{Level: LevelError, Message: "Error sending message: invalid number"})
	require.Contains(t, buf.String(), `"level":"warn"`)
	require.Contains(t, buf.String(), "invalid number")
}

func TestDesktopNotifierUsesAppNameWhenUntitled(t *testing.T) {
	var titles []string
	d := &DesktopNotifier{
		AppName: "msgdesk",
		Log:     zerolog.Nop(),
		notify: func(title, message string, icon any) error {
			titles = append(titles, title)
			return errors.New("no dbus")
		},
	}
	d.Notify(Notification{Message: "hi"})
	d.Notify(Notification{Title: "Send", Message: "hi"})
	require.Equal(t, []string{"msgdesk", "Send"}, titles)
}

func TestNotifierFunc(t *testing.T) {
	var got Notification
	NotifierFunc(func(n Notification) { got = n }).Notify(Notification{Message: "x"})
	require.Equal(t, "x", got.Message)
}
