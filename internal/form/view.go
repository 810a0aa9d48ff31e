package form

import (
	"github.com/jask/msgdesk/internal/compose"
	"github.com/jask/msgdesk/internal/notify"
)

// View is the render-ready projection of State.
type View struct {
	Draft         compose.Draft
	ChannelValue  string
	Errors        compose.ValidationErrors
	Senders       []string
	Directory     DirectoryStatus
	SubmitLabel   string
	SubmitEnabled bool
	Sending       bool
	Notice        *notify.Notification
}

// Snapshot projects the current state for rendering.
func (c *Controller) Snapshot() View {
	s := c.State()
	v := View{
		Draft:         s.Draft,
		ChannelValue:  compose.Derive(s.Draft.Channels),
		Errors:        s.Errors,
		Senders:       s.Senders,
		Directory:     s.Directory,
		SubmitLabel:   LabelSubmit,
		SubmitEnabled: !c.closed && s.Phase != PhaseSending,
		Sending:       s.Phase == PhaseSending,
		Notice:        s.Notice,
	}
	if v.Sending {
		v.SubmitLabel = LabelSending
	}
	return v
}

// FieldError returns the error shown next to f, or "".
func (v View) FieldError(f compose.Field) string {
	return v.Errors[f]
}

// SenderOptions returns what the From field can offer for query. It is empty
// until the directory resolves.
func (v View) SenderOptions(query string) []string {
	if v.Directory != DirectoryReady {
		return nil
	}
	return compose.RankSenders(query, v.Senders)
}
