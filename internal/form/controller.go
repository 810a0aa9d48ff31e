// Package form holds the composition form state machine. It is driven from a
// single goroutine (the bubbletea update loop or a CLI command) and carries no
// locks; network calls happen outside it and report back through Complete and
// ApplyDirectory.
package form

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jask/msgdesk/internal/compose"
	"github.com/jask/msgdesk/internal/notify"
	"github.com/jask/msgdesk/internal/service"
)

var (
	// ErrClosed is returned once the form has been torn down.
	ErrClosed = errors.New("form closed")
	// ErrBusy is returned by BeginSubmit while a submission is in flight.
	ErrBusy = errors.New("submission in flight")
	// ErrInvalid is returned by BeginSubmit when the draft has field errors.
	ErrInvalid = errors.New("draft has validation errors")
	// ErrStaleTicket is returned by Complete for a ticket the form did not issue
	// or already settled.
	ErrStaleTicket = errors.New("unknown submission ticket")
	// ErrUnknownSender is returned when the from number is not in the directory.
	ErrUnknownSender = errors.New("sender not in directory")
	// ErrUnknownMessageType is returned for a message type outside
	// compose.MessageTypes.
	ErrUnknownMessageType = errors.New("unknown message type")
)

const (
	noticeSent          = "Message sent successfully!"
	noticeSendRejected  = "Error sending message: "
	noticeSendTransport = "An error occurred while sending the message"

	LabelSubmit  = "Send Text Message"
	LabelSending = "Sending..."
)

// Phase is where the form is in its submit lifecycle. Validation is
// synchronous inside BeginSubmit so it never shows up as a resting phase.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseSending Phase = "sending"
)

// DirectoryStatus tracks the one-shot sender directory fetch.
type DirectoryStatus string

const (
	DirectoryLoading DirectoryStatus = "loading"
	DirectoryReady   DirectoryStatus = "ready"
	DirectoryFailed  DirectoryStatus = "failed"
)

// State is everything the form owns. It is plain data so tests and the CLI can
// inspect it directly.
type State struct {
	Draft     compose.Draft            `json:"draft"`
	Errors    compose.ValidationErrors `json:"errors,omitempty"`
	Senders   []string                 `json:"senders"`
	Directory DirectoryStatus          `json:"directory"`
	Phase     Phase                    `json:"phase"`
	// Last is the outcome of the most recent completed submission.
	Last   *compose.Outcome      `json:"last,omitempty"`
	Notice *notify.Notification `json:"notice,omitempty"`
}

// Ticket identifies one in-flight submission and carries the draft as it was
// when the submission began.
type Ticket struct {
	ID    uuid.UUID
	Draft compose.Draft
}

func (t Ticket) Payload() compose.Payload { return compose.NewPayload(t.Draft) }

// Submitter performs the network part of a submission.
type Submitter interface {
	Submit(ctx context.Context, id string, d compose.Draft) compose.Outcome
}

// Controller coordinates draft edits, validation, directory results and
// submission outcomes.
type Controller struct {
	state    State
	inflight uuid.UUID
	closed   bool

	notifier notify.Notifier
	log      zerolog.Logger
}

// New starts a form on draft with the directory still loading. notifier may be
// nil.
func New(draft compose.Draft, notifier notify.Notifier, log zerolog.Logger) *Controller {
	return &Controller{
		state: State{
			Draft:     draft,
			Senders:   []string{},
			Directory: DirectoryLoading,
			Phase:     PhaseIdle,
		},
		notifier: notifier,
		log:      log,
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	s := c.state
	s.Senders = slices.Clone(c.state.Senders)
	if c.state.Errors != nil {
		s.Errors = make(compose.ValidationErrors, len(c.state.Errors))
		for k, v := range c.state.Errors {
			s.Errors[k] = v
		}
	}
	return s
}

func (c *Controller) Closed() bool { return c.closed }

func (c *Controller) Sending() bool { return c.state.Phase == PhaseSending }

// ToggleChannel flips ch in the draft's channel set.
func (c *Controller) ToggleChannel(ch compose.Channel) error {
	if c.closed {
		return ErrClosed
	}
	c.state.Draft.Channels = compose.Toggle(c.state.Draft.Channels, ch)
	return nil
}

// UpdateField sets a text field. The from number must be empty or one of the
// directory's senders, and the message type must be empty or one of
// compose.MessageTypes (stored in its canonical spelling). Edits are allowed
// while sending; the in-flight ticket keeps its own copy of the draft.
func (c *Controller) UpdateField(f compose.Field, value string) error {
	if c.closed {
		return ErrClosed
	}
	switch {
	case f == compose.FieldFrom && value != "" && !compose.ContainsSender(c.state.Senders, value):
		return ErrUnknownSender
	case f == compose.FieldMessageType && value != "":
		mt, err := compose.ParseMessageType(value)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrUnknownMessageType, value)
		}
		value = string(mt)
	}
	d, err := c.state.Draft.With(f, value)
	if err != nil {
		return err
	}
	c.state.Draft = d
	return nil
}

// ApplyDirectory stores the result of the sender directory fetch. A failure
// leaves the sender list empty and raises its notice; the rest of the form
// keeps working.
func (c *Controller) ApplyDirectory(r service.DirectoryResult) error {
	if c.closed {
		return ErrClosed
	}
	if r.Failed() {
		c.state.Senders = []string{}
		c.state.Directory = DirectoryFailed
	} else {
		c.state.Senders = slices.Clone(r.Senders)
		if c.state.Senders == nil {
			c.state.Senders = []string{}
		}
		c.state.Directory = DirectoryReady
	}
	if from := c.state.Draft.FromNumber; from != "" && !compose.ContainsSender(c.state.Senders, from) {
		c.state.Draft.FromNumber = ""
	}
	if r.Notice != nil {
		c.raise(*r.Notice)
	}
	return nil
}

// BeginSubmit validates the draft and, when it is clean, moves the form into
// the sending phase and hands back the ticket to send. Field errors are
// recomputed on every attempt.
func (c *Controller) BeginSubmit() (Ticket, error) {
	if c.closed {
		return Ticket{}, ErrClosed
	}
	if c.state.Phase == PhaseSending {
		return Ticket{}, ErrBusy
	}
	errs := compose.Validate(c.state.Draft)
	c.state.Errors = errs
	if !errs.Valid() {
		return Ticket{}, ErrInvalid
	}
	t := Ticket{ID: uuid.New(), Draft: c.state.Draft}
	c.inflight = t.ID
	c.state.Phase = PhaseSending
	c.log.Debug().Str("ticket", t.ID.String()).Msg("submission started")
	return t, nil
}

// Complete settles the in-flight ticket. Every outcome returns the form to
// idle and raises exactly one notice. Results for any other ticket, or after
// Close, are dropped.
func (c *Controller) Complete(id uuid.UUID, o compose.Outcome) error {
	if c.closed {
		c.log.Debug().Str("ticket", id.String()).Msg("dropping result for closed form")
		return ErrClosed
	}
	if c.inflight == uuid.Nil || id != c.inflight {
		c.log.Debug().Str("ticket", id.String()).Msg("dropping stale result")
		return ErrStaleTicket
	}
	c.inflight = uuid.Nil
	c.state.Phase = PhaseIdle
	c.state.Last = &o
	c.raise(outcomeNotice(o))
	return nil
}

// Submit runs one full submission synchronously: BeginSubmit, s.Submit,
// Complete.
func (c *Controller) Submit(ctx context.Context, s Submitter) (compose.Outcome, error) {
	t, err := c.BeginSubmit()
	if err != nil {
		return compose.Outcome{}, err
	}
	o := s.Submit(ctx, t.ID.String(), t.Draft)
	if err := c.Complete(t.ID, o); err != nil {
		return o, err
	}
	return o, nil
}

// Close tears the form down. Later results are discarded.
func (c *Controller) Close() {
	c.closed = true
	c.inflight = uuid.Nil
}

func (c *Controller) raise(n notify.Notification) {
	c.state.Notice = &n
	if c.notifier != nil {
		c.notifier.Notify(n)
	}
}

func outcomeNotice(o compose.Outcome) notify.Notification {
	switch o.Kind {
	case compose.FailureNone:
		return notify.Notification{Level: notify.LevelSuccess, Title: "Message sent", Message: noticeSent}
	case compose.FailureRejected:
		return notify.Notification{Level: notify.LevelError, Title: "Send failed", Message: noticeSendRejected + o.Reason}
	default:
		return notify.Notification{Level: notify.LevelError, Title: "Send failed", Message: noticeSendTransport}
	}
}
