package tui

import (
	"context"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jask/msgdesk/internal/compose"
	"github.com/jask/msgdesk/internal/form"
	"github.com/jask/msgdesk/internal/service"
)

const maxSenderOptions = 5

// DirectoryFetcher loads the sender directory once.
type DirectoryFetcher interface {
	Fetch(ctx context.Context) service.DirectoryResult
}

type Services struct {
	Directory DirectoryFetcher
	Submitter form.Submitter
}

// App is the composition view. All form state lives in the controller; the
// widgets only hold what is being typed.
type App struct {
	ctx      context.Context
	form     *form.Controller
	services Services
	log      zerolog.Logger

	focus   focusField
	from    textinput.Model
	to      textinput.Model
	subject textarea.Model
	pick    int

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	width    int
	height   int
	quitting bool
}

type focusField int

const (
	focusFrom focusField = iota
	focusTo
	focusType
	focusSubject
	focusSMS
	focusWhatsApp
	focusSubmit
	focusCount
)

func New(ctx context.Context, f *form.Controller, services Services, log zerolog.Logger) *App {
	d := f.State().Draft

	from := newInput("+18001112222")
	to := newInput("+18001112222")
	to.SetValue(d.ToNumber)

	subject := textarea.New()
	subject.Placeholder = "Put test message subject here"
	subject.ShowLineNumbers = false
	subject.SetHeight(3)
	subject.SetWidth(48)
	subject.CharLimit = 1600
	subject.Cursor.SetMode(cursor.CursorStatic)
	subject.SetValue(d.Subject)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	a := &App{
		ctx:      ctx,
		form:     f,
		services: services,
		log:      log.With().Str("component", "tui").Logger(),
		from:     from,
		to:       to,
		subject:  subject,
		spinner:  sp,
		help:     help.New(),
		keys:     defaultKeys(),
	}
	a.setFocus(focusFrom)
	return a
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 32
	ti.Width = 24
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func (a *App) Init() tea.Cmd {
	return a.fetchSendersCmd()
}

func (a *App) fetchSendersCmd() tea.Cmd {
	return func() tea.Msg {
		return senderListMsg(a.services.Directory.Fetch(a.ctx))
	}
}

func (a *App) submitCmd(t form.Ticket) tea.Cmd {
	return func() tea.Msg {
		out := a.services.Submitter.Submit(a.ctx, t.ID.String(), t.Draft)
		return submitResultMsg{ID: t.ID, Outcome: out}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		a.help.Width = m.Width
	case senderListMsg:
		if err := a.form.ApplyDirectory(service.DirectoryResult(m)); err != nil {
			a.log.Debug().Err(err).Msg("directory result dropped")
			return a, nil
		}
		a.syncSender()
	case submitResultMsg:
		if err := a.form.Complete(m.ID, m.Outcome); err != nil {
			a.log.Debug().Err(err).Msg("submission result dropped")
		}
	case spinner.TickMsg:
		if !a.form.Sending() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	case tea.KeyMsg:
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		a.form.Close()
		a.quitting = true
		return a, tea.Quit
	case key.Matches(m, a.keys.Submit):
		return a, a.submit()
	case key.Matches(m, a.keys.Next):
		a.setFocus(a.focus + 1)
		return a, nil
	case key.Matches(m, a.keys.Prev):
		a.setFocus(a.focus - 1)
		return a, nil
	}

	switch a.focus {
	case focusFrom:
		return a.handleFromKey(m)
	case focusTo:
		var cmd tea.Cmd
		a.to, cmd = a.to.Update(m)
		a.update(compose.FieldTo, a.to.Value())
		return a, cmd
	case focusType:
		switch {
		case key.Matches(m, a.keys.Left):
			a.cycleMessageType(-1)
		case key.Matches(m, a.keys.Right), key.Matches(m, a.keys.Toggle), key.Matches(m, a.keys.Pick):
			a.cycleMessageType(1)
		}
	case focusSubject:
		var cmd tea.Cmd
		a.subject, cmd = a.subject.Update(m)
		a.update(compose.FieldSubject, a.subject.Value())
		return a, cmd
	case focusSMS, focusWhatsApp:
		if key.Matches(m, a.keys.Toggle) || key.Matches(m, a.keys.Pick) {
			ch := compose.ChannelSMS
			if a.focus == focusWhatsApp {
				ch = compose.ChannelWhatsApp
			}
			if err := a.form.ToggleChannel(ch); err != nil {
				a.log.Debug().Err(err).Msg("toggle ignored")
			}
		}
	case focusSubmit:
		if key.Matches(m, a.keys.Pick) || key.Matches(m, a.keys.Toggle) {
			return a, a.submit()
		}
	}
	return a, nil
}

// handleFromKey filters the directory by what was typed. Only a directory
// number ever reaches the draft.
func (a *App) handleFromKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	opts := a.senderOptions()
	switch {
	case key.Matches(m, a.keys.Up):
		if a.pick > 0 {
			a.pick--
		}
		return a, nil
	case key.Matches(m, a.keys.Down):
		if a.pick < len(opts)-1 {
			a.pick++
		}
		return a, nil
	case key.Matches(m, a.keys.Pick):
		if len(opts) == 0 {
			return a, nil
		}
		a.from.SetValue(opts[a.pick])
		a.from.CursorEnd()
		a.pick = 0
		a.syncSender()
		a.setFocus(focusTo)
		return a, nil
	}
	var cmd tea.Cmd
	a.from, cmd = a.from.Update(m)
	a.pick = 0
	a.syncSender()
	return a, cmd
}

func (a *App) submit() tea.Cmd {
	t, err := a.form.BeginSubmit()
	if err != nil {
		a.log.Debug().Err(err).Msg("submit not started")
		return nil
	}
	return tea.Batch(a.spinner.Tick, a.submitCmd(t))
}

// syncSender puts the typed From value into the draft when it names a
// directory number and clears the draft's sender otherwise.
func (a *App) syncSender() {
	v := strings.TrimSpace(a.from.Value())
	if !compose.ContainsSender(a.form.State().Senders, v) {
		v = ""
	}
	a.update(compose.FieldFrom, v)
}

func (a *App) update(f compose.Field, value string) {
	if err := a.form.UpdateField(f, value); err != nil {
		a.log.Debug().Err(err).Str("field", string(f)).Msg("edit ignored")
	}
}

func (a *App) cycleMessageType(step int) {
	cur := a.form.State().Draft.MessageType
	i := slices.Index(compose.MessageTypes, cur)
	n := len(compose.MessageTypes)
	next := compose.MessageTypes[((i+step)%n+n)%n]
	a.update(compose.FieldMessageType, string(next))
}

func (a *App) senderOptions() []string {
	opts := a.form.Snapshot().SenderOptions(a.from.Value())
	if len(opts) > maxSenderOptions {
		opts = opts[:maxSenderOptions]
	}
	return opts
}

func (a *App) setFocus(f focusField) {
	a.focus = (f%focusCount + focusCount) % focusCount
	a.from.Blur()
	a.to.Blur()
	a.subject.Blur()
	switch a.focus {
	case focusFrom:
		a.from.Focus()
	case focusTo:
		a.to.Focus()
	case focusSubject:
		a.subject.Focus()
	}
}

type senderListMsg service.DirectoryResult

type submitResultMsg struct {
	ID      uuid.UUID
	Outcome compose.Outcome
}
