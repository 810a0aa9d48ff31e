package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/msgdesk/internal/compose"
	"github.com/jask/msgdesk/internal/form"
)

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	v := a.form.Snapshot()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Messaging Setup"))
	b.WriteString("\n\n")

	b.WriteString(a.label(focusFrom, compose.FieldFrom.Label()))
	b.WriteString("\n")
	b.WriteString(a.from.View())
	b.WriteString("\n")
	b.WriteString(a.renderSenderOptions(v))
	b.WriteString(renderFieldError(v, compose.FieldFrom))

	b.WriteString(a.label(focusTo, compose.FieldTo.Label()))
	b.WriteString("\n")
	b.WriteString(a.to.View())
	b.WriteString("\n")
	b.WriteString(renderFieldError(v, compose.FieldTo))

	b.WriteString(a.label(focusType, compose.FieldMessageType.Label()))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render("‹ " + string(v.Draft.MessageType) + " ›"))
	b.WriteString("\n")
	b.WriteString(renderFieldError(v, compose.FieldMessageType))

	b.WriteString(a.label(focusSubject, compose.FieldSubject.Label()))
	b.WriteString("\n")
	b.WriteString(a.subject.View())
	b.WriteString("\n")
	b.WriteString(renderFieldError(v, compose.FieldSubject))

	b.WriteString(a.renderChannel(focusSMS, compose.ChannelSMS, v))
	b.WriteString(a.renderChannel(focusWhatsApp, compose.ChannelWhatsApp, v))
	b.WriteString(renderFieldError(v, compose.FieldChannels))

	b.WriteString("\n")
	b.WriteString(a.renderSubmit(v))
	b.WriteString("\n")
	if n := v.Notice; n != nil {
		b.WriteString("\n")
		if n.IsError() {
			b.WriteString(errorStyle.Render(n.Message))
		} else {
			b.WriteString(successStyle.Render(n.Message))
		}
		b.WriteString("\n")
	}

	body := panelStyle.Render(b.String())
	return lipgloss.JoinVertical(lipgloss.Left, body, a.help.View(a.keys))
}

func (a *App) label(f focusField, text string) string {
	if a.focus == f {
		return focusLabel.Render("› " + text)
	}
	return labelStyle.Render("  " + text)
}

func (a *App) renderSenderOptions(v form.View) string {
	switch v.Directory {
	case form.DirectoryLoading:
		return mutedStyle.Render("loading phone numbers...") + "\n"
	case form.DirectoryFailed:
		return mutedStyle.Render("no phone numbers available") + "\n"
	}
	if v.Draft.FromNumber != "" && a.focus != focusFrom {
		return ""
	}
	opts := a.senderOptions()
	if len(opts) == 0 {
		return mutedStyle.Render("no matching phone numbers") + "\n"
	}
	var b strings.Builder
	for i, n := range opts {
		if a.focus == focusFrom && i == a.pick {
			b.WriteString(cursorStyle.Render("> " + n))
		} else {
			b.WriteString(mutedStyle.Render("  " + n))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) renderChannel(f focusField, ch compose.Channel, v form.View) string {
	box := "[ ] "
	if v.Draft.Channels.Has(ch) {
		box = "[x] "
	}
	return a.label(f, box+ch.Label()) + "\n"
}

func (a *App) renderSubmit(v form.View) string {
	switch {
	case v.Sending:
		return a.spinner.View() + " " + buttonDisabled.Render(v.SubmitLabel)
	case !v.SubmitEnabled:
		return buttonDisabled.Render(v.SubmitLabel)
	case a.focus == focusSubmit:
		return buttonFocus.Render(v.SubmitLabel)
	}
	return buttonStyle.Render(v.SubmitLabel)
}

func renderFieldError(v form.View, f compose.Field) string {
	msg := v.FieldError(f)
	if msg == "" {
		return "\n"
	}
	return fieldErrStyle.Render(msg) + "\n\n"
}
