package compose

import (
	"fmt"
	"strings"
)

// MessageType selects the gateway's message template.
type MessageType string

const (
	MessageIntroductory   MessageType = "Introductory Message"
	MessagePhraseOfTheDay MessageType = "Phrase of the Day"
)

// MessageTypes lists the selectable templates in display order.
var MessageTypes = []MessageType{MessageIntroductory, MessagePhraseOfTheDay}

// ParseMessageType accepts the display name, case-insensitively.
func ParseMessageType(s string) (MessageType, error) {
	s = strings.TrimSpace(s)
	for _, mt := range MessageTypes {
		if strings.EqualFold(s, string(mt)) {
			return mt, nil
		}
	}
	return "", fmt.Errorf("unknown message type %q", s)
}

// Field names a draft field. The values double as payload/error keys.
type Field string

const (
	FieldFrom        Field = "fromPhoneNumber"
	FieldTo          Field = "toPhoneNumber"
	FieldMessageType Field = "messageType"
	FieldSubject     Field = "subject"
	FieldChannels    Field = "selectedOption"
)

// Fields is the validation and display order.
var Fields = []Field{FieldFrom, FieldTo, FieldMessageType, FieldSubject, FieldChannels}

func (f Field) Label() string {
	switch f {
	case FieldFrom:
		return "From Phone Number"
	case FieldTo:
		return "To Phone Number"
	case FieldMessageType:
		return "Text Message Options"
	case FieldSubject:
		return "Subject of Message"
	case FieldChannels:
		return "Channels"
	}
	return string(f)
}

// Draft is a message composition before submission.
type Draft struct {
	FromNumber  string      `json:"fromPhoneNumber"`
	ToNumber    string      `json:"toPhoneNumber"`
	MessageType MessageType `json:"messageType"`
	Subject     string      `json:"subject"`
	Channels    ChannelSet  `json:"channels"`
}

// NewDraft returns an empty draft with the default template.
func NewDraft() Draft {
	return Draft{MessageType: MessageIntroductory}
}

// With returns a copy of d with a text field replaced. Channels are changed
// through Toggle, not here.
func (d Draft) With(f Field, value string) (Draft, error) {
	switch f {
	case FieldFrom:
		d.FromNumber = value
	case FieldTo:
		d.ToNumber = value
	case FieldMessageType:
		d.MessageType = MessageType(value)
	case FieldSubject:
		d.Subject = value
	default:
		return d, fmt.Errorf("field %q is not a text field", f)
	}
	return d, nil
}

// Value reads a field back as text.
func (d Draft) Value(f Field) string {
	switch f {
	case FieldFrom:
		return d.FromNumber
	case FieldTo:
		return d.ToNumber
	case FieldMessageType:
		return string(d.MessageType)
	case FieldSubject:
		return d.Subject
	case FieldChannels:
		return Derive(d.Channels)
	}
	return ""
}
