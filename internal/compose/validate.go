package compose

// ValidationErrors maps every field to its error message, "" when the field is fine.
type ValidationErrors map[Field]string

const (
	ErrFromRequired     = "From phone number is required."
	ErrToRequired       = "To phone number is required."
	ErrTypeRequired     = "Message type is required."
	ErrSubjectRequired  = "Subject is required."
	ErrChannelsRequired = "Please select at least one message type (SMS or WhatsApp)."
)

// Validate checks each required field independently. The result always holds
// an entry for every field in Fields.
func Validate(d Draft) ValidationErrors {
	errs := ValidationErrors{
		FieldFrom:        required(d.FromNumber != "", ErrFromRequired),
		FieldTo:          required(d.ToNumber != "", ErrToRequired),
		FieldMessageType: required(d.MessageType != "", ErrTypeRequired),
		FieldSubject:     required(d.Subject != "", ErrSubjectRequired),
		FieldChannels:    required(!d.Channels.Empty(), ErrChannelsRequired),
	}
	return errs
}

// Valid reports whether every message is empty.
func (e ValidationErrors) Valid() bool {
	for _, msg := range e {
		if msg != "" {
			return false
		}
	}
	return true
}

// Messages returns the non-empty messages in field order.
func (e ValidationErrors) Messages() []string {
	var out []string
	for _, f := range Fields {
		if msg := e[f]; msg != "" {
			out = append(out, msg)
		}
	}
	return out
}

func required(ok bool, msg string) string {
	if ok {
		return ""
	}
	return msg
}
