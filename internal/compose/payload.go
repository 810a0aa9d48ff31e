package compose

// Payload is the POST /send-message request body.
type Payload struct {
	FromPhoneNumber string `json:"fromPhoneNumber" yaml:"from"`
	ToPhoneNumber   string `json:"toPhoneNumber" yaml:"to"`
	MessageType     string `json:"messageType" yaml:"message_type"`
	Subject         string `json:"subject" yaml:"subject"`
	SelectedOption  string `json:"selectedOption" yaml:"selected_option"`
}

// NewPayload builds the wire payload. SelectedOption is always derived from
// the draft's channel set.
func NewPayload(d Draft) Payload {
	return Payload{
		FromPhoneNumber: d.FromNumber,
		ToPhoneNumber:   d.ToNumber,
		MessageType:     string(d.MessageType),
		Subject:         d.Subject,
		SelectedOption:  Derive(d.Channels),
	}
}
