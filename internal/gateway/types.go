package gateway

// envelope is the common {success, error} response shape.
type envelope struct {
	Success *bool  `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (e envelope) ok() bool { return e.Success != nil && *e.Success }

// PhoneNumber is one entry of GET /get-phone-numbers.
type PhoneNumber struct {
	PhoneNumber string `json:"phoneNumber"`
}

type phoneNumbersResponse struct {
	envelope
	PhoneNumbers []PhoneNumber `json:"phoneNumbers,omitempty"`
}

type sendMessageResponse struct {
	envelope
}
