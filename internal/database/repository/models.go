package repository

import "time"

// Submission outcomes as stored.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeRejected  = "rejected"
	OutcomeTransport = "transport"
)

// Submission is one row of the submission log.
type Submission struct {
	ID             string    `json:"id" yaml:"id"`
	FromNumber     string    `json:"fromPhoneNumber" yaml:"from"`
	ToNumber       string    `json:"toPhoneNumber" yaml:"to"`
	MessageType    string    `json:"messageType" yaml:"message_type"`
	Subject        string    `json:"subject" yaml:"subject"`
	SelectedOption string    `json:"selectedOption" yaml:"selected_option"`
	Outcome        string    `json:"outcome" yaml:"outcome"`
	Reason         string    `json:"reason,omitempty" yaml:"reason,omitempty"`
	SubmittedAt    time.Time `json:"submittedAt" yaml:"submitted_at"`
	CompletedAt    time.Time `json:"completedAt" yaml:"completed_at"`
}
