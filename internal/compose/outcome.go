package compose

// FailureKind tells a backend rejection apart from a transport failure.
type FailureKind string

const (
	FailureNone      FailureKind = ""
	FailureRejected  FailureKind = "rejected"
	FailureTransport FailureKind = "transport"
)

// GenericSendError is the reason recorded for transport failures.
const GenericSendError = "generic send error"

// Outcome is the terminal result of one submission.
type Outcome struct {
	Kind   FailureKind `json:"kind,omitempty"`
	Reason string      `json:"reason,omitempty"`
}

func Success() Outcome { return Outcome{} }

// Rejected is a failure reported by the backend with its own message.
func Rejected(reason string) Outcome {
	return Outcome{Kind: FailureRejected, Reason: reason}
}

// TransportFailure hides technical detail behind GenericSendError.
func TransportFailure() Outcome {
	return Outcome{Kind: FailureTransport, Reason: GenericSendError}
}

func (o Outcome) Succeeded() bool { return o.Kind == FailureNone }

func (o Outcome) String() string {
	if o.Succeeded() {
		return "success"
	}
	return string(o.Kind) + ": " + o.Reason
}
