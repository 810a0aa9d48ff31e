package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jask/msgdesk/internal/compose"
	"github.com/jask/msgdesk/internal/database"
	"github.com/jask/msgdesk/internal/database/repository"
	"github.com/jask/msgdesk/internal/gateway"
)

// MessageSender is the gateway call the submitter needs.
type MessageSender interface {
	SendMessage(ctx context.Context, p compose.Payload) error
}

// SubmissionRecorder stores the outcome of each attempt. Optional.
type SubmissionRecorder interface {
	Record(ctx context.Context, s repository.Submission) error
}

// MessageSubmitter turns a draft into exactly one send-message request and
// classifies the result.
type MessageSubmitter struct {
	Gateway MessageSender
	Journal SubmissionRecorder
	Log     zerolog.Logger
	Now     func() time.Time
}

// Submit sends d under the given submission id (a new one when empty). The
// caller validates the draft and serialises calls.
func (s *MessageSubmitter) Submit(ctx context.Context, id string, d compose.Draft) compose.Outcome {
	if id == "" {
		id = uuid.NewString()
	}
	payload := compose.NewPayload(d)
	started := s.now()

	var outcome compose.Outcome
	err := s.Gateway.SendMessage(ctx, payload)
	var rej *gateway.RejectionError
	switch {
	case err == nil:
		outcome = compose.Success()
	case errors.As(err, &rej):
		outcome = compose.Rejected(rej.Reason)
	default:
		outcome = compose.TransportFailure()
	}

	log := s.Log.With().Str("submission", id).Str("selected_option", payload.SelectedOption).Logger()
	if outcome.Succeeded() {
		log.Info().Msg("message submitted")
	} else {
		log.Warn().Err(err).Str("kind", string(outcome.Kind)).Msg("message submission failed")
	}

	s.record(ctx, id, payload, outcome, started)
	return outcome
}

func (s *MessageSubmitter) record(ctx context.Context, id string, p compose.Payload, o compose.Outcome, started time.Time) {
	if s.Journal == nil {
		return
	}
	row := repository.Submission{
		ID:             id,
		FromNumber:     p.FromPhoneNumber,
		ToNumber:       p.ToPhoneNumber,
		MessageType:    p.MessageType,
		Subject:        p.Subject,
		SelectedOption: p.SelectedOption,
		Outcome:        outcomeColumn(o),
		Reason:         o.Reason,
		SubmittedAt:    started,
		CompletedAt:    s.now(),
	}
	// a cancelled send context must not lose the log row
	ctx = context.WithoutCancel(ctx)
	if err := s.Journal.Record(ctx, row); err != nil {
		s.Log.Error().Err(err).Str("submission", id).Msg("submission log write failed")
	}
}

func (s *MessageSubmitter) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return database.Now()
}

func outcomeColumn(o compose.Outcome) string {
	switch o.Kind {
	case compose.FailureRejected:
		return repository.OutcomeRejected
	case compose.FailureTransport:
		return repository.OutcomeTransport
	}
	return repository.OutcomeSucceeded
}
