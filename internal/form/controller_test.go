package form

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/msgdesk/internal/compose"
	"github.com/jask/msgdesk/internal/config"
	"github.com/jask/msgdesk/internal/gateway"
	"github.com/jask/msgdesk/internal/notify"
	"github.com/jask/msgdesk/internal/service"
)

type recorder struct{ got []notify.Notification }

func (r *recorder) Notify(n notify.Notification) { r.got = append(r.got, n) }

type fakeSubmitter struct {
	outcome compose.Outcome
	calls   int
	drafts  []compose.Draft
}

func (f *fakeSubmitter) Submit(ctx context.Context, id string, d compose.Draft) compose.Outcome {
	f.calls++
	f.drafts = append(f.drafts, d)
	return f.outcome
}

func newController(t *testing.T) (*Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	c := New(compose.NewDraft(), rec, zerolog.Nop())
	require.NoError(t, c.ApplyDirectory(service.DirectoryResult{Senders: []string{"+18001112222", "+18009998888"}}))
	return c, rec
}

func fill(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.UpdateField(compose.FieldFrom, "+18001112222"))
	require.NoError(t, c.UpdateField(compose.FieldTo, "+18002223333"))
	require.NoError(t, c.UpdateField(compose.FieldMessageType, string(compose.MessageIntroductory)))
	require.NoError(t, c.UpdateField(compose.FieldSubject, "hi"))
	require.NoError(t, c.ToggleChannel(compose.ChannelSMS))
}

// backend serves both endpoints and counts POSTs to /send-message.
func backend(t *testing.T, sendBody string, posts *atomic.Int32) *gateway.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/get-phone-numbers":
			_, _ = w.Write([]byte(`{"success":true,"phoneNumbers":[{"phoneNumber":"+18001112222"}]}`))
		case "/send-message":
			posts.Add(1)
			var p compose.Payload
			if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(sendBody))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return gateway.New(config.GatewayConfig{BaseURL: srv.URL}, zerolog.Nop())
}

func TestSubmitSuccessReturnsToIdle(t *testing.T) {
	t.Parallel()

	var posts atomic.Int32
	gw := backend(t, `{"success":true}`, &posts)
	c, rec := newController(t)
	fill(t, c)

	ticket, err := c.BeginSubmit()
	require.NoError(t, err)
	require.Equal(t, "sms", ticket.Payload().SelectedOption)
	require.Equal(t, LabelSending, c.Snapshot().SubmitLabel)
	require.False(t, c.Snapshot().SubmitEnabled)

	sub := &service.MessageSubmitter{Gateway: gw, Log: zerolog.Nop()}
	out := sub.Submit(context.Background(), ticket.ID.String(), ticket.Draft)
	require.NoError(t, c.Complete(ticket.ID, out))

	st := c.State()
	require.Equal(t, PhaseIdle, st.Phase)
	require.True(t, st.Errors.Valid())
	require.Len(t, rec.got, 1)
	require.Equal(t, notify.LevelSuccess, rec.got[0].Level)
	require.Equal(t, "Message sent successfully!", rec.got[0].Message)
	require.Equal(t, "hi", st.Draft.Subject, "fields are kept after success")
	require.EqualValues(t, 1, posts.Load())

	v := c.Snapshot()
	require.Equal(t, LabelSubmit, v.SubmitLabel)
	require.True(t, v.SubmitEnabled)
}

func TestSubmitRejectionNotifiesReason(t *testing.T) {
	t.Parallel()

	var posts atomic.Int32
	gw := backend(t, `{"success":false,"error":"invalid number"}`, &posts)
	c, rec := newController(t)
	fill(t, c)

	out, err := c.Submit(context.Background(), &service.MessageSubmitter{Gateway: gw, Log: zerolog.Nop()})
	require.NoError(t, err)
	require.Equal(t, compose.Rejected("invalid number"), out)
	require.Equal(t, PhaseIdle, c.State().Phase)
	require.Len(t, rec.got, 1)
	require.True(t, rec.got[0].IsError())
	require.Contains(t, rec.got[0].Message, "invalid number")
}

func TestSubmitTransportFailureIsGeneric(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	gw := gateway.New(config.GatewayConfig{BaseURL: url}, zerolog.Nop())

	c, rec := newController(t)
	fill(t, c)
	out, err := c.Submit(context.Background(), &service.MessageSubmitter{Gateway: gw, Log: zerolog.Nop()})
	require.NoError(t, err)
	require.Equal(t, compose.TransportFailure(), out)
	require.Equal(t, PhaseIdle, c.State().Phase)
	require.Len(t, rec.got, 1)
	require.Equal(t, "An error occurred while sending the message", rec.got[0].Message)
	require.True(t, c.Snapshot().SubmitEnabled)
}

func TestSecondSubmitWhileSendingIsIgnored(t *testing.T) {
	t.Parallel()

	var posts atomic.Int32
	arrived := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posts.Add(1)
		arrived <- struct{}{}
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() {
		select {
		case <-release:
		default:
			close(release)
		}
	})
	gw := gateway.New(config.GatewayConfig{BaseURL: srv.URL}, zerolog.Nop())

	c, rec := newController(t)
	fill(t, c)
	ticket, err := c.BeginSubmit()
	require.NoError(t, err)

	// the POST runs off the controller goroutine, as it does under the tui
	sub := &service.MessageSubmitter{Gateway: gw, Log: zerolog.Nop()}
	results := make(chan compose.Outcome, 1)
	go func() {
		results <- sub.Submit(context.Background(), ticket.ID.String(), ticket.Draft)
	}()

	<-arrived
	for i := 0; i < 5; i++ {
		_, err := c.BeginSubmit()
		require.ErrorIs(t, err, ErrBusy)
	}
	require.True(t, c.Sending())
	require.False(t, c.Snapshot().SubmitEnabled)
	require.EqualValues(t, 1, posts.Load())
	close(release)

	out := <-results
	require.True(t, out.Succeeded())
	require.NoError(t, c.Complete(ticket.ID, out))
	require.EqualValues(t, 1, posts.Load())
	require.Len(t, rec.got, 1)
	require.Equal(t, PhaseIdle, c.State().Phase)
}

func TestMessageTypeMustBeKnown(t *testing.T) {
	t.Parallel()

	c, _ := newController(t)
	before := c.State().Draft.MessageType

	err := c.UpdateField(compose.FieldMessageType, "Totally Bogus")
	require.ErrorIs(t, err, ErrUnknownMessageType)
	require.Equal(t, before, c.State().Draft.MessageType)

	require.NoError(t, c.UpdateField(compose.FieldMessageType, "phrase of the day"))
	require.Equal(t, compose.MessagePhraseOfTheDay, c.State().Draft.MessageType)

	fill(t, c)
	require.NoError(t, c.UpdateField(compose.FieldMessageType, ""))
	_, err = c.BeginSubmit()
	require.ErrorIs(t, err, ErrInvalid)
	require.Equal(t, compose.ErrTypeRequired, c.Snapshot().FieldError(compose.FieldMessageType))
}

func TestValidationStopsBeforeNetwork(t *testing.T) {
	t.Parallel()

	c, rec := newController(t)
	require.NoError(t, c.UpdateField(compose.FieldTo, "+18002223333"))
	sub := &fakeSubmitter{}

	_, err := c.Submit(context.Background(), sub)
	require.ErrorIs(t, err, ErrInvalid)
	require.Zero(t, sub.calls)
	require.Empty(t, rec.got)

	v := c.Snapshot()
	require.Equal(t, compose.ErrFromRequired, v.FieldError(compose.FieldFrom))
	require.Equal(t, "", v.FieldError(compose.FieldTo))
	require.Equal(t, compose.ErrSubjectRequired, v.FieldError(compose.FieldSubject))
	require.Equal(t, compose.ErrChannelsRequired, v.FieldError(compose.FieldChannels))
	require.True(t, v.SubmitEnabled)

	// errors are recomputed wholesale on the next attempt
	fill(t, c)
	sub.outcome = compose.Success()
	_, err = c.Submit(context.Background(), sub)
	require.NoError(t, err)
	require.True(t, c.State().Errors.Valid())
	require.Equal(t, 1, sub.calls)
}

func TestDirectoryFailureKeepsFormUsable(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	c := New(compose.NewDraft(), rec, zerolog.Nop())
	require.Equal(t, DirectoryLoading, c.Snapshot().Directory)
	require.Empty(t, c.Snapshot().SenderOptions(""))

	notice := notify.Notification{Level: notify.LevelError, Message: "An error occurred while fetching phone numbers"}
	require.NoError(t, c.ApplyDirectory(service.DirectoryResult{Err: errors.New("down"), Notice: &notice}))

	v := c.Snapshot()
	require.Equal(t, DirectoryFailed, v.Directory)
	require.Empty(t, v.Senders)
	require.Len(t, rec.got, 1)

	require.ErrorIs(t, c.UpdateField(compose.FieldFrom, "+18001112222"), ErrUnknownSender)
	require.NoError(t, c.UpdateField(compose.FieldTo, "+18002223333"))
	require.NoError(t, c.UpdateField(compose.FieldSubject, "hi"))
	require.NoError(t, c.ToggleChannel(compose.ChannelWhatsApp))

	_, err := c.BeginSubmit()
	require.ErrorIs(t, err, ErrInvalid)
	errs := c.State().Errors
	require.Equal(t, []string{compose.ErrFromRequired}, errs.Messages())
}

func TestApplyDirectoryDropsUnknownSender(t *testing.T) {
	t.Parallel()

	c, _ := newController(t)
	require.NoError(t, c.UpdateField(compose.FieldFrom, "+18009998888"))
	require.NoError(t, c.ApplyDirectory(service.DirectoryResult{Senders: []string{"+18001112222"}}))
	require.Equal(t, "", c.State().Draft.FromNumber)
}

func TestToggleChannelDerivesValue(t *testing.T) {
	t.Parallel()

	c, _ := newController(t)
	require.Equal(t, "", c.Snapshot().ChannelValue)
	require.NoError(t, c.ToggleChannel(compose.ChannelSMS))
	require.Equal(t, "sms", c.Snapshot().ChannelValue)
	require.NoError(t, c.ToggleChannel(compose.ChannelWhatsApp))
	require.Equal(t, "both", c.Snapshot().ChannelValue)
	require.NoError(t, c.ToggleChannel(compose.ChannelSMS))
	require.Equal(t, "whatsapp", c.Snapshot().ChannelValue)
}

func TestLateResultsAreDiscarded(t *testing.T) {
	t.Parallel()

	c, rec := newController(t)
	fill(t, c)
	ticket, err := c.BeginSubmit()
	require.NoError(t, err)

	require.ErrorIs(t, c.Complete(uuid.New(), compose.Success()), ErrStaleTicket)
	require.True(t, c.Sending())

	c.Close()
	require.ErrorIs(t, c.Complete(ticket.ID, compose.Success()), ErrClosed)
	require.ErrorIs(t, c.ApplyDirectory(service.DirectoryResult{Senders: []string{"x"}}), ErrClosed)
	require.ErrorIs(t, c.ToggleChannel(compose.ChannelSMS), ErrClosed)
	require.Empty(t, rec.got)
	require.False(t, c.Snapshot().SubmitEnabled)
}

func TestCompleteTwiceIsStale(t *testing.T) {
	t.Parallel()

	c, rec := newController(t)
	fill(t, c)
	ticket, err := c.BeginSubmit()
	require.NoError(t, err)
	require.NoError(t, c.Complete(ticket.ID, compose.Rejected("nope")))
	require.ErrorIs(t, c.Complete(ticket.ID, compose.Success()), ErrStaleTicket)
	require.Len(t, rec.got, 1)
	require.Equal(t, "Error sending message: nope", rec.got[0].Message)
}

func TestEditsWhileSendingDoNotChangeTicket(t *testing.T) {
	t.Parallel()

	c, _ := newController(t)
	fill(t, c)
	ticket, err := c.BeginSubmit()
	require.NoError(t, err)
	require.NoError(t, c.UpdateField(compose.FieldSubject, "changed"))
	require.Equal(t, "hi", ticket.Draft.Subject)
	require.Equal(t, "changed", c.State().Draft.Subject)
}
