package compose

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func completeDraft() Draft {
	return Draft{
		FromNumber:  "+18001112222",
		ToNumber:    "+18002223333",
		MessageType: MessageIntroductory,
		Subject:     "hi",
		Channels:    NewChannelSet(ChannelSMS),
	}
}

func TestValidateCompleteDraft(t *testing.T) {
	t.Parallel()

	errs := Validate(completeDraft())
	require.True(t, errs.Valid())
	require.Len(t, errs, len(Fields))
	for _, f := range Fields {
		msg, ok := errs[f]
		require.True(t, ok, "missing entry for %s", f)
		require.Empty(t, msg)
	}
	require.Empty(t, errs.Messages())
}

func TestValidateSingleMissingField(t *testing.T) {
	t.Parallel()

	cases := []struct {
		field  Field
		mutate func(*Draft)
		want   string
	}{
		{FieldFrom, func(d *Draft) { d.FromNumber = "" }, ErrFromRequired},
		{FieldTo, func(d *Draft) { d.ToNumber = "" }, ErrToRequired},
		{FieldMessageType, func(d *Draft) { d.MessageType = "" }, ErrTypeRequired},
		{FieldSubject, func(d *Draft) { d.Subject = "" }, ErrSubjectRequired},
		{FieldChannels, func(d *Draft) { d.Channels = ChannelSet{} }, ErrChannelsRequired},
	}
	for _, tc := range cases {
		t.Run(string(tc.field), func(t *testing.T) {
			d := completeDraft()
			tc.mutate(&d)
			errs := Validate(d)
			require.False(t, errs.Valid())
			for _, f := range Fields {
				if f == tc.field {
					require.Equal(t, tc.want, errs[f])
					continue
				}
				require.Empty(t, errs[f], "field %s should be clean", f)
			}
		})
	}
}

func TestValidateEmptyDraftReportsEverything(t *testing.T) {
	t.Parallel()

	errs := Validate(Draft{})
	require.Equal(t, []string{
		ErrFromRequired,
		ErrToRequired,
		ErrTypeRequired,
		ErrSubjectRequired,
		ErrChannelsRequired,
	}, errs.Messages())
}

func TestNewPayloadDerivesSelectedOption(t *testing.T) {
	t.Parallel()

	d := completeDraft()
	p := NewPayload(d)
	require.Equal(t, Payload{
		FromPhoneNumber: "+18001112222",
		ToPhoneNumber:   "+18002223333",
		MessageType:     "Introductory Message",
		Subject:         "hi",
		SelectedOption:  "sms",
	}, p)

	d.Channels = Toggle(d.Channels, ChannelWhatsApp)
	require.Equal(t, "both", NewPayload(d).SelectedOption)
}

func TestDraftWith(t *testing.T) {
	t.Parallel()

	d, err := NewDraft().With(FieldSubject, "hello")
	require.NoError(t, err)
	require.Equal(t, "hello", d.Value(FieldSubject))
	require.Equal(t, MessageIntroductory, d.MessageType)

	_, err = d.With(FieldChannels, "sms")
	require.Error(t, err)
}

func TestParseMessageType(t *testing.T) {
	t.Parallel()

	mt, err := ParseMessageType("phrase of the day")
	require.NoError(t, err)
	require.Equal(t, MessagePhraseOfTheDay, mt)

	_, err = ParseMessageType("Weekly Digest")
	require.Error(t, err)
}
