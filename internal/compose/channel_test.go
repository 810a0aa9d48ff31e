package compose

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveCoversEverySubset(t *testing.T) {
	t.Parallel()

	cases := []struct {
		set  ChannelSet
		want string
	}{
		{ChannelSet{}, ""},
		{NewChannelSet(ChannelSMS), "sms"},
		{NewChannelSet(ChannelWhatsApp), "whatsapp"},
		{NewChannelSet(ChannelSMS, ChannelWhatsApp), "both"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Derive(tc.set))
		back, err := ParseChannelValue(tc.want)
		require.NoError(t, err)
		require.Equal(t, tc.set, back)
	}
}

func TestToggleIsSymmetricDifference(t *testing.T) {
	t.Parallel()

	all := []ChannelSet{
		{},
		NewChannelSet(ChannelSMS),
		NewChannelSet(ChannelWhatsApp),
		NewChannelSet(ChannelSMS, ChannelWhatsApp),
	}
	for _, start := range all {
		for _, c := range []Channel{ChannelSMS, ChannelWhatsApp} {
			once := Toggle(start, c)
			require.NotEqual(t, start.Has(c), once.Has(c), "toggle %s on %s", c, start)
			require.Equal(t, start, Toggle(once, c), "double toggle %s on %s", c, start)
		}
		// order of toggles does not matter
		a := Toggle(Toggle(start, ChannelSMS), ChannelWhatsApp)
		b := Toggle(Toggle(start, ChannelWhatsApp), ChannelSMS)
		require.Equal(t, a, b)
	}
}

func TestToggleFromEmptyReachesBoth(t *testing.T) {
	t.Parallel()

	s := Toggle(ChannelSet{}, ChannelWhatsApp)
	require.Equal(t, "whatsapp", Derive(s))
	s = Toggle(s, ChannelSMS)
	require.Equal(t, "both", Derive(s))
	require.Equal(t, []Channel{ChannelSMS, ChannelWhatsApp}, s.Members())
	s = Toggle(s, ChannelWhatsApp)
	require.Equal(t, "sms", Derive(s))
}

func TestParseChannelValueRejectsUnknown(t *testing.T) {
	t.Parallel()

	_, err := ParseChannelValue("fax")
	require.Error(t, err)

	s, err := ParseChannelValue(" Both ")
	require.NoError(t, err)
	require.True(t, s.SMS && s.WhatsApp)
}
