package compose

import (
	"fmt"
	"strings"
)

// Channel is a delivery medium offered by the gateway.
type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

// Values of the derived channel field sent as selectedOption.
const (
	ChannelValueNone     = ""
	ChannelValueSMS      = "sms"
	ChannelValueWhatsApp = "whatsapp"
	ChannelValueBoth     = "both"
)

// ChannelSet holds the active channels. The zero value is the empty set.
type ChannelSet struct {
	SMS      bool `json:"sms"`
	WhatsApp bool `json:"whatsapp"`
}

// NewChannelSet builds a set from the given members.
func NewChannelSet(channels ...Channel) ChannelSet {
	var s ChannelSet
	for _, c := range channels {
		s = s.with(c, true)
	}
	return s
}

// Toggle flips membership of c and returns the new set. s is not modified.
func Toggle(s ChannelSet, c Channel) ChannelSet {
	return s.with(c, !s.Has(c))
}

// Derive maps a set onto the single value the gateway expects.
func Derive(s ChannelSet) string {
	switch {
	case s.SMS && s.WhatsApp:
		return ChannelValueBoth
	case s.SMS:
		return ChannelValueSMS
	case s.WhatsApp:
		return ChannelValueWhatsApp
	default:
		return ChannelValueNone
	}
}

// ParseChannelValue is the inverse of Derive.
func ParseChannelValue(v string) (ChannelSet, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case ChannelValueNone:
		return ChannelSet{}, nil
	case ChannelValueSMS:
		return NewChannelSet(ChannelSMS), nil
	case ChannelValueWhatsApp:
		return NewChannelSet(ChannelWhatsApp), nil
	case ChannelValueBoth:
		return NewChannelSet(ChannelSMS, ChannelWhatsApp), nil
	}
	return ChannelSet{}, fmt.Errorf("unknown channel value %q", v)
}

func (s ChannelSet) Has(c Channel) bool {
	switch c {
	case ChannelSMS:
		return s.SMS
	case ChannelWhatsApp:
		return s.WhatsApp
	}
	return false
}

func (s ChannelSet) Empty() bool { return !s.SMS && !s.WhatsApp }

// Members lists the active channels, SMS first.
func (s ChannelSet) Members() []Channel {
	var out []Channel
	if s.SMS {
		out = append(out, ChannelSMS)
	}
	if s.WhatsApp {
		out = append(out, ChannelWhatsApp)
	}
	return out
}

func (s ChannelSet) String() string { return Derive(s) }

func (s ChannelSet) with(c Channel, on bool) ChannelSet {
	switch c {
	case ChannelSMS:
		s.SMS = on
	case ChannelWhatsApp:
		s.WhatsApp = on
	}
	return s
}

// Label is the checkbox caption for c.
func (c Channel) Label() string {
	switch c {
	case ChannelSMS:
		return "Send an SMS message"
	case ChannelWhatsApp:
		return "Send a WhatsApp Message"
	}
	return string(c)
}
