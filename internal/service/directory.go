package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jask/msgdesk/internal/gateway"
	"github.com/jask/msgdesk/internal/notify"
)

const (
	noticeDirectoryRejected  = "Error fetching phone numbers: "
	noticeDirectoryTransport = "An error occurred while fetching phone numbers"
)

// PhoneNumberLister is the gateway call the directory needs.
type PhoneNumberLister interface {
	ListPhoneNumbers(ctx context.Context) ([]string, error)
}

// DirectoryResult is what one fetch produced. On failure Senders is empty and
// Notice carries the single user-visible message.
type DirectoryResult struct {
	Senders []string
	Notice  *notify.Notification
	Err     error
}

func (r DirectoryResult) Failed() bool { return r.Err != nil }

// SenderDirectory fetches the eligible sender numbers. It runs once per
// activation; there is no polling, caching or retry.
type SenderDirectory struct {
	Gateway PhoneNumberLister
	Log     zerolog.Logger
}

func (d *SenderDirectory) Fetch(ctx context.Context) DirectoryResult {
	numbers, err := d.Gateway.ListPhoneNumbers(ctx)
	if err != nil {
		msg := noticeDirectoryTransport
		if reason, ok := gateway.IsRejection(err); ok {
			msg = noticeDirectoryRejected + reason
		}
		d.Log.Warn().Err(err).Msg("sender directory unavailable")
		return DirectoryResult{
			Err:    err,
			Notice: &notify.Notification{Level: notify.LevelError, Title: "Phone numbers", Message: msg},
		}
	}
	if numbers == nil {
		numbers = []string{}
	}
	d.Log.Info().Int("count", len(numbers)).Msg("sender directory loaded")
	return DirectoryResult{Senders: numbers}
}
