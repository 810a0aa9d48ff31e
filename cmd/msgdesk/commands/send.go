package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/msgdesk/internal/compose"
	"github.com/jask/msgdesk/internal/form"
	"github.com/jask/msgdesk/internal/notify"
)

type sendOptions struct {
	From     string
	To       string
	Type     string
	Subject  string
	SMS      bool
	WhatsApp bool
	// channelsSet is true when --sms or --whatsapp was given; otherwise the
	// configured default channels apply.
	channelsSet bool
}

func sendCmd() *cobra.Command {
	var opts sendOptions
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one message without the TUI",
		Example: `  msgdesk send --from +18001112222 --to +18002223333 --subject "hi" --sms
  msgdesk send --from +18001112222 --to +18002223333 --type "Phrase of the Day" --subject "hola" --sms --whatsapp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.channelsSet = cmd.Flags().Changed("sms") || cmd.Flags().Changed("whatsapp")
			return runSend(cmd.Context(), cmd.OutOrStdout(), appCtx, opts)
		},
	}
	cmd.Flags().StringVar(&opts.From, "from", "", "sender number, one of those listed by msgdesk senders")
	cmd.Flags().StringVar(&opts.To, "to", "", "recipient number")
	cmd.Flags().StringVar(&opts.Type, "type", "", `message type: "Introductory Message" or "Phrase of the Day" (default from config)`)
	cmd.Flags().StringVar(&opts.Subject, "subject", "", "message text")
	cmd.Flags().BoolVar(&opts.SMS, "sms", false, "send as SMS")
	cmd.Flags().BoolVar(&opts.WhatsApp, "whatsapp", false, "send as WhatsApp")
	return cmd
}

// runSend drives one form through directory load and a single submission,
// printing every notification to out.
func runSend(ctx context.Context, out io.Writer, a *app, opts sendOptions) error {
	draft, err := opts.draft(a.cfg.Compose.NewDraft())
	if err != nil {
		return err
	}

	printer := notify.NotifierFunc(func(n notify.Notification) {
		fmt.Fprintln(out, n.Message)
	})
	f := form.New(draft, notify.Multi{a.notifier, printer}, a.log)
	defer f.Close()

	if err := f.ApplyDirectory(a.directory().Fetch(ctx)); err != nil {
		return err
	}
	if from := strings.TrimSpace(opts.From); from != "" {
		if err := f.UpdateField(compose.FieldFrom, from); err != nil {
			if errors.Is(err, form.ErrUnknownSender) {
				return fmt.Errorf("%s is not an available sender number", from)
			}
			return err
		}
	}

	outcome, err := f.Submit(ctx, a.submitter())
	switch {
	case errors.Is(err, form.ErrInvalid):
		for _, msg := range f.State().Errors.Messages() {
			fmt.Fprintln(out, msg)
		}
		return errors.New("message not sent: fix the fields above")
	case err != nil:
		return err
	case !outcome.Succeeded():
		return fmt.Errorf("message not sent: %s", outcome.Reason)
	}
	return nil
}

func (o sendOptions) draft(base compose.Draft) (compose.Draft, error) {
	d := base
	d.ToNumber = strings.TrimSpace(o.To)
	d.Subject = o.Subject
	if strings.TrimSpace(o.Type) != "" {
		mt, err := compose.ParseMessageType(o.Type)
		if err != nil {
			return d, err
		}
		d.MessageType = mt
	}
	if o.channelsSet {
		var set compose.ChannelSet
		if o.SMS {
			set = compose.Toggle(set, compose.ChannelSMS)
		}
		if o.WhatsApp {
			set = compose.Toggle(set, compose.ChannelWhatsApp)
		}
		d.Channels = set
	}
	return d, nil
}
