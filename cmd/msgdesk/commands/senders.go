package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jask/msgdesk/internal/compose"
)

func sendersCmd() *cobra.Command {
	var match string
	cmd := &cobra.Command{
		Use:   "senders",
		Short: "List the sender numbers the gateway offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSenders(cmd.Context(), cmd.OutOrStdout(), appCtx, match)
		},
	}
	cmd.Flags().StringVar(&match, "match", "", "rank numbers by closeness to these digits")
	return cmd
}

func runSenders(ctx context.Context, out io.Writer, a *app, match string) error {
	res := a.directory().Fetch(ctx)
	if res.Failed() {
		if res.Notice != nil {
			if a.notifier != nil {
				a.notifier.Notify(*res.Notice)
			}
			return errors.New(res.Notice.Message)
		}
		return res.Err
	}
	if len(res.Senders) == 0 {
		fmt.Fprintln(out, "no sender numbers available")
		return nil
	}
	for _, n := range compose.RankSenders(match, res.Senders) {
		fmt.Fprintln(out, n)
	}
	return nil
}
