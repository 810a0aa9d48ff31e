package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jask/msgdesk/internal/database/repository"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func historyCmd() *cobra.Command {
	var (
		limit  int
		format string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past submissions and their outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := appCtx.journal.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return writeHistory(cmd.OutOrStdout(), rows, format, time.Now())
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "how many entries to show, 0 for all")
	cmd.Flags().StringVarP(&format, "format", "o", formatTable, "output format: table, json or yaml")
	return cmd
}

func writeHistory(w io.Writer, rows []repository.Submission, format string, now time.Time) error {
	if rows == nil {
		rows = []repository.Submission{}
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	case formatTable, "":
		if len(rows) == 0 {
			_, err := fmt.Fprintln(w, "no submissions yet")
			return err
		}
		_, err := fmt.Fprintln(w, historyTable(rows, now))
		return err
	}
	return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
}

var (
	headerCell = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	bodyCell   = lipgloss.NewStyle().Padding(0, 1)
)

func historyTable(rows []repository.Submission, now time.Time) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("WHEN", "FROM", "TO", "TYPE", "CHANNEL", "OUTCOME").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return bodyCell
		})
	for _, s := range rows {
		outcome := s.Outcome
		if s.Reason != "" && s.Outcome != repository.OutcomeSucceeded {
			outcome += ": " + s.Reason
		}
		t.Row(
			humanize.RelTime(s.SubmittedAt, now, "ago", "from now"),
			s.FromNumber,
			s.ToNumber,
			s.MessageType,
			s.SelectedOption,
			outcome,
		)
	}
	return t.String()
}
