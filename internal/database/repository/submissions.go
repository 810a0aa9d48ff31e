package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// SubmissionRepo appends and lists submission log entries.
type SubmissionRepo struct {
	db *sql.DB
}

func NewSubmissionRepo(db *sql.DB) *SubmissionRepo { return &SubmissionRepo{db: db} }

func (r *SubmissionRepo) Record(ctx context.Context, s Submission) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO submissions(id, from_number, to_number, message_type, subject, selected_option, outcome, reason, submitted_at, completed_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, s.ID, s.FromNumber, s.ToNumber, s.MessageType, s.Subject, s.SelectedOption, s.Outcome, s.Reason, s.SubmittedAt, s.CompletedAt)
	if err != nil {
		return fmt.Errorf("record submission %s: %w", s.ID, err)
	}
	return nil
}

// List returns the newest entries first. limit <= 0 means no limit.
func (r *SubmissionRepo) List(ctx context.Context, limit int) ([]Submission, error) {
	q := `SELECT id, from_number, to_number, message_type, subject, selected_option, outcome, reason, submitted_at, completed_at
	FROM submissions ORDER BY submitted_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Submission
	for rows.Next() {
		var s Submission
		if err := rows.Scan(&s.ID, &s.FromNumber, &s.ToNumber, &s.MessageType, &s.Subject, &s.SelectedOption, &s.Outcome, &s.Reason, &s.SubmittedAt, &s.CompletedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SubmissionRepo) Get(ctx context.Context, id string) (*Submission, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, from_number, to_number, message_type, subject, selected_option, outcome, reason, submitted_at, completed_at
	FROM submissions WHERE id = ?`, id)
	var s Submission
	if err := row.Scan(&s.ID, &s.FromNumber, &s.ToNumber, &s.MessageType, &s.Subject, &s.SelectedOption, &s.Outcome, &s.Reason, &s.SubmittedAt, &s.CompletedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
