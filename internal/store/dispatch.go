package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Dispatch records one command sent toward the robot.
type Dispatch struct {
	ID           string    `json:"id"`
	Command      string    `json:"command"`
	Source       string    `json:"source"`
	DispatchedAt time.Time `json:"dispatched_at"`
}

// RecordDispatch appends one row to the dispatch history.
func (s *Store) RecordDispatch(ctx context.Context, command, source string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO dispatches (id, command, source, dispatched_at)
		VALUES (?, ?, ?, ?)`,
		uuid.NewString(), command, source, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record dispatch: %w", err)
	}
	return nil
}

// RecentDispatches returns the newest entries, most recent first.
func (s *Store) RecentDispatches(ctx context.Context, limit int) ([]Dispatch, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, command, source, dispatched_at
		FROM dispatches ORDER BY dispatched_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list dispatches: %w", err)
	}
	defer rows.Close()

	var out []Dispatch
	for rows.Next() {
		var d Dispatch
		if err := rows.Scan(&d.ID, &d.Command, &d.Source, &d.DispatchedAt); err != nil {
			return nil, fmt.Errorf("scan dispatch: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// PruneDispatches deletes history older than the cutoff.
func (s *Store) PruneDispatches(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM dispatches WHERE dispatched_at < ?`, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune dispatches: %w", err)
	}
	return res.RowsAffected()
}
