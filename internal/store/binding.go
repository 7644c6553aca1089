package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound indicates the requested row does not exist.
var ErrNotFound = errors.New("store: not found")

// Binding is one persisted gesture-to-command association.
type Binding struct {
	ID        string    `json:"id"`
	Gesture   string    `json:"gesture"`
	Command   string    `json:"command"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SaveBinding inserts or updates the binding for a gesture.
func (s *Store) SaveBinding(ctx context.Context, gesture, command string) (Binding, error) {
	b := Binding{
		ID:        uuid.NewString(),
		Gesture:   gesture,
		Command:   command,
		UpdatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bindings (id, gesture, command, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(gesture) DO UPDATE SET
			command = excluded.command,
			updated_at = excluded.updated_at`,
		b.ID, b.Gesture, b.Command, b.UpdatedAt)
	if err != nil {
		return Binding{}, fmt.Errorf("save binding: %w", err)
	}

	// The upsert keeps the original id on update; read it back.
	return s.GetBinding(ctx, gesture)
}

// GetBinding fetches the binding for one gesture.
func (s *Store) GetBinding(ctx context.Context, gesture string) (Binding, error) {
	var b Binding
	err := s.db.QueryRowContext(ctx, `
		SELECT id, gesture, command, updated_at
		FROM bindings WHERE gesture = ?`, gesture).
		Scan(&b.ID, &b.Gesture, &b.Command, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Binding{}, ErrNotFound
	}
	if err != nil {
		return Binding{}, fmt.Errorf("get binding: %w", err)
	}
	return b, nil
}

// Bindings lists all bindings ordered by gesture.
func (s *Store) Bindings(ctx context.Context) ([]Binding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, gesture, command, updated_at
		FROM bindings ORDER BY gesture`)
	if err != nil {
		return nil, fmt.Errorf("list bindings: %w", err)
	}
	defer rows.Close()

	var out []Binding
	for rows.Next() {
		var b Binding
		if err := rows.Scan(&b.ID, &b.Gesture, &b.Command, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan binding: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// BindingMap returns the bindings as a gesture-to-command map, the shape
// the action mapper consumes.
func (s *Store) BindingMap(ctx context.Context) (map[string]string, error) {
	bindings, err := s.Bindings(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(bindings))
	for _, b := range bindings {
		m[b.Gesture] = b.Command
	}
	return m, nil
}

// DeleteBinding removes the binding for a gesture.
func (s *Store) DeleteBinding(ctx context.Context, gesture string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bindings WHERE gesture = ?`, gesture)
	if err != nil {
		return fmt.Errorf("delete binding: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SeedBindings inserts defaults for any gesture not already bound.
func (s *Store) SeedBindings(ctx context.Context, defaults map[string]string) error {
	for gesture, command := range defaults {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO bindings (id, gesture, command, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(gesture) DO NOTHING`,
			uuid.NewString(), gesture, command, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("seed binding %s: %w", gesture, err)
		}
	}
	return nil
}
