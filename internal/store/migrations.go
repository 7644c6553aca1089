package store

import "fmt"

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS bindings (
		id         TEXT PRIMARY KEY,
		gesture    TEXT NOT NULL UNIQUE,
		command    TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS dispatches (
		id            TEXT PRIMARY KEY,
		command       TEXT NOT NULL,
		source        TEXT NOT NULL,
		dispatched_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_dispatches_time
		ON dispatches(dispatched_at DESC)`,
}

func (s *Store) migrate() error {
	for i, stmt := range migrations {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
