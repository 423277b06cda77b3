package store

import (
	"landingrouter/internal/platform/logger"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithPG installs a ready sql seam; Open then skips dialing postgres
func WithPG(q RowQuerier) Option {
	return func(s *Store) error {
		s.PG = q
		return nil
	}
}

// WithClickhouse installs a ready clickhouse seam; Open then skips dialing clickhouse
func WithClickhouse(c Clickhouse) Option {
	return func(s *Store) error {
		s.CH = c
		return nil
	}
}
