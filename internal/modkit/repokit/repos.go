// Package repokit provides common types and helpers for repository implementations
package repokit

import (
	"landingrouter/internal/platform/store"
)

// Queryer is the sql surface repos bind to
type Queryer = store.RowQuerier

type (
	// Rows are the result set of a query
	Rows = store.Rows

	// Row is a single row result from a query
	Row = store.Row
)

// IsNoRows reports an empty single row result
func IsNoRows(err error) bool { return store.IsNoRows(err) }
