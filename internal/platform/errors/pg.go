package errors

// Postgres classification for the read paths of the domain registry

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE values the registry cares about
const (
	pgErrUndefinedTable       = "42P01"
	pgErrUndefinedColumn      = "42703"
	pgErrInvalidText          = "22P02"
	pgErrQueryCanceled        = "57014"
	pgErrAdminShutdown        = "57P01"
	pgErrCannotConnectNow     = "57P03"
	pgErrTooManyConnections   = "53300"
	pgErrConnectionExceptionC = "08"
)

// ExtractPgError returns the PgError at the root of err
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(Root(err), &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether err is a PgError with code
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// IsSchemaMissing reports a missing table or column, usually unapplied migrations
func IsSchemaMissing(err error) bool {
	return IsSQLState(err, pgErrUndefinedTable) || IsSQLState(err, pgErrUndefinedColumn)
}

// IsTimeout reports a context deadline or a server side statement timeout
func IsTimeout(err error) bool {
	return stderrs.Is(err, context.DeadlineExceeded) || IsSQLState(err, pgErrQueryCanceled)
}

// DBErrorCode maps a Postgres or context error; ok is false for anything else
func DBErrorCode(err error) (ErrorCode, bool) {
	if stderrs.Is(err, context.DeadlineExceeded) {
		return ErrorCodeTimeout, true
	}
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		return ErrorCodeUnknown, false
	}
	switch {
	case pgErr.Code == pgErrQueryCanceled:
		return ErrorCodeTimeout, true
	case pgErr.Code == pgErrInvalidText:
		return ErrorCodeInvalidArgument, true
	case pgErr.Code == pgErrAdminShutdown,
		pgErr.Code == pgErrCannotConnectNow,
		pgErr.Code == pgErrTooManyConnections,
		strings.HasPrefix(pgErr.Code, pgErrConnectionExceptionC):
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps err with its mapped code; nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// IsRetryable reports transient server conditions; local cancellation never is
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if code, ok := DBErrorCode(err); ok {
		return code == ErrorCodeUnavailable
	}
	s := strings.ToLower(Root(err).Error())
	return strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset") ||
		strings.Contains(s, "terminating connection due to administrator command")
}
