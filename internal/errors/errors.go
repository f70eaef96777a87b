package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// As is a thin alias of the standard library errors.As so that callers of
// this package do not need to import both.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// ConnectionError represents PostgreSQL connection failure
type ConnectionError struct {
	Message    string
	Suggestion string
}

func (e *ConnectionError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Suggestion)
	}
	return e.Message
}

// StatementError represents the failure of a single script statement.
// Line and Column locate the start of the statement in the original script.
type StatementError struct {
	Script   string
	Line     int
	Column   int
	SQL      string
	SQLError *pgconn.PgError // PostgreSQL error details, nil for non-server failures
	Err      error
}

func (e *StatementError) Error() string {
	if e.SQLError != nil {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", e.Script, e.Line, e.Column, e.SQLError.Code, e.SQLError.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %v", e.Script, e.Line, e.Column, e.Err)
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

// NewStatementError creates a new StatementError
func NewStatementError(script string, line, column int, sql string, err error) *StatementError {
	e := &StatementError{
		Script: script,
		Line:   line,
		Column: column,
		SQL:    sql,
		Err:    err,
	}
	var pgErr *pgconn.PgError
	if As(err, &pgErr) {
		e.SQLError = pgErr
	}
	return e
}
