package runner

import (
	"time"

	"github.com/cybertec-postgresql/sqlscan"
)

// StatementStatus represents the outcome of a single script statement
type StatementStatus int

const (
	StatementPending StatementStatus = iota
	StatementPassed
	StatementFailed
	StatementSkipped // comment-only or delimiter-only statements are not sent to the server
)

// String returns a string representation of StatementStatus
func (s StatementStatus) String() string {
	switch s {
	case StatementPending:
		return "pending"
	case StatementPassed:
		return "passed"
	case StatementFailed:
		return "failed"
	case StatementSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// StatementRun captures the execution of one statement of a script
type StatementRun struct {
	Statement *sqlscan.Statement
	Status    StatementStatus
	Duration  time.Duration
	// RowsReturned is set for query statements, RowsAffected for commands
	RowsReturned int64
	RowsAffected int64
	Error        error
}

// Summary aggregates the outcome of a script run
type Summary struct {
	TotalStatements   int
	PassedStatements  int
	FailedStatements  int
	SkippedStatements int
	Duration          time.Duration
}

// SummarizeRuns computes aggregate statistics for a script run
func SummarizeRuns(runs []*StatementRun) Summary {
	var summary Summary
	for _, run := range runs {
		summary.TotalStatements++
		summary.Duration += run.Duration
		switch run.Status {
		case StatementPassed:
			summary.PassedStatements++
		case StatementFailed:
			summary.FailedStatements++
		case StatementSkipped:
			summary.SkippedStatements++
		}
	}
	return summary
}
