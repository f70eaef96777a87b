package runner

import (
	"context"
	"time"

	"github.com/cybertec-postgresql/sqlscan"
	"github.com/cybertec-postgresql/sqlscan/internal/database"
	"github.com/cybertec-postgresql/sqlscan/internal/errors"
	"github.com/cybertec-postgresql/sqlscan/internal/logger"
)

// Executor runs scripts statement by statement against a database
type Executor struct {
	pool        *database.Pool
	timeout     time.Duration
	stopOnError bool
}

// NewExecutor creates an executor bound to a connection pool
func NewExecutor(pool *database.Pool, timeout time.Duration, stopOnError bool) *Executor {
	return &Executor{
		pool:        pool,
		timeout:     timeout,
		stopOnError: stopOnError,
	}
}

// ExecuteScript splits sql on delimiter and executes the statements in source
// order. Empty statements are skipped without a server round trip. Statement
// failures are recorded per statement; with stopOnError the first failure
// aborts the run and is returned alongside the runs collected so far.
func (e *Executor) ExecuteScript(ctx context.Context, script, sql, delimiter string) ([]*StatementRun, error) {
	scanner, err := sqlscan.NewScannerWithOptions(sql, sqlscan.Options{StatementDelimiter: delimiter})
	if err != nil {
		return nil, err
	}

	var runs []*StatementRun
	for stmt := scanner.Scan(); stmt != nil; stmt = scanner.Scan() {
		run := &StatementRun{Statement: stmt, Status: StatementPending}
		runs = append(runs, run)

		if stmt.IsEmpty() {
			run.Status = StatementSkipped
			continue
		}

		e.executeStatement(ctx, script, run)
		if run.Status == StatementFailed {
			logger.Error("%s: %v", script, run.Error)
			if e.stopOnError {
				return runs, run.Error
			}
		}
	}
	return runs, nil
}

func (e *Executor) executeStatement(ctx context.Context, script string, run *StatementRun) {
	stmt := run.Statement
	stmtCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		stmtCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	var err error
	if stmt.IsQuery() {
		run.RowsReturned, err = e.runQuery(stmtCtx, stmt.SQL())
	} else {
		run.RowsAffected, err = e.runCommand(stmtCtx, stmt.SQL())
	}
	run.Duration = time.Since(start)

	if err != nil {
		pos := stmt.Start()
		run.Status = StatementFailed
		run.Error = errors.NewStatementError(script, pos.Line, pos.Column, stmt.SQL(), err)
		return
	}

	run.Status = StatementPassed
	logger.Debug("%s %s: ok in %v", script, stmt.Start(), run.Duration)
}

func (e *Executor) runQuery(ctx context.Context, sql string) (int64, error) {
	rows, err := e.pool.Query(ctx, sql)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		count++
	}
	return count, rows.Err()
}

func (e *Executor) runCommand(ctx context.Context, sql string) (int64, error) {
	tag, err := e.pool.Exec(ctx, sql)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
