package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cybertec-postgresql/sqlscan/internal/database"
	"github.com/cybertec-postgresql/sqlscan/internal/logger"
	"github.com/cybertec-postgresql/sqlscan/internal/runner"
)

// Exec executes the statements of a script against PostgreSQL and prints a
// summary. It returns the process exit code: 0 when every statement passed,
// 1 otherwise.
func Exec(ctx context.Context, config *Config, script, sql string) (int, error) {
	startTime := time.Now()

	logger.SetDefault(logger.New(config.Verbose, os.Stderr))

	pool, err := database.NewPool(ctx, config)
	if err != nil {
		return 1, fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()

	executor := runner.NewExecutor(pool, config.Timeout, config.StopOnError)
	runs, runErr := executor.ExecuteScript(ctx, script, sql, config.Delimiter)

	for _, run := range runs {
		if !config.Verbose || run.Status == runner.StatementSkipped {
			continue
		}
		switch {
		case run.Status == runner.StatementFailed:
			fmt.Printf("%s %s: FAILED: %v\n", script, run.Statement.Start(), run.Error)
		case run.Statement.IsQuery():
			fmt.Printf("%s %s: %d row(s) returned in %v\n",
				script, run.Statement.Start(), run.RowsReturned, run.Duration.Round(time.Millisecond))
		default:
			fmt.Printf("%s %s: %d row(s) affected in %v\n",
				script, run.Statement.Start(), run.RowsAffected, run.Duration.Round(time.Millisecond))
		}
	}

	summary := runner.SummarizeRuns(runs)
	fmt.Printf("\n")
	fmt.Printf("Statements: %d passed, %d failed, %d skipped, %d total\n",
		summary.PassedStatements, summary.FailedStatements,
		summary.SkippedStatements, summary.TotalStatements)
	fmt.Printf("Time:       %v\n", time.Since(startTime).Round(time.Millisecond))

	if runErr != nil {
		return 1, runErr
	}
	if summary.FailedStatements > 0 {
		return 1, nil
	}
	return 0, nil
}
