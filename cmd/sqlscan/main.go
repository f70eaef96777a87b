package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cybertec-postgresql/sqlscan/internal/cli"
	urfavecli "github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const version = "1.0.0"

func main() {
	app := &urfavecli.Command{
		Name:    "sqlscan",
		Usage:   "Tokenize, split, and execute SQL scripts",
		Version: version,
		Commands: []*urfavecli.Command{
			{
				Name:      "tokens",
				Usage:     "Print the token tree of every statement in a script",
				ArgsUsage: "FILE",
				Action:    tokensCommand,
				Flags: []urfavecli.Flag{
					&urfavecli.StringFlag{
						Name:    "delimiter",
						Aliases: []string{"d"},
						Usage:   "Statement delimiter",
					},
					&urfavecli.IntFlag{
						Name:  "width",
						Usage: "Output width (defaults to the terminal width)",
					},
					&urfavecli.BoolFlag{
						Name:  "json",
						Usage: "Emit statements and token trees as JSON",
					},
				},
			},
			{
				Name:      "split",
				Usage:     "Split a script into its statements",
				ArgsUsage: "FILE",
				Action:    splitCommand,
				Flags: []urfavecli.Flag{
					&urfavecli.StringFlag{
						Name:    "delimiter",
						Aliases: []string{"d"},
						Usage:   "Statement delimiter",
					},
					&urfavecli.BoolFlag{
						Name:  "json",
						Usage: "Emit statements as JSON",
					},
				},
			},
			{
				Name:      "exec",
				Usage:     "Execute a script statement by statement against PostgreSQL",
				ArgsUsage: "FILE",
				Action:    execCommand,
				Flags: []urfavecli.Flag{
					&urfavecli.StringFlag{
						Name:    "connection",
						Aliases: []string{"c"},
						Usage:   "PostgreSQL connection string (URI or key=value format). Supports standard PG* environment variables.",
					},
					&urfavecli.StringFlag{
						Name:    "delimiter",
						Aliases: []string{"d"},
						Usage:   "Statement delimiter",
					},
					&urfavecli.DurationFlag{
						Name:  "timeout",
						Usage: "Per-statement timeout",
					},
					&urfavecli.BoolFlag{
						Name:  "stop-on-error",
						Usage: "Abort the script on the first failing statement",
					},
					&urfavecli.BoolFlag{
						Name:  "verbose",
						Usage: "Enable debug output",
					},
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadScript builds the configuration and reads the script named by the
// first positional argument
func loadScript(cmd *urfavecli.Command) (*cli.Config, string, string, error) {
	config := cli.DefaultConfig
	cli.ApplyFlagsToConfig(&config,
		cmd.String("connection"), cmd.String("delimiter"), cmd.Duration("timeout"),
		cmd.Bool("stop-on-error"), cmd.Bool("verbose"))

	if err := config.Validate(); err != nil {
		return nil, "", "", err
	}

	filename := cmd.Args().First()
	if filename == "" {
		return nil, "", "", fmt.Errorf("missing FILE argument")
	}
	sql, err := os.ReadFile(filename)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return &config, filename, string(sql), nil
}

// tokensCommand handles the 'sqlscan tokens' command
func tokensCommand(ctx context.Context, cmd *urfavecli.Command) error {
	config, _, sql, err := loadScript(cmd)
	if err != nil {
		return err
	}

	width := int(cmd.Int("width"))
	if width == 0 {
		width = 80
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	return cli.Tokens(os.Stdout, config, sql, width, cmd.Bool("json"))
}

// splitCommand handles the 'sqlscan split' command
func splitCommand(ctx context.Context, cmd *urfavecli.Command) error {
	config, _, sql, err := loadScript(cmd)
	if err != nil {
		return err
	}
	return cli.Split(os.Stdout, config, sql, cmd.Bool("json"))
}

// execCommand handles the 'sqlscan exec' command
func execCommand(ctx context.Context, cmd *urfavecli.Command) error {
	config, script, sql, err := loadScript(cmd)
	if err != nil {
		return err
	}

	exitCode, err := cli.Exec(ctx, config, script, sql)
	if err != nil {
		return err
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}
