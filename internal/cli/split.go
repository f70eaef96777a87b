package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cybertec-postgresql/sqlscan"
)

// Split scans sql and writes each statement to w, numbered and annotated with
// its source position. With asJSON the statements are emitted as a JSON array.
func Split(w io.Writer, config *Config, sql string, asJSON bool) error {
	scanner, err := sqlscan.NewScannerWithOptions(sql, sqlscan.Options{StatementDelimiter: config.Delimiter})
	if err != nil {
		return err
	}

	if asJSON {
		views := []statementView{}
		for stmt := scanner.Scan(); stmt != nil; stmt = scanner.Scan() {
			views = append(views, statementView{
				SQL:     stmt.SQL(),
				Start:   stmt.Start(),
				IsQuery: stmt.IsQuery(),
				IsEmpty: stmt.IsEmpty(),
			})
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(views)
	}

	number := 0
	for stmt := scanner.Scan(); stmt != nil; stmt = scanner.Scan() {
		if stmt.IsEmpty() {
			continue
		}
		number++
		if number > 1 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "-- statement %d (%s)\n%s\n", number, stmt.Start(), stmt.SQL())
	}
	return nil
}
