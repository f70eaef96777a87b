package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cybertec-postgresql/sqlscan"
)

const (
	ellipsis = "..."

	// MetadataColWidth is the width taken up by the START and END columns
	// of the token table, including separators
	MetadataColWidth = 27
)

// statementView is the JSON shape of a scanned statement
type statementView struct {
	SQL     string           `json:"sql"`
	Start   sqlscan.Position `json:"start"`
	IsQuery bool             `json:"is_query"`
	IsEmpty bool             `json:"is_empty"`
	Tokens  sqlscan.Tokens   `json:"tokens,omitempty"`
}

// Tokens scans sql and renders the token tree of every statement as a table,
// or as JSON when asJSON is set. width is the total terminal width available.
func Tokens(w io.Writer, config *Config, sql string, width int, asJSON bool) error {
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
				Tokens:  stmt.Tokens(),
			})
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(views)
	}

	colWidth := width - MetadataColWidth
	if colWidth < len(ellipsis) {
		colWidth = len(ellipsis)
	}

	for stmt := scanner.Scan(); stmt != nil; stmt = scanner.Scan() {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "> %s\n", stmt.SQL())
		fmt.Fprintf(w, "  query: %s\n", yesNo(stmt.IsQuery()))
		fmt.Fprintf(w, "  empty: %s\n", yesNo(stmt.IsEmpty()))
		fmt.Fprintln(w)
		rule := fmt.Sprintf("------------+------------+-%s", strings.Repeat("-", colWidth))
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, "    START   |     END    | TOKEN")
		fmt.Fprintln(w, rule)
		renderTokens(w, stmt.Tokens(), colWidth, 0)
	}
	return nil
}

// renderTokens prints one table row per leaf token, indenting the contents
// of parenthesized fragments by two columns per nesting level
func renderTokens(w io.Writer, tokens sqlscan.Tokens, colWidth, indent int) {
	for i := range tokens {
		token := &tokens[i]
		if token.IsFragment() {
			renderTokens(w, token.Children, colWidth, indent+2)
			continue
		}

		text := strings.ReplaceAll(token.Text, "\n", " ")
		if indent+len(ellipsis) > colWidth {
			text = ellipsis
		} else if len(text) > colWidth-indent {
			text = truncate(text, colWidth-len(ellipsis)-indent) + ellipsis
		}
		fmt.Fprintf(w, " %10s | %10s | %*s%s\n",
			token.Start.String(), token.End.String(), indent, "", text)
	}
}

// truncate cuts s to at most n bytes without splitting a multi-byte rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && s[n]&0xc0 == 0x80 {
		n--
	}
	return s[:n]
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
