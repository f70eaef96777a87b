// Package sqlscan is a non-validating, dialect-agnostic SQL tokenizer and
// statement splitter.
//
// It scans a SQL script into a sequence of statements bounded by a
// configurable delimiter (default ";") and, for each statement, a nested
// sequence of classified tokens annotated with precise source positions
// (line, column, byte offset). It builds no syntax tree and checks no
// grammar: malformed or unterminated input degrades to best-effort tokens,
// never to an error. Callers that need validation need a real parser; this
// package only guarantees it will not crash and always terminates.
//
// Scanning is lazy: each Scan call advances the cursor by exactly one
// statement, so abandoning the scanner early only pays for what was
// consumed.
//
//	s := sqlscan.NewScanner("SELECT 1; SELECT 2")
//	for stmt := s.Scan(); stmt != nil; stmt = s.Scan() {
//	    fmt.Println(stmt.SQL())
//	}
package sqlscan

// Scanner produces the statements of a SQL script one at a time.
//
// A Scanner owns mutable cursor state and must not be shared between
// goroutines; scanning independent inputs concurrently requires one Scanner
// per input. Statements already returned stay valid after the Scanner is
// abandoned.
type Scanner struct {
	t *tokenizer
}

// NewScanner returns a Scanner over sql using the default options.
func NewScanner(sql string) *Scanner {
	return &Scanner{t: newTokenizer(sql, DefaultOptions())}
}

// NewScannerWithOptions returns a Scanner over sql using the given options.
// It fails with ErrEmptyDelimiter when the statement delimiter is empty.
func NewScannerWithOptions(sql string, opts Options) (*Scanner, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Scanner{t: newTokenizer(sql, opts)}, nil
}

// Scan returns the next statement, or nil when the input is exhausted.
// Spans holding no tokens at all (whitespace, nothing) yield no statement;
// comment-only and delimiter-only spans do, and are reported empty by
// Statement.IsEmpty.
func (s *Scanner) Scan() *Statement {
	for s.t.nextOffset < len(s.t.input) {
		if stmt := s.t.nextStatement(s.t.opts.StatementDelimiter); stmt != nil {
			return stmt
		}
	}
	return nil
}

// ScanAll drains the scanner and returns all remaining statements.
func (s *Scanner) ScanAll() []*Statement {
	var statements []*Statement
	for stmt := s.Scan(); stmt != nil; stmt = s.Scan() {
		statements = append(statements, stmt)
	}
	return statements
}

// SplitStatements is a convenience wrapper scanning sql in one call with the
// default options.
func SplitStatements(sql string) []*Statement {
	return NewScanner(sql).ScanAll()
}
