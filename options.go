package sqlscan

import "errors"

// ErrEmptyDelimiter is returned when Options carry an empty statement
// delimiter. An empty delimiter is meaningless and must be rejected before
// scanning starts instead of looping forever looking for it.
var ErrEmptyDelimiter = errors.New("statement delimiter must not be empty")

// Options control the scanner behavior.
type Options struct {
	// StatementDelimiter separates statements in the input. It may be any
	// non-empty string; multi-character delimiters are matched before any
	// lexeme classification, so a delimiter like "::" shadows the typecast
	// operator. The default is ";".
	StatementDelimiter string `json:"statement_delimiter"`
}

// DefaultOptions returns the options used by NewScanner.
func DefaultOptions() Options {
	return Options{StatementDelimiter: ";"}
}

// Validate reports whether the options are usable.
func (o Options) Validate() error {
	if o.StatementDelimiter == "" {
		return ErrEmptyDelimiter
	}
	return nil
}
