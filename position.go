package sqlscan

import "fmt"

// Position locates a character in the scanned input.
//
// Line and Column are 1-based and count characters, Offset is a 0-based byte
// offset into the original input. Keeping both coordinate systems around lets
// callers do cheap substring extraction (offsets) and human-readable
// diagnostics (line:column) without re-scanning the input.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

// String renders the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
