package sqlscan

import (
	"encoding/json"
	"fmt"
)

// TokenKind is the lexical category of a token.
type TokenKind int

const (
	// Any is the catch-all kind: punctuation, stray parentheses, short
	// boundary tokens that fit no other category.
	Any TokenKind = iota

	// Comment is a single-line (`--`, `#`) or multi-line (`/* */`,
	// possibly nested) comment, terminator included when present.
	Comment

	// QuotedIdentifierOrConstant is a quoted identifier or string constant
	// delimited by ', " or `, including any introducer prefix (E'...',
	// N'...', B'...', X'...', _latin1'...', U&"...").
	QuotedIdentifierOrConstant

	// NumericConstant is a decimal, hexadecimal (0x), octal (0o) or binary
	// (0b) constant, with optional `_` group separators and exponent.
	NumericConstant

	// IdentifierOrKeyword is an unquoted identifier or keyword. The scanner
	// is dialect-agnostic and never distinguishes the two.
	IdentifierOrKeyword

	// Operator is a single- or multi-character operator (longest match).
	Operator

	// ParameterMarker is a bind placeholder: ?, $1, $name, :name or @name.
	ParameterMarker

	// StatementDelimiter is the configured statement boundary (default `;`).
	StatementDelimiter

	// Delimited is a string delimited by an arbitrary tag with no escaping,
	// e.g. a PostgreSQL dollar-quoted string ($tag$ ... $tag$).
	Delimited

	// Fragment is a nested token sequence holding the content of a
	// parenthesized block. The surrounding parentheses are emitted as
	// sibling Any tokens, not as part of the fragment.
	Fragment
)

var kindNames = map[TokenKind]string{
	Any:                        "Any",
	Comment:                    "Comment",
	QuotedIdentifierOrConstant: "QuotedIdentifierOrConstant",
	NumericConstant:            "NumericConstant",
	IdentifierOrKeyword:        "IdentifierOrKeyword",
	Operator:                   "Operator",
	ParameterMarker:            "ParameterMarker",
	StatementDelimiter:         "StatementDelimiter",
	Delimited:                  "Delimited",
	Fragment:                   "Fragment",
}

// String returns the kind name as used in the serialized token tree.
func (k TokenKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// MarshalJSON serializes the kind by name.
func (k TokenKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Token is one classified run of characters.
//
// Text is a substring of the original input sharing its backing array, so a
// leaf token always satisfies Text == input[Start.Offset:End.Offset]. For a
// Fragment token, Text covers the parenthesized content and Children holds
// the nested token sequence; Children is nil for every other kind.
type Token struct {
	Kind     TokenKind `json:"kind"`
	Text     string    `json:"text"`
	Children Tokens    `json:"children,omitempty"`
	Start    Position  `json:"start"`
	End      Position  `json:"end"`
}

// IsFragment reports whether the token holds a nested token sequence.
func (t *Token) IsFragment() bool {
	return t.Kind == Fragment
}

// IsComment reports whether the token is a comment of either flavor.
func (t *Token) IsComment() bool {
	return t.Kind == Comment
}

// Strings returns the literal text of the token, recursively expanding
// fragments into the text of their children.
func (t *Token) Strings() []string {
	if t.Kind != Fragment {
		return []string{t.Text}
	}
	return t.Children.Strings()
}

// Tokens is an ordered token sequence; insertion order is source order.
type Tokens []Token

// Strings flattens the sequence to the literal text of every leaf token,
// recursively expanding fragments. Useful for quick heuristic inspection.
func (ts Tokens) Strings() []string {
	out := make([]string, 0, len(ts))
	for i := range ts {
		out = append(out, ts[i].Strings()...)
	}
	return out
}
