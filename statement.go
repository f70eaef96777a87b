package sqlscan

import "strings"

// queryKeywords are the leading keywords that unambiguously identify a query.
var queryKeywords = map[string]bool{
	"SHOW":     true,
	"DESCRIBE": true,
	"EXPLAIN":  true,
	"VALUES":   true,
	"LIST":     true,
	"PRAGMA":   true,
}

// Statement is one delimiter-bounded span of the scanned input.
//
// A statement borrows from the original input (its tokens hold substring
// headers into it) and is immutable once produced by the scanner. The token
// list only contains top-level tokens: anything inside parentheses is nested
// under a Fragment token so that keyword heuristics are not confused by
// identical keywords inside subqueries.
type Statement struct {
	input  string
	tokens Tokens
}

// SQL returns the statement text, from the first character of the first
// token to the last character of the last token (delimiter included when the
// statement ends with one).
func (s *Statement) SQL() string {
	if len(s.tokens) == 0 {
		return ""
	}
	return s.input[s.tokens[0].Start.Offset:s.tokens[len(s.tokens)-1].End.Offset]
}

// Tokens returns the top-level token sequence of the statement.
func (s *Statement) Tokens() Tokens {
	return s.tokens
}

// Start returns the position of the first token of the statement.
func (s *Statement) Start() Position {
	if len(s.tokens) == 0 {
		return Position{Line: 1, Column: 1}
	}
	return s.tokens[0].Start
}

// Keywords returns the purely alphabetic top-level tokens of the statement.
// Tokens nested inside parentheses are not included, so a RETURNING inside a
// subquery does not leak into the statement-level view.
func (s *Statement) Keywords() []string {
	var keywords []string
	for i := range s.tokens {
		tok := &s.tokens[i]
		if tok.Kind == Fragment || tok.Text == "" {
			continue
		}
		if isASCIIAlphabetic(tok.Text) {
			keywords = append(keywords, tok.Text)
		}
	}
	return keywords
}

// IsEmpty reports whether the statement consists of comments and statement
// delimiters only. Whitespace never produces tokens, so a span like "\t\n;"
// is a statement with a single delimiter token and is considered empty.
func (s *Statement) IsEmpty() bool {
	for i := range s.tokens {
		switch s.tokens[i].Kind {
		case Comment, StatementDelimiter:
		default:
			return false
		}
	}
	return true
}

// IsQuery reports whether the statement looks like it returns a result set.
//
// The following statements are considered queries:
//   - SELECT ... (excluding SELECT ... INTO)
//   - SHOW / DESCRIBE / EXPLAIN / VALUES / LIST / PRAGMA ...
//   - WITH ... SELECT ... and WITH ... RETURNING ...
//   - INSERT / UPDATE / DELETE ... RETURNING ...
//
// This is a heuristic over top-level keywords, not a grammar check.
func (s *Statement) IsQuery() bool {
	keywords := s.Keywords()
	if len(keywords) == 0 {
		return false
	}
	first := strings.ToUpper(keywords[0])
	switch {
	case queryKeywords[first]:
		return true
	case first == "WITH":
		return containsKeyword(keywords, "SELECT") || containsKeyword(keywords, "RETURNING")
	case first == "INSERT" || first == "UPDATE" || first == "DELETE":
		return containsKeyword(keywords, "RETURNING")
	case first == "SELECT":
		return !containsKeyword(keywords, "INTO")
	}
	return false
}

func containsKeyword(keywords []string, want string) bool {
	for _, k := range keywords {
		if strings.EqualFold(k, want) {
			return true
		}
	}
	return false
}

func isASCIIAlphabetic(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
