package sqlscan

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// operators is the list of all operators recognized by the tokenizer, sorted
// by length descending so that matching the list front to back always yields
// the longest possible operator.
var operators = []string{
	"!~*", "!=", ">=", "<=", "<>", "||", "<<", ">>", "::", "~*", "!~",
	"+", "-", "*", "/", "=", ">", "<", "!", "%", "~", "&", "|", "^",
}

// tokenizer is the single-pass scanning engine. It owns the input text and
// tracks the cursor in three coordinate systems at once: byte offset, line
// and column. All position bookkeeping goes through next, processNewline and
// columnFromOffset; classifiers never update offsets ad hoc.
type tokenizer struct {
	// input is the whole SQL text to be tokenized.
	input string

	// offset is the byte offset of the current character.
	offset int

	// nextOffset is the byte offset of the character after the current one.
	nextOffset int

	// line and column of the current character. Columns count characters,
	// not bytes.
	line   int
	column int

	// tokenStart is the start position of the next token to be captured.
	tokenStart Position

	opts Options
}

func newTokenizer(input string, opts Options) *tokenizer {
	return &tokenizer{
		input:      input,
		opts:       opts,
		line:       1,
		column:     0,
		tokenStart: Position{Line: 1, Column: 1, Offset: 0},
	}
}

// next consumes the next character from the input. It returns false at end
// of input, leaving the cursor untouched.
func (t *tokenizer) next() (rune, bool) {
	if t.nextOffset >= len(t.input) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(t.input[t.nextOffset:])
	t.offset = t.nextOffset
	t.nextOffset += size
	t.column++
	return r, true
}

// startsWith reports whether the remaining input, current character
// included, starts with the given literal (case-sensitive).
func (t *tokenizer) startsWith(s string) bool {
	return strings.HasPrefix(t.input[t.offset:], s)
}

// skipForward advances the cursor past n characters that have already been
// matched by a lookahead. Must not be used across a newline.
func (t *tokenizer) skipForward(n int) {
	for n > 0 {
		if _, ok := t.next(); !ok {
			return
		}
		n--
	}
}

// processNewline keeps line/column in sync when a newline or carriage return
// is consumed inside a comment or quoted token. A carriage return is treated
// as zero-width so that CRLF does not advance the column, and returns false
// for any other character.
func (t *tokenizer) processNewline(r rune) bool {
	switch r {
	case '\n':
		// Column 0 is the state before the first character of a line, so
		// the next call to next() lands on column 1.
		t.line++
		t.column = 0
	case '\r':
		t.column--
	default:
		return false
	}
	return true
}

// columnFromOffset computes the column of an arbitrary byte offset on the
// same line as the cursor, as a signed character-count difference from the
// cursor column. The input can contain multi-byte characters, so the
// distance is a rune count, not a byte count. Calling this across a line
// boundary is invalid; the classifiers preserve that invariant.
func (t *tokenizer) columnFromOffset(offset int) int {
	if offset == t.offset {
		return t.column
	}
	lo, hi, sign := t.offset, offset, 1
	if offset < t.offset {
		lo, hi, sign = offset, t.offset, -1
	}
	return t.column + sign*utf8.RuneCountInString(t.input[lo:hi])
}

// addToken appends a token spanning tokenStart..endOffset to tokens and
// moves tokenStart to nextTokenOffset.
//
// endOffset designates the byte offset immediately following the last
// character of the token. Because tokens are captured retroactively, the
// cursor may not be positioned exactly at endOffset and the end column must
// be back-calculated; the line never needs adjustment because no classifier
// captures across a line boundary.
func (t *tokenizer) addToken(tok Token, endOffset, nextTokenOffset int, tokens *Tokens) {
	tok.Start = t.tokenStart
	tok.End = Position{Line: t.line, Column: t.columnFromOffset(endOffset) - 1, Offset: endOffset}
	*tokens = append(*tokens, tok)
	t.tokenStart = Position{Line: t.line, Column: t.columnFromOffset(nextTokenOffset), Offset: nextTokenOffset}
}

// capture materializes the pending run tokenStart..endOffset as a token of
// the given kind, or only resets the pending start when the run is empty.
// Zero-length spans never produce tokens; that is how adjacent delimiters
// avoid spurious empty tokens.
func (t *tokenizer) capture(tokens *Tokens, endOffset, nextTokenOffset int, kind TokenKind) {
	if endOffset > t.tokenStart.Offset {
		tok := Token{Kind: kind, Text: t.input[t.tokenStart.Offset:endOffset]}
		t.addToken(tok, endOffset, nextTokenOffset, tokens)
	} else {
		t.tokenStart.Offset = nextTokenOffset
		t.tokenStart.Column = t.columnFromOffset(nextTokenOffset)
	}
}

// captureSingleLineComment consumes a comment started by `--` or `#` up to
// the end of the line, or the end of the input for an unterminated comment.
func (t *tokenizer) captureSingleLineComment(tokens *Tokens) {
	for {
		c, ok := t.next()
		if !ok {
			break
		}
		if c == '\n' {
			// Capture first so the comment's end position stays on its own
			// line, then move the pending start onto the next line.
			t.capture(tokens, t.offset, t.nextOffset, Comment)
			t.line++
			t.column = 0
			t.tokenStart.Line = t.line
			t.tokenStart.Column = 1
			return
		}
	}
	// Unterminated comment: capture what we have so far.
	t.capture(tokens, t.nextOffset, t.nextOffset, Comment)
}

// captureMultiLineComment consumes a `/* ... */` comment. Most dialects do
// not support nested comments but PostgreSQL does, so `/*` and `*/` pairs
// maintain a depth counter and the comment only ends at depth zero.
// See: https://www.postgresql.org/docs/current/sql-syntax-lexical.html#SQL-SYNTAX-COMMENTS
func (t *tokenizer) captureMultiLineComment(tokens *Tokens) {
	depth := 1
	c, ok := t.next()
	for ok {
		switch c {
		case '*':
			c, ok = t.next()
			if ok && c == '/' {
				depth--
				if depth == 0 {
					// End of the outermost comment.
					t.capture(tokens, t.nextOffset, t.nextOffset, Comment)
					return
				}
			} else {
				// Reprocess the character following the lone `*`.
				continue
			}
		case '/':
			c, ok = t.next()
			if ok && c == '*' {
				depth++
			} else {
				continue
			}
		default:
			t.processNewline(c)
		}
		c, ok = t.next()
	}
	// Unterminated comment: capture what we have so far.
	t.capture(tokens, t.nextOffset, t.nextOffset, Comment)
}

// captureQuoted consumes a quoted identifier or string constant delimited by
// the given quote character.
//
//   - Identifiers can be delimited by double quotes ("Employee #") or, in
//     MySQL, backticks.
//   - String constants are delimited by single quotes ('O''Reilly') or, in
//     some dialects, double quotes.
//   - A doubled quote is an escaped literal quote, not a terminator.
//
// Because the escape check needs one character of lookahead, the character
// following the closing quote is already consumed on return; it is handed
// back to the caller to be processed next.
func (t *tokenizer) captureQuoted(quote rune, tokens *Tokens) (rune, bool) {
	c, ok := t.next()
	for ok {
		if c == quote {
			c, ok = t.next()
			if !ok || c != quote {
				// End of the quoted token (or end of input).
				end := t.nextOffset
				if ok {
					end = t.offset
				}
				t.capture(tokens, end, end, QuotedIdentifierOrConstant)
				return c, ok
			}
		} else {
			// Newlines inside quoted tokens are part of the token but still
			// have to advance the line counter.
			t.processNewline(c)
		}
		c, ok = t.next()
	}
	// Unterminated quote: capture what we have so far.
	t.capture(tokens, t.nextOffset, t.nextOffset, QuotedIdentifierOrConstant)
	return c, ok
}

// captureDelimitedToken consumes a token terminated by the literal
// recurrence of the given delimiter. There is no escaping mechanism: the
// token ends at the first byte-exact occurrence of the delimiter.
//
// Used for PostgreSQL dollar-quoted strings ($tag$ ... $tag$) and for
// bit-string constants (B'...', X'...'), which unlike regular string
// constants allow no escaped quotes.
func (t *tokenizer) captureDelimitedToken(delimiter string, kind TokenKind, tokens *Tokens) (rune, bool) {
	first, _ := utf8.DecodeRuneInString(delimiter)
	c, ok := t.next()
	for ok {
		if c == first && t.startsWith(delimiter) {
			end := t.offset + len(delimiter)
			t.capture(tokens, end, end, kind)
			t.skipForward(utf8.RuneCountInString(delimiter) - 1)
			return t.next()
		}
		t.processNewline(c)
		c, ok = t.next()
	}
	// Unterminated token: capture what we have so far.
	t.capture(tokens, t.nextOffset, t.nextOffset, kind)
	return c, ok
}

// captureNumericConstant consumes a numeric constant until it reaches a
// character outside allowedChars. `e`/`E` only continues the token when
// immediately followed by a sign or a digit (exponent notation); a `+` or
// `-` anywhere else breaks the token so that leading signs stay operators.
// `_` is always allowed as a digit-group separator.
func (t *tokenizer) captureNumericConstant(allowedChars string, tokens *Tokens) (rune, bool) {
	c, ok := t.next()
	for ok {
		if !strings.ContainsRune(allowedChars, c) {
			break
		} else if c == 'e' || c == 'E' {
			c, ok = t.next()
			if !ok || (c != '+' && c != '-' && !isASCIIDigit(c)) {
				break
			}
		} else if c == '+' || c == '-' {
			// Only valid as the exponent sign, which the previous branch
			// already consumed.
			break
		}
		c, ok = t.next()
	}
	end := t.nextOffset
	if ok {
		end = t.offset
	}
	t.capture(tokens, end, end, NumericConstant)
	return c, ok
}

// captureIdentifierOrKeyword consumes an identifier or keyword: a letter or
// underscore followed by letters, digits, underscores or dollar signs.
//
// When the run is immediately followed by a single quote it is not captured:
// it is the introducer of a constant (E'...', N'...', B'...', _latin1'...')
// and must end up in the same token as the quoted part, so the quote is
// handed back to the caller with the pending start untouched.
func (t *tokenizer) captureIdentifierOrKeyword(tokens *Tokens) (rune, bool) {
	c, ok := t.next()
	for ok && (unicode.IsLetter(c) || unicode.IsNumber(c) || c == '_' || c == '$') {
		c, ok = t.next()
	}
	if ok && c == '\'' {
		return c, ok
	}
	end := t.nextOffset
	if ok {
		end = t.offset
	}
	t.capture(tokens, end, end, IdentifierOrKeyword)
	return c, ok
}

// tryCaptureOperator matches the remaining input against the operator table,
// longest operator first. On a match the pending token is captured, the
// operator is captured, and the cursor is moved past it.
func (t *tokenizer) tryCaptureOperator(tokens *Tokens) bool {
	remaining := t.input[t.offset:]
	for _, op := range operators {
		if strings.HasPrefix(remaining, op) {
			t.capture(tokens, t.offset, t.offset, Any)
			end := t.offset + len(op)
			t.capture(tokens, end, end, Operator)
			t.skipForward(utf8.RuneCountInString(op) - 1)
			return true
		}
	}
	return false
}

// captureFragment scans one fragment of a statement: it consumes characters
// and emits tokens until it reaches the statement delimiter, a parenthesis
// boundary, or the end of the input.
//
// The returned character is the one that stopped the scan, already consumed
// but deliberately left for the caller to act on: a `)` is re-emitted by the
// parent as a sibling token, the first character of the delimiter is handled
// by the statement assembler, and false means the input is exhausted.
func (t *tokenizer) captureFragment(delimiter string, tokens *Tokens) (rune, bool) {
	delimiterStart, _ := utf8.DecodeRuneInString(delimiter)
	c, ok := t.next()
	for ok {
		switch {
		case c == '\n':
			t.capture(tokens, t.offset, t.nextOffset, Any)
			t.line++
			t.column = 0
			t.tokenStart.Line = t.line
			t.tokenStart.Column = 1

		case c == '\r':
			// Carriage return is zero-width (CRLF handling).
			t.capture(tokens, t.offset, t.nextOffset, Any)
			t.column--

		case c == delimiterStart && t.startsWith(delimiter):
			// Statement delimiter. This check runs before any classifier
			// dispatch, so a multi-character delimiter such as "::" shadows
			// the operator it overlaps with. Capture the pending token and
			// hand the delimiter start back to the statement assembler.
			t.capture(tokens, t.offset, t.offset, Any)
			return c, true

		case unicode.IsSpace(c):
			t.capture(tokens, t.offset, t.nextOffset, Any)

		case c == '#' || (c == '-' && t.startsWith("--")):
			// Single-line comment: `#` (MySQL) or `--` (most dialects).
			t.capture(tokens, t.offset, t.offset, Any)
			t.captureSingleLineComment(tokens)

		case c == '/' && t.startsWith("/*"):
			t.capture(tokens, t.offset, t.offset, Any)
			t.captureMultiLineComment(tokens)

		case c == '\'' || c == '"' || c == '`':
			if c == '\'' && t.offset > t.tokenStart.Offset {
				// A pending run immediately before the quote is an
				// introducer: E'..', N'..', B'1001', X'1FF', _latin1'..'.
				introducer, _ := utf8.DecodeRuneInString(t.input[t.tokenStart.Offset:])
				if introducer == 'B' || introducer == 'b' || introducer == 'X' || introducer == 'x' {
					// Bit-string constants allow no escaped quotes.
					c, ok = t.captureDelimitedToken("'", QuotedIdentifierOrConstant, tokens)
					continue
				}
			}
			c, ok = t.captureQuoted(c, tokens)
			continue

		case (c == 'U' || c == 'u') && t.startsWith(`U&"`):
			// Unicode-escaped quoted identifier, e.g. U&"d\0061t\+000061".
			// The U& must sit immediately before the opening quote.
			t.skipForward(2)
			c, ok = t.captureQuoted('"', tokens)
			continue

		case c == '$':
			// Either a dollar-quoted string (PostgreSQL) or a parameter
			// marker. A dollar-quote delimiter is `$`, an optional tag of
			// letters, digits and underscores, and another `$`; the tag is
			// case-sensitive and the closing delimiter must match
			// byte-for-byte.
			t.capture(tokens, t.offset, t.offset, Any)
			c, ok = t.next()
			for ok && (isASCIIAlphanumeric(c) || c == '_') {
				c, ok = t.next()
			}
			if ok && c == '$' {
				tag := t.input[t.tokenStart.Offset:t.nextOffset]
				c, ok = t.captureDelimitedToken(tag, Delimited, tokens)
			} else {
				// No closing `$`: it was a parameter marker ($1, $id).
				// As below, the boundary character is reprocessed and must
				// stay ahead of the pending start.
				end := t.nextOffset
				if ok {
					end = t.offset
				}
				t.capture(tokens, end, end, ParameterMarker)
			}
			continue

		case c == ':' || c == '?' || c == '@':
			t.capture(tokens, t.offset, t.offset, Any)
			marker := c
			c, ok = t.next()
			for ok && (isASCIIAlphanumeric(c) || c == '_') {
				c, ok = t.next()
			}
			if marker == ':' && ok && c == ':' && t.tokenStart.Offset+1 == t.offset {
				// A second colon with nothing in between: the PostgreSQL
				// typecast operator `::`, not a parameter marker.
				t.capture(tokens, t.nextOffset, t.nextOffset, Operator)
			} else {
				// The boundary character that ended the marker is handed
				// back for reprocessing, so the pending start must not
				// move past it.
				end := t.nextOffset
				if ok {
					end = t.offset
				}
				t.capture(tokens, end, end, ParameterMarker)
				continue
			}

		case c == '(':
			// Start of a parenthesized block: the paren is its own token,
			// the content is scanned recursively into a nested Fragment
			// token appended at this level.
			t.capture(tokens, t.offset, t.offset, Any)
			t.capture(tokens, t.nextOffset, t.nextOffset, Any)
			var nested Tokens
			c, ok = t.captureFragment(delimiter, &nested)
			frag := Token{Kind: Fragment, Children: nested}
			if len(nested) > 0 {
				frag.Text = t.input[nested[0].Start.Offset:nested[len(nested)-1].End.Offset]
			}
			t.addToken(frag, t.offset, t.offset, tokens)
			// The scan may have stopped at the end of the input or at the
			// statement delimiter rather than at the closing parenthesis.
			if ok && c == ')' {
				t.capture(tokens, t.nextOffset, t.nextOffset, Any)
			} else {
				return c, ok
			}

		case c == ')':
			// End of a parenthesized block. Return to the caller, which
			// emits the parenthesis as a sibling of the opening one — or,
			// when there is no matching opening parenthesis, as a plain
			// token at the statement level.
			t.capture(tokens, t.offset, t.offset, Any)
			return c, true

		case c == '.':
			// Start of a decimal constant (.05) or part of a qualified
			// name (schema.table).
			t.capture(tokens, t.offset, t.offset, Any)
			c, ok = t.next()
			if ok && isASCIIDigit(c) {
				c, ok = t.captureNumericConstant("_0123456789.eE+-", tokens)
			} else {
				t.capture(tokens, t.offset, t.offset, Any)
			}
			continue

		case unicode.IsNumber(c):
			t.capture(tokens, t.offset, t.offset, Any)
			if c == '0' {
				// The character after a leading zero selects the radix.
				c, ok = t.next()
				switch {
				case ok && (c == 'x' || c == 'X'):
					c, ok = t.captureNumericConstant("_0123456789abcdefABCDEF", tokens)
				case ok && (c == 'o' || c == 'O'):
					c, ok = t.captureNumericConstant("_01234567", tokens)
				case ok && (c == 'b' || c == 'B'):
					c, ok = t.captureNumericConstant("_01", tokens)
				case ok && (c == '.' || isASCIIDigit(c)):
					c, ok = t.captureNumericConstant("_0123456789.eE+-", tokens)
				case ok:
					// A lone zero followed by a character that cannot
					// continue a numeric constant.
					t.capture(tokens, t.offset, t.offset, NumericConstant)
				default:
					// A lone zero at the end of the input.
					t.capture(tokens, t.offset, t.nextOffset, NumericConstant)
				}
			} else {
				c, ok = t.captureNumericConstant("_0123456789.eE+-", tokens)
			}
			continue

		case unicode.IsLetter(c) || c == '_':
			t.capture(tokens, t.offset, t.offset, Any)
			c, ok = t.captureIdentifierOrKeyword(tokens)
			continue

		default:
			// Any other character is a one-character token boundary,
			// except when it starts an operator.
			if !t.tryCaptureOperator(tokens) {
				t.capture(tokens, t.offset, t.offset, Any)
			}
		}
		c, ok = t.next()
	}

	// End of input reached without finding the delimiter: capture the
	// pending token as a best-effort trailing token.
	t.capture(tokens, t.nextOffset, t.offset, Any)
	return 0, false
}

// nextStatement assembles the next statement by driving captureFragment
// until the delimiter is confirmed or the input ends.
//
// captureFragment can also stop on a closing parenthesis that has no
// matching opening parenthesis at the statement level; such a stray `)` is
// re-emitted as a plain token and scanning resumes, so unbalanced input
// never breaks statement splitting.
//
// Returns nil when the scanned span produced no tokens at all (pure
// whitespace or end of input).
func (t *tokenizer) nextStatement(delimiter string) *Statement {
	var tokens Tokens
	for {
		if _, ok := t.captureFragment(delimiter, &tokens); !ok {
			break
		}
		if t.startsWith(delimiter) {
			// Delimiter confirmed: consume it fully and capture it.
			t.skipForward(utf8.RuneCountInString(delimiter) - 1)
			t.capture(&tokens, t.nextOffset, t.nextOffset, StatementDelimiter)
			break
		}
		// Stray closing parenthesis: emit it and keep scanning.
		t.capture(&tokens, t.nextOffset, t.nextOffset, Any)
	}

	if len(tokens) == 0 {
		return nil
	}
	return &Statement{input: t.input, tokens: tokens}
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isASCIIAlphanumeric(r rune) bool {
	return isASCIIDigit(r) || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
