package sqlscan

import (
	"errors"
	"strings"
	"testing"
)

func TestPublicAPI(t *testing.T) {
	statements := SplitStatements("SELECT /* one */ 1;SELECT 2")
	if len(statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(statements))
	}
	got := statements[0].Tokens().Strings()
	want := []string{"SELECT", "/* one */", "1", ";"}
	if strings.Join(got, "\x00") != strings.Join(want, "\x00") {
		t.Fatalf("tokens = %q, want %q", got, want)
	}

	s, err := NewScannerWithOptions("SELECT /* one */ 1\\SELECT 2", Options{StatementDelimiter: `\`})
	if err != nil {
		t.Fatalf("NewScannerWithOptions: %v", err)
	}
	statements = s.ScanAll()
	if len(statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(statements))
	}
	got = statements[0].Tokens().Strings()
	want = []string{"SELECT", "/* one */", "1", `\`}
	if strings.Join(got, "\x00") != strings.Join(want, "\x00") {
		t.Fatalf("tokens = %q, want %q", got, want)
	}
}

func TestEmptyDelimiterRejected(t *testing.T) {
	if _, err := NewScannerWithOptions("SELECT 1", Options{}); !errors.Is(err, ErrEmptyDelimiter) {
		t.Fatalf("got err %v, want ErrEmptyDelimiter", err)
	}
	if err := DefaultOptions().Validate(); err != nil {
		t.Fatalf("default options must validate, got %v", err)
	}
}

// A multi-character delimiter takes precedence over the operator it overlaps
// with: with delimiter "::" the typecast operator can no longer be lexed.
func TestDelimiterShadowsOperator(t *testing.T) {
	s, err := NewScannerWithOptions("SELECT 1::SELECT 2", Options{StatementDelimiter: "::"})
	if err != nil {
		t.Fatal(err)
	}
	statements := s.ScanAll()
	if len(statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(statements))
	}
	first := statements[0].Tokens()
	last := first[len(first)-1]
	if last.Kind != StatementDelimiter || last.Text != "::" {
		t.Fatalf("last token %+v, want a :: StatementDelimiter", last)
	}
	if statements[1].SQL() != "SELECT 2" {
		t.Fatalf("second statement %q, want %q", statements[1].SQL(), "SELECT 2")
	}
}

func TestMultiCharacterDelimiter(t *testing.T) {
	s, err := NewScannerWithOptions("SELECT 1 // SELECT 2 //", Options{StatementDelimiter: "//"})
	if err != nil {
		t.Fatal(err)
	}
	statements := s.ScanAll()
	if len(statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(statements))
	}
	if statements[0].SQL() != "SELECT 1 //" {
		t.Fatalf("first statement %q", statements[0].SQL())
	}
}

func TestScanIsLazy(t *testing.T) {
	s := NewScanner("SELECT 1; SELECT 2; SELECT 3")
	stmt := s.Scan()
	if stmt == nil || stmt.SQL() != "SELECT 1;" {
		t.Fatalf("first Scan = %v", stmt)
	}
	// Abandoning the scanner here is safe; the statement already returned
	// stays valid.
	if stmt.Tokens()[0].Text != "SELECT" {
		t.Fatal("returned statement mutated after partial scan")
	}
}

func TestScanAfterExhaustion(t *testing.T) {
	s := NewScanner("SELECT 1")
	if s.Scan() == nil {
		t.Fatal("want one statement")
	}
	for i := 0; i < 3; i++ {
		if s.Scan() != nil {
			t.Fatal("Scan after exhaustion must keep returning nil")
		}
	}
}
