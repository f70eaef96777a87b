package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTokensRendersTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig

	if err := Tokens(&buf, &cfg, "SELECT 1;", 80, false); err != nil {
		t.Fatalf("Tokens failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"> SELECT 1;",
		"query: yes",
		"empty: no",
		"START   |     END    | TOKEN",
		"1:1",
		"SELECT",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestTokensIndentsFragments(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig

	if err := Tokens(&buf, &cfg, "SELECT (1 + 2)", 80, false); err != nil {
		t.Fatalf("Tokens failed: %v", err)
	}

	// leaf tokens inside the parenthesized fragment are indented by two
	var indented bool
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasSuffix(line, "|   1") {
			indented = true
		}
	}
	if !indented {
		t.Errorf("expected fragment contents to be indented, got:\n%s", buf.String())
	}
}

func TestTokensTruncatesWideTokens(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig
	long := "SELECT '" + strings.Repeat("x", 200) + "'"

	if err := Tokens(&buf, &cfg, long, 40, false); err != nil {
		t.Fatalf("Tokens failed: %v", err)
	}
	if !strings.Contains(buf.String(), "...") {
		t.Errorf("expected long token to be truncated with ellipsis, got:\n%s", buf.String())
	}
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "|") && len(line) > 40 {
			t.Errorf("expected table rows at most 40 columns, got %d: %q", len(line), line)
		}
	}
}

func TestTokensJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig

	if err := Tokens(&buf, &cfg, "SELECT 1; INSERT INTO t DEFAULT VALUES;", 80, true); err != nil {
		t.Fatalf("Tokens failed: %v", err)
	}

	var views []statementView
	if err := json.Unmarshal(buf.Bytes(), &views); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(views))
	}
	if !views[0].IsQuery || views[1].IsQuery {
		t.Errorf("expected query flags [true false], got [%v %v]", views[0].IsQuery, views[1].IsQuery)
	}
	if len(views[0].Tokens) == 0 {
		t.Error("expected token tree in JSON output")
	}
}

func TestSplitNumbersStatements(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig

	sql := "SELECT 1;\n\n-- lone comment\n;\nSELECT 2;"
	if err := Split(&buf, &cfg, sql, false); err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "-- statement 1 (1:1)") {
		t.Errorf("expected first statement header, got:\n%s", out)
	}
	if !strings.Contains(out, "-- statement 2 (5:1)") {
		t.Errorf("expected second statement header, got:\n%s", out)
	}
	if strings.Contains(out, "statement 3") {
		t.Errorf("expected the comment-only statement to be skipped, got:\n%s", out)
	}
}

func TestSplitJSONIncludesEmptyStatements(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig

	if err := Split(&buf, &cfg, "SELECT 1;;", true); err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	var views []statementView
	if err := json.Unmarshal(buf.Bytes(), &views); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(views))
	}
	if !views[1].IsEmpty {
		t.Error("expected second statement to be empty")
	}
}

func TestTokensDemoScript(t *testing.T) {
	sql, err := os.ReadFile(filepath.Join("..", "..", "testdata", "demo.sql"))
	if err != nil {
		t.Fatalf("failed to read demo script: %v", err)
	}

	var buf bytes.Buffer
	cfg := DefaultConfig
	if err := Tokens(&buf, &cfg, string(sql), 120, true); err != nil {
		t.Fatalf("Tokens failed: %v", err)
	}

	var views []statementView
	if err := json.Unmarshal(buf.Bytes(), &views); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	// table, comment+insert, function, select
	if len(views) != 4 {
		t.Fatalf("expected 4 statements in demo script, got %d", len(views))
	}
	if !views[3].IsQuery {
		t.Error("expected final statement to be a query")
	}
	if !strings.Contains(views[2].SQL, "$body$") {
		t.Errorf("expected dollar-quoted body to survive splitting, got %q", views[2].SQL)
	}
}

func TestSplitCustomDelimiter(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig
	cfg.Delimiter = "//"

	if err := Split(&buf, &cfg, "SELECT 1 // SELECT 2", false); err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if !strings.Contains(buf.String(), "statement 2") {
		t.Errorf("expected two statements with custom delimiter, got:\n%s", buf.String())
	}
}
