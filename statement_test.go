package sqlscan

import (
	"strings"
	"testing"
)

func firstStatement(t *testing.T, sql string) *Statement {
	t.Helper()
	stmt := NewScanner(sql).Scan()
	if stmt == nil {
		t.Fatalf("input=%q: no statement produced", sql)
	}
	return stmt
}

func TestKeywords(t *testing.T) {
	stmt := firstStatement(t, "SELECT id, 'name' FROM users WHERE id = $1;")
	got := stmt.Keywords()
	want := []string{"SELECT", "id", "FROM", "users", "WHERE", "id"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("Keywords() = %v, want %v", got, want)
	}
}

func TestKeywordsSkipNestedFragments(t *testing.T) {
	// RETURNING only occurs inside the parentheses and must not surface in
	// the statement-level keyword view.
	stmt := firstStatement(t, "DELETE FROM t WHERE id IN (SELECT id FROM log RETURNING x)")
	for _, k := range stmt.Keywords() {
		if strings.EqualFold(k, "RETURNING") || strings.EqualFold(k, "SELECT") {
			t.Fatalf("nested keyword %q leaked into Keywords() = %v", k, stmt.Keywords())
		}
	}
	if stmt.IsQuery() {
		t.Fatalf("statement %q misdetected as query: RETURNING is nested", stmt.SQL())
	}
}

func TestIsQuery(t *testing.T) {
	cases := []struct {
		sql  string
		want bool
	}{
		{"SELECT * FROM t", true},
		{"select 1", true},
		{"SELECT * INTO archive FROM t", false},
		{"SHOW server_version", true},
		{"DESCRIBE t", true},
		{"EXPLAIN SELECT 1", true},
		{"VALUES (1), (2)", true},
		{"LIST databases", true},
		{"PRAGMA table_info(t)", true},
		{"WITH cte AS (SELECT 1) SELECT * FROM cte", true},
		{"WITH moved AS (DELETE FROM t) INSERT INTO u SELECT * FROM moved RETURNING id", true},
		{"INSERT INTO t VALUES (1)", false},
		{"INSERT INTO t VALUES (1) RETURNING id", true},
		{"UPDATE t SET x = 1", false},
		{"UPDATE t SET x = 1 RETURNING x", true},
		{"DELETE FROM t", false},
		{"DELETE FROM t RETURNING id", true},
		{"CREATE TABLE t (id int)", false},
		{"BEGIN", false},
		{"-- just a comment", false},
		{";", false},
	}
	for _, tc := range cases {
		stmt := firstStatement(t, tc.sql)
		if got := stmt.IsQuery(); got != tc.want {
			t.Fatalf("IsQuery(%q) = %v, want %v (keywords: %v)", tc.sql, got, tc.want, stmt.Keywords())
		}
	}
}

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		sql  string
		want bool
	}{
		{"SELECT 1;", false},
		{";", true},
		{"-- comment only", true},
		{"/* block */ -- and line\n;", true},
		{"/* block */ SELECT 1", false},
	}
	for _, tc := range cases {
		stmt := firstStatement(t, tc.sql)
		if got := stmt.IsEmpty(); got != tc.want {
			t.Fatalf("IsEmpty(%q) = %v, want %v", tc.sql, got, tc.want)
		}
	}
}

func TestStatementSQLIncludesDelimiter(t *testing.T) {
	s := NewScanner("SELECT /* one */ 1;SELECT 2")
	first := s.Scan()
	if first == nil || first.SQL() != "SELECT /* one */ 1;" {
		t.Fatalf("first statement = %v", first)
	}
	got := first.Tokens().Strings()
	want := []string{"SELECT", "/* one */", "1", ";"}
	if strings.Join(got, "\x00") != strings.Join(want, "\x00") {
		t.Fatalf("tokens = %q, want %q", got, want)
	}
	second := s.Scan()
	if second == nil || second.SQL() != "SELECT 2" {
		t.Fatalf("second statement = %v", second)
	}
}
