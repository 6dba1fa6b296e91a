package editor

import (
	"os"
	"path/filepath"
	"testing"
)

// Save followed by Open of the same path yields a document whose
// chars sequence equals the original, row-for-row, and clears the
// dirty counter.
func TestSaveThenOpenRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roundtrip.txt")

	e := newTestEditor()
	e.filename = path
	e.InsertRow(0, []byte("first line"))
	e.InsertRow(1, []byte("second line"))
	e.InsertRow(2, []byte(""))

	e.Save()
	if e.Dirty() {
		t.Fatalf("Dirty() = true after Save()")
	}

	reopened := newTestEditor()
	if err := reopened.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if reopened.Dirty() {
		t.Errorf("Dirty() = true after Open()")
	}
	if len(reopened.rows) != len(e.rows) {
		t.Fatalf("NumRows() = %d, want %d", len(reopened.rows), len(e.rows))
	}
	for i := range e.rows {
		if string(reopened.rows[i].chars) != string(e.rows[i].chars) {
			t.Errorf("rows[%d] = %q, want %q", i, reopened.rows[i].chars, e.rows[i].chars)
		}
	}
}

func TestOpenStripsTrailingCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.txt")
	if err := os.WriteFile(path, []byte("a\r\nb\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	e := newTestEditor()
	if err := e.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(e.rows) != 2 {
		t.Fatalf("NumRows() = %d, want 2", len(e.rows))
	}
	if string(e.rows[0].chars) != "a" || string(e.rows[1].chars) != "b" {
		t.Errorf("rows = %q, %q; want \"a\", \"b\"", e.rows[0].chars, e.rows[1].chars)
	}
}

func TestOpenMissingFileReturnsError(t *testing.T) {
	e := newTestEditor()
	if err := e.Open(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatalf("Open() = nil error, want error for missing file")
	}
}

func TestSelectSyntaxOnOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.go")
	if err := os.WriteFile(path, []byte("package main\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	e := newTestEditor()
	if err := e.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if e.syntax == nil || e.syntax.Name != "go" {
		t.Errorf("syntax = %v, want go descriptor", e.syntax)
	}
}
