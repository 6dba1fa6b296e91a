package editor

import (
	"os"
	"testing"
)

// silentTerminal feeds keystrokes from input and discards every
// RefreshScreen write, for driving Prompt/Find in tests without a
// real TTY.
func silentTerminal(t *testing.T, input []byte) *Terminal {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	if _, err := w.Write(input); err != nil {
		t.Fatalf("write: %v", err)
	}
	w.Close()

	devnull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("open devnull: %v", err)
	}
	t.Cleanup(func() { devnull.Close() })
	return &Terminal{in: r, out: devnull}
}

func TestPromptCommitsOnEnter(t *testing.T) {
	e := newTestEditor()
	e.term = silentTerminal(t, []byte("hi\r"))

	got, ok := e.Prompt("Query: %s", nil)
	if !ok {
		t.Fatalf("Prompt() ok = false, want true")
	}
	if got != "hi" {
		t.Errorf("Prompt() = %q, want %q", got, "hi")
	}
}

func TestPromptCancelsOnEscape(t *testing.T) {
	e := newTestEditor()
	e.term = silentTerminal(t, []byte("ab\x1b"))

	_, ok := e.Prompt("Query: %s", nil)
	if ok {
		t.Fatalf("Prompt() ok = true, want false after ESC")
	}
}

func TestPromptIgnoresEmptyEnter(t *testing.T) {
	e := newTestEditor()
	// Enter with an empty buffer is ignored; "x" then Enter commits.
	e.term = silentTerminal(t, []byte("\rx\r"))

	got, ok := e.Prompt("Query: %s", nil)
	if !ok || got != "x" {
		t.Fatalf("Prompt() = (%q, %v), want (\"x\", true)", got, ok)
	}
}

func TestPromptBackspaceTrims(t *testing.T) {
	e := newTestEditor()
	e.term = silentTerminal(t, []byte("abc\x7f\r")) // "abc" + DEL + Enter

	got, ok := e.Prompt("Query: %s", nil)
	if !ok || got != "ab" {
		t.Fatalf("Prompt() = (%q, %v), want (\"ab\", true)", got, ok)
	}
}

// In a 3-row buffer foo / bar / baz, search for "ba" then step
// forward through matches, each step saving and restoring hl. Enter
// shares the forward direction with Arrow-Down and walks one further
// step before the prompt commits.
func TestFindWalksMatchesAndRestoresHighlight(t *testing.T) {
	e := newTestEditor()
	e.InsertRow(0, []byte("foo"))
	e.InsertRow(1, []byte("bar"))
	e.InsertRow(2, []byte("baz"))

	// Type "ba" (matches row 1, "bar"), step forward once with
	// Arrow-Down to row 2 ("baz"), then Enter: one more forward step
	// wraps past "foo" back to "bar" before committing.
	e.term = silentTerminal(t, []byte("ba\x1b[B\r"))

	e.Find()

	if e.cy != 1 {
		t.Errorf("cy = %d, want 1 (wrapped forward to row \"bar\")", e.cy)
	}
	for i, tag := range e.rows[0].hl {
		if tag == HLMatch {
			t.Errorf("rows[0].hl[%d] = HLMatch, want restored to non-match", i)
		}
	}
	for i, tag := range e.rows[2].hl {
		if tag == HLMatch {
			t.Errorf("rows[2].hl[%d] = HLMatch, want restored after moving on", i)
		}
	}
	// The committed match's span stays marked until the next step or
	// edit re-derives it.
	for i := 0; i < 2; i++ {
		if e.rows[1].hl[i] != HLMatch {
			t.Errorf("rows[1].hl[%d] = %v, want HLMatch on the committed match", i, e.rows[1].hl[i])
		}
	}
}

func TestFindRestoresCursorOnCancel(t *testing.T) {
	e := newTestEditor()
	e.InsertRow(0, []byte("foo"))
	e.InsertRow(1, []byte("bar"))
	e.cx, e.cy = 1, 0

	e.term = silentTerminal(t, []byte("ba\x1b")) // type query, then ESC

	e.Find()

	if e.cx != 1 || e.cy != 0 {
		t.Errorf("cursor = (%d,%d), want (1,0) restored", e.cx, e.cy)
	}
}
