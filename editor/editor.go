// Package editor implements the core state machine of a small VT100
// text editor: the row model, the rendering pipeline, the input
// decoder, syntax highlighting, and incremental search.
package editor

import "time"

// Config constants.
const (
	version      = "0.1.0"
	tabStop      = 8 // TAB_SPACES
	statusExpiry = 7 * time.Second
)

// Key is a logical key produced by the input decoder: either a literal
// byte (0..127) or one of the named constants below.
type Key int

// Special keys, offset well past any byte value so they never collide
// with a literal.
const (
	keyBackspace Key = 127
	keyEscape    Key = 27

	keyArrowLeft Key = iota + 1000
	keyArrowRight
	keyArrowUp
	keyArrowDown
	keyDelete
	keyHome
	keyEnd
	keyPageUp
	keyPageDown
)

func ctrlKey(c byte) Key {
	return Key(c & 0x1f)
}

// Editor owns the document, the cursor, the viewport, and the terminal.
// It is not safe for concurrent use: the program is strictly
// single-threaded, one event loop driving one Editor.
type Editor struct {
	cx, cy int // logical cursor: byte offset into chars, row index
	rx     int // rendered column, derived from cx via tab expansion

	rowOffset, colOffset   int
	screenRows, screenCols int

	rows     []Row
	dirty    int
	filename string
	syntax   *Syntax

	statusMessage     string
	statusMessageTime time.Time

	quitPending bool

	term *Terminal
}

// New constructs an Editor bound to the given Terminal. Call Init
// before the first RefreshScreen to size the viewport.
func New(t *Terminal) *Editor {
	return &Editor{term: t}
}

// Init probes the terminal for its current dimensions and resets all
// document and cursor state to an empty, unnamed buffer.
func (e *Editor) Init() error {
	rows, cols, err := e.term.GetWindowSize()
	if err != nil {
		return err
	}
	e.screenRows = rows - 2 // status bar + message line
	e.screenCols = cols

	e.cx, e.cy, e.rx = 0, 0, 0
	e.rowOffset, e.colOffset = 0, 0
	e.rows = nil
	e.dirty = 0
	e.filename = ""
	e.syntax = nil
	e.statusMessage = ""
	e.statusMessageTime = time.Time{}
	e.quitPending = false
	return nil
}

// Dirty reports whether the document has unsaved changes.
func (e *Editor) Dirty() bool { return e.dirty > 0 }

// NumRows is the number of rows currently in the document.
func (e *Editor) NumRows() int { return len(e.rows) }

// Tick reads one key and dispatches it. It returns quit=true once the
// editor should exit; restoring the terminal is left to the caller.
func (e *Editor) Tick() (quit bool, err error) {
	key, err := e.term.ReadKey()
	if err != nil {
		e.SetStatusMessage("read error: %v", err)
		return false, nil
	}
	return e.dispatch(key), nil
}

func (e *Editor) dispatch(key Key) (quit bool) {
	switch key {
	case '\r':
		e.InsertNewline()

	case ctrlKey('q'):
		if e.Dirty() && !e.quitPending {
			e.quitPending = true
			e.SetStatusMessage("WARNING: unsaved changes, press Ctrl-Q again to quit")
			return false
		}
		return true

	case ctrlKey('s'):
		e.Save()

	case ctrlKey('f'):
		e.Find()

	case ctrlKey('l'), keyEscape:
		// no-op

	case keyHome:
		e.cx = 0

	case keyEnd:
		if e.cy < len(e.rows) {
			e.cx = len(e.rows[e.cy].chars)
		}

	case keyBackspace, ctrlKey('h'), keyDelete:
		if key == keyDelete {
			e.MoveCursor(keyArrowRight)
		}
		e.DeleteChar()

	case keyPageUp, keyPageDown:
		e.page(key)

	case keyArrowLeft, keyArrowRight, keyArrowUp, keyArrowDown:
		e.MoveCursor(key)

	default:
		if key >= 0 && key < 128 && !isControl(byte(key)) {
			e.InsertChar(byte(key))
		}
	}

	e.quitPending = false
	return false
}

// page scrolls by one screenful. rowOffset is clamped to
// [0, max(0, N-1)] so paging near either end of a short document
// cannot overshoot.
func (e *Editor) page(key Key) {
	dir := keyArrowUp
	if key == keyPageUp {
		e.cy = e.rowOffset
		e.rowOffset -= e.screenRows
	} else {
		dir = keyArrowDown
		e.cy = min(e.rowOffset+e.screenRows-1, len(e.rows))
		e.rowOffset += e.screenRows
	}

	upperBound := len(e.rows) - 1
	if upperBound < 0 {
		upperBound = 0
	}
	e.rowOffset = clamp(e.rowOffset, 0, upperBound)

	for i := 0; i < e.screenRows; i++ {
		e.MoveCursor(dir)
	}
	e.Scroll()
}

// MoveCursor applies one of the four arrow keys to (cx, cy), then
// clamps cx to len(chars[cy]) if the move left it past the row's end.
func (e *Editor) MoveCursor(key Key) {
	switch key {
	case keyArrowLeft:
		if e.cx != 0 {
			e.cx--
		} else if e.cy > 0 {
			e.cy--
			e.cx = len(e.rows[e.cy].chars)
		}
	case keyArrowRight:
		if e.cy < len(e.rows) && e.cx < len(e.rows[e.cy].chars) {
			e.cx++
		} else if e.cy < len(e.rows) && e.cx == len(e.rows[e.cy].chars) {
			e.cy++
			e.cx = 0
		}
	case keyArrowUp:
		if e.cy > 0 {
			e.cy--
		}
	case keyArrowDown:
		if e.cy < len(e.rows) {
			e.cy++
		}
	}

	rowlen := 0
	if e.cy < len(e.rows) {
		rowlen = len(e.rows[e.cy].chars)
	}
	if e.cx > rowlen {
		e.cx = rowlen
	}
}

func isControl(c byte) bool {
	return c < 32 || c == 127
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
