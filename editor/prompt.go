package editor

import "bytes"

// promptKeyKind tags the variants of key a Prompt callback can
// observe. Using an explicit tagged value here (rather than mutable
// package-level "awaitingArrow"/"lastArrow" flags) lets the search
// callback distinguish "navigate the match list" from "edit the
// query" without any state shared outside the prompt loop itself —
// arrow keys pressed during a prompt never reach the document's
// MoveCursor because the prompt loop, not the top-level dispatcher,
// owns the keystroke.
type promptKeyKind int

const (
	promptPrintable promptKeyKind = iota
	promptArrow
	promptEnter
	promptEscape
	promptBackspace
	promptOther
)

type promptKey struct {
	kind promptKeyKind
	b    byte // valid when kind == promptPrintable
	dir  int  // +1 or -1, valid when kind == promptArrow
}

func classifyPromptKey(key Key) promptKey {
	switch key {
	case keyDelete, keyBackspace, ctrlKey('h'):
		return promptKey{kind: promptBackspace}
	case keyEscape:
		return promptKey{kind: promptEscape}
	case '\r':
		return promptKey{kind: promptEnter}
	case keyArrowRight, keyArrowDown:
		return promptKey{kind: promptArrow, dir: 1}
	case keyArrowLeft, keyArrowUp:
		return promptKey{kind: promptArrow, dir: -1}
	}
	if key >= 0 && key < 128 && !isControl(byte(key)) {
		return promptKey{kind: promptPrintable, b: byte(key)}
	}
	return promptKey{kind: promptOther}
}

// promptCallback is invoked after every keystroke handled by Prompt,
// receiving the current query buffer and the tagged key that just
// arrived.
type promptCallback func(query []byte, key promptKey)

// Prompt displays template (containing one "%s") on the message line
// with the input appended, consuming keystrokes itself until Enter or
// Escape. It returns the committed input and true, or ("", false) if
// the prompt was cancelled. Enter on an empty input is ignored and
// the prompt keeps reading.
func (e *Editor) Prompt(template string, cb promptCallback) (string, bool) {
	buf := make([]byte, 0, 128)

	for {
		e.SetStatusMessage(template, string(buf))
		e.RefreshScreen()

		key, err := e.term.ReadKey()
		if err != nil {
			e.SetStatusMessage("read error: %v", err)
			continue
		}
		pk := classifyPromptKey(key)

		switch pk.kind {
		case promptBackspace:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
		case promptEscape:
			e.SetStatusMessage("")
			if cb != nil {
				cb(buf, pk)
			}
			return "", false
		case promptEnter:
			if len(buf) > 0 {
				e.SetStatusMessage("")
				if cb != nil {
					cb(buf, pk)
				}
				return string(buf), true
			}
			continue
		case promptPrintable:
			buf = append(buf, pk.b)
		}

		if cb != nil {
			cb(buf, pk)
		}
	}
}

// finder holds the incremental-search state machine's private state
// across Prompt callback invocations.
type finder struct {
	lastMatch  int // -1 = none
	direction  int // +1 forward, -1 backward
	savedHLRow int
	savedHL    []HighlightTag
}

func newFinder() *finder {
	return &finder{lastMatch: -1, direction: 1}
}

// restoreHighlight undoes the previous step's MATCH overwrite, if any.
func (f *finder) restoreHighlight(e *Editor) {
	if f.savedHL == nil {
		return
	}
	if f.savedHLRow < len(e.rows) {
		copy(e.rows[f.savedHLRow].hl, f.savedHL)
	}
	f.savedHL = nil
}

func (f *finder) callback(e *Editor) promptCallback {
	return func(query []byte, key promptKey) {
		f.restoreHighlight(e)

		switch key.kind {
		case promptEscape:
			f.lastMatch = -1
			f.direction = 1
			return
		case promptEnter:
			f.direction = 1
		case promptArrow:
			f.direction = key.dir
		default:
			f.lastMatch = -1
			f.direction = 1
		}

		if f.lastMatch == -1 {
			f.direction = 1
		}
		if len(e.rows) == 0 || len(query) == 0 {
			return
		}

		current := f.lastMatch
		for range e.rows {
			current += f.direction
			if current == -1 {
				current = len(e.rows) - 1
			} else if current == len(e.rows) {
				current = 0
			}

			row := &e.rows[current]
			match := bytes.Index(row.render, query)
			if match == -1 {
				continue
			}

			f.lastMatch = current
			e.cy = current
			e.cx = row.RxToCx(match)
			e.rowOffset = current

			f.savedHLRow = current
			f.savedHL = append([]HighlightTag(nil), row.hl...)
			for k := match; k < match+len(query) && k < len(row.hl); k++ {
				row.hl[k] = HLMatch
			}
			break
		}
	}
}

// Find opens the incremental search prompt. On cancel, the cursor and
// viewport are restored to their pre-search values.
func (e *Editor) Find() {
	savedCx, savedCy := e.cx, e.cy
	savedColOffset, savedRowOffset := e.colOffset, e.rowOffset

	f := newFinder()
	_, ok := e.Prompt("Search: %s (ESC to cancel | Arrows or Enter to search)", f.callback(e))

	if !ok {
		e.cx, e.cy = savedCx, savedCy
		e.colOffset, e.rowOffset = savedColOffset, savedRowOffset
	}
}
