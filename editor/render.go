package editor

import (
	"fmt"
	"time"
)

// appendBuffer accumulates one render pass's output bytes so the
// whole frame can be flushed to the terminal in a single write.
type appendBuffer struct {
	b []byte
}

func (ab *appendBuffer) writeString(s string) {
	ab.b = append(ab.b, s...)
}

func (ab *appendBuffer) writeByte(c byte) {
	ab.b = append(ab.b, c)
}

// Scroll reconciles the viewport with the cursor so the cursor is
// visible. page, the search callback and Find also set rowOffset (and
// Find colOffset) directly; Scroll runs after them on every render.
func (e *Editor) Scroll() {
	e.rx = 0
	if e.cy < len(e.rows) {
		e.rx = e.rows[e.cy].CxToRx(e.cx)
	}

	if e.cy < e.rowOffset {
		e.rowOffset = e.cy
	}
	if e.cy >= e.rowOffset+e.screenRows {
		e.rowOffset = e.cy - e.screenRows + 1
	}
	if e.rx < e.colOffset {
		e.colOffset = e.rx
	}
	if e.rx >= e.colOffset+e.screenCols {
		e.colOffset = e.rx - e.screenCols + 1
	}

	if e.rowOffset < 0 {
		e.rowOffset = 0
	}
	if e.colOffset < 0 {
		e.colOffset = 0
	}
}

// RefreshScreen runs one full render pass and writes the single
// coalesced frame to the terminal's output.
func (e *Editor) RefreshScreen() {
	e.Scroll()

	var ab appendBuffer
	ab.writeString(ansiCursorHide)
	ab.writeString(ansiClearScreen)
	ab.writeString(ansiCursorHome)

	e.drawRows(&ab)
	e.drawStatusBar(&ab)
	e.drawMessageBar(&ab)

	ab.writeString(fmt.Sprintf(ansiCursorPosFmt, e.cy-e.rowOffset+1, e.rx-e.colOffset+1))
	ab.writeString(ansiCursorShow)

	e.term.Write(ab.b)
}

func (e *Editor) drawRows(ab *appendBuffer) {
	for y := 0; y < e.screenRows; y++ {
		filerow := y + e.rowOffset
		if filerow >= len(e.rows) {
			if len(e.rows) == 0 && y == e.screenRows/3 {
				e.drawWelcome(ab)
			} else {
				ab.writeByte('~')
			}
		} else {
			e.drawTextRow(ab, &e.rows[filerow])
		}
		ab.writeString(ansiClearLine)
		ab.writeString("\r\n")
	}
}

func (e *Editor) drawWelcome(ab *appendBuffer) {
	welcome := "vedit -- version " + version
	if len(welcome) > e.screenCols {
		welcome = welcome[:e.screenCols]
	}
	padding := (e.screenCols - len(welcome)) / 2
	if padding > 0 {
		ab.writeByte('~')
		padding--
	}
	for ; padding > 0; padding-- {
		ab.writeByte(' ')
	}
	ab.writeString(welcome)
}

func (e *Editor) drawTextRow(ab *appendBuffer, row *Row) {
	lineLen := clamp(len(row.render)-e.colOffset, 0, e.screenCols)
	if lineLen == 0 {
		return
	}
	start := e.colOffset
	currentColor := -1
	for j := 0; j < lineLen; j++ {
		c := row.render[start+j]
		h := row.hl[start+j]
		if h == HLNormal {
			if currentColor != -1 {
				ab.writeString(ansiFGDefault)
				currentColor = -1
			}
			ab.writeByte(c)
			continue
		}
		color := syntaxColor(h)
		if color != currentColor {
			currentColor = color
			ab.writeString(fmt.Sprintf(ansiFGFmt, color))
		}
		ab.writeByte(c)
	}
	ab.writeString(ansiFGDefault)
}

func syntaxColor(h HighlightTag) int {
	switch h {
	case HLComment:
		return 33 // yellow
	case HLKeywordStrong:
		return 34 // blue
	case HLKeywordRegular:
		return 35 // magenta
	case HLString:
		return 31 // red
	case HLNumber:
		return 36 // cyan
	case HLMatch:
		return 34 // blue
	default:
		return 39 // default
	}
}

func (e *Editor) drawStatusBar(ab *appendBuffer) {
	ab.writeString(ansiInverse)

	name := "[Unsaved File]"
	if e.filename != "" {
		name = e.filename
	}
	modified := ""
	if e.Dirty() {
		modified = "*modified"
	}
	left := fmt.Sprintf("%s - %d lines %s", name, len(e.rows), modified)
	if len(left) > e.screenCols {
		left = left[:e.screenCols]
	}

	filetype := "(unknown filetype)"
	if e.syntax != nil {
		filetype = e.syntax.Name
	}
	right := fmt.Sprintf("%s | %d/%d", filetype, e.cy+1, len(e.rows))

	ab.writeString(left)
	for n := len(left); n < e.screenCols; n++ {
		if e.screenCols-n == len(right) {
			ab.writeString(right)
			break
		}
		ab.writeByte(' ')
	}

	ab.writeString(ansiReset)
	ab.writeString("\r\n")
}

func (e *Editor) drawMessageBar(ab *appendBuffer) {
	ab.writeString(ansiClearLine)
	if e.statusMessage == "" {
		return
	}
	if time.Since(e.statusMessageTime) >= statusExpiry {
		return
	}
	msg := e.statusMessage
	if len(msg) > e.screenCols {
		msg = msg[:e.screenCols]
	}
	ab.writeString(msg)
}
