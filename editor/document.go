package editor

// InsertRow inserts a new row holding s at index at, clamping
// out-of-range indices to an append. The row's render/hl are derived
// and the syntax highlighter runs over it before the dirty counter is
// bumped.
func (e *Editor) InsertRow(at int, s []byte) {
	if at < 0 || at > len(e.rows) {
		at = len(e.rows)
	}
	row := newRow(append([]byte(nil), s...))

	e.rows = append(e.rows, Row{})
	copy(e.rows[at+1:], e.rows[at:])
	e.rows[at] = row

	e.highlightRow(at)
	e.dirty++
}

// DeleteRow removes the row at index at, shifting subsequent rows
// down by one. Out-of-range indices are a no-op.
func (e *Editor) DeleteRow(at int) {
	if at < 0 || at >= len(e.rows) {
		return
	}
	e.rows = append(e.rows[:at], e.rows[at+1:]...)
	e.dirty++
}

// InsertChar inserts byte c at the cursor, appending an empty row
// first if the cursor sits one past the last row.
func (e *Editor) InsertChar(c byte) {
	if e.cy == len(e.rows) {
		e.InsertRow(len(e.rows), nil)
	}
	e.rows[e.cy].insertChar(e.cx, c)
	e.highlightRow(e.cy)
	e.cx++
	e.dirty++
}

// InsertNewline splits the current row at cx, or inserts an empty row
// above it when cx is 0, then moves the cursor to the start of the
// new row.
func (e *Editor) InsertNewline() {
	if e.cx == 0 {
		e.InsertRow(e.cy, nil)
	} else {
		row := &e.rows[e.cy]
		suffix := append([]byte(nil), row.chars[e.cx:]...)
		e.InsertRow(e.cy+1, suffix)

		row = &e.rows[e.cy]
		row.chars = row.chars[:e.cx]
		row.updateRender()
		e.highlightRow(e.cy)
	}
	e.cy++
	e.cx = 0
	e.dirty++
}

// DeleteChar deletes the byte before the cursor, or merges the
// current row into the previous one when cx is 0. At (0, 0) it is a
// no-op.
func (e *Editor) DeleteChar() {
	if e.cy == len(e.rows) {
		return
	}
	if e.cx == 0 && e.cy == 0 {
		return
	}

	row := &e.rows[e.cy]
	if e.cx > 0 {
		row.deleteChar(e.cx - 1)
		e.highlightRow(e.cy)
		e.cx--
	} else {
		e.cx = len(e.rows[e.cy-1].chars)
		e.rows[e.cy-1].appendBytes(row.chars)
		e.highlightRow(e.cy - 1)
		e.DeleteRow(e.cy)
		e.cy--
	}
	e.dirty++
}

// RowsToString serializes the document: each row's chars joined by
// "\n", with a trailing newline after the last row.
func (e *Editor) RowsToString() []byte {
	total := 0
	for _, r := range e.rows {
		total += len(r.chars) + 1
	}
	buf := make([]byte, 0, total)
	for _, r := range e.rows {
		buf = append(buf, r.chars...)
		buf = append(buf, '\n')
	}
	return buf
}
