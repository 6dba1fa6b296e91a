package editor

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrTerminalSizeUnavailable is returned when neither the ioctl path
// nor the cursor-position-report fallback can determine the window
// size.
var ErrTerminalSizeUnavailable = errors.New("terminal size unavailable")

// Terminal is the thin platform shim: raw-mode acquisition/restoration
// and byte I/O against stdin/stdout.
type Terminal struct {
	in, out  *os.File
	original *term.State
}

// NewTerminal binds a Terminal to the process's standard streams.
func NewTerminal() *Terminal {
	return &Terminal{in: os.Stdin, out: os.Stdout}
}

// EnableRawMode puts stdin into raw mode (no echo, no canonical line
// buffering, 8-bit clean), saving the original attributes so they can
// be restored on any exit path.
func (t *Terminal) EnableRawMode() error {
	if !term.IsTerminal(int(t.in.Fd())) {
		return errors.New("stdin is not a terminal")
	}
	fd := int(t.in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enabling raw mode: %w", err)
	}
	t.original = state

	// MakeRaw leaves reads blocking (VMIN=1). Reads must instead time
	// out after 100ms so an incomplete escape sequence collapses to a
	// bare Escape instead of hanging the decoder.
	raw, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		t.RestoreTerminal()
		return fmt.Errorf("enabling raw mode: %w", err)
	}
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, raw); err != nil {
		t.RestoreTerminal()
		return fmt.Errorf("enabling raw mode: %w", err)
	}
	return nil
}

// RestoreTerminal restores the attributes saved by EnableRawMode. Safe
// to call more than once; only the first call has an effect.
func (t *Terminal) RestoreTerminal() {
	if t.original == nil {
		return
	}
	term.Restore(int(t.in.Fd()), t.original)
	t.original = nil
}

// Write emits one coalesced render-pass buffer.
func (t *Terminal) Write(b []byte) {
	t.out.Write(b)
}

// GetWindowSize reports the current terminal size as (rows, cols).
// Primary path: a direct TIOCGWINSZ ioctl. Fallback, when the ioctl
// fails or reports zero columns: push the cursor to the bottom-right
// corner and query its resulting position via the CPR escape
// sequence.
func (t *Terminal) GetWindowSize() (rows, cols int, err error) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err == nil && ws.Col != 0 {
		return int(ws.Row), int(ws.Col), nil
	}

	if _, werr := t.out.WriteString(ansiCursorToBottomRight); werr != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrTerminalSizeUnavailable, werr)
	}
	rows, cols, err = t.queryCursorPosition()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrTerminalSizeUnavailable, err)
	}
	return rows, cols, nil
}

// queryCursorPosition writes the CPR query and parses the terminal's
// reply of the form ESC [ rows ; cols R, read one byte at a time from
// stdin (already in raw mode).
func (t *Terminal) queryCursorPosition() (rows, cols int, err error) {
	if _, err := t.out.WriteString(ansiCursorPosQuery); err != nil {
		return 0, 0, err
	}

	var buf [32]byte
	n := 0
	one := make([]byte, 1)
	for n < len(buf)-1 {
		nread, err := t.in.Read(one)
		if nread != 1 || err != nil {
			break
		}
		buf[n] = one[0]
		if one[0] == 'R' {
			n++
			break
		}
		n++
	}

	if n < 2 || buf[0] != '\x1b' || buf[1] != '[' {
		return 0, 0, errors.New("malformed cursor position response")
	}
	if _, err := fmt.Sscanf(string(buf[2:n]), "%d;%d", &rows, &cols); err != nil {
		return 0, 0, err
	}
	return rows, cols, nil
}

// ReadKey reads one byte from stdin and decodes it (and, for ESC,
// whatever follow-up bytes complete a recognized escape sequence)
// into a logical Key. A partial escape sequence that fails to
// complete yields keyEscape without blocking.
func (t *Terminal) ReadKey() (Key, error) {
	c, err := t.readByte()
	if err != nil {
		return 0, err
	}
	if c != '\x1b' {
		return Key(c), nil
	}

	seq0, ok := t.tryReadByte()
	if !ok {
		return keyEscape, nil
	}
	seq1, ok := t.tryReadByte()
	if !ok {
		return keyEscape, nil
	}

	switch seq0 {
	case '[':
		if seq1 >= '0' && seq1 <= '9' {
			seq2, ok := t.tryReadByte()
			if !ok || seq2 != '~' {
				return keyEscape, nil
			}
			switch seq1 {
			case '1', '7':
				return keyHome, nil
			case '3':
				return keyDelete, nil
			case '4', '8':
				return keyEnd, nil
			case '5':
				return keyPageUp, nil
			case '6':
				return keyPageDown, nil
			}
			return keyEscape, nil
		}
		switch seq1 {
		case 'A':
			return keyArrowUp, nil
		case 'B':
			return keyArrowDown, nil
		case 'C':
			return keyArrowRight, nil
		case 'D':
			return keyArrowLeft, nil
		case 'H':
			return keyHome, nil
		case 'F':
			return keyEnd, nil
		}
	case 'O':
		switch seq1 {
		case 'H':
			return keyHome, nil
		case 'F':
			return keyEnd, nil
		}
	}
	return keyEscape, nil
}

func (t *Terminal) readByte() (byte, error) {
	buf := make([]byte, 1)
	for {
		n, err := t.in.Read(buf)
		if n == 1 {
			return buf[0], nil
		}
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("reading input: %w", err)
		}
		// With VMIN=0/VTIME=1 a timed-out read surfaces as a zero-byte
		// io.EOF; go back to the read until a byte arrives.
	}
}

// tryReadByte reads one byte, treating any error or short read as "no
// further bytes arrived" rather than propagating an error: an
// incomplete escape sequence silently collapses to a bare Escape.
func (t *Terminal) tryReadByte() (byte, bool) {
	buf := make([]byte, 1)
	n, err := t.in.Read(buf)
	if n != 1 || err != nil {
		return 0, false
	}
	return buf[0], true
}
