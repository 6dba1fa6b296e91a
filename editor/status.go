package editor

import (
	"fmt"
	"time"
)

// SetStatusMessage formats and stores the message-line text, stamping
// it so the render pass can let it expire after statusExpiry.
func (e *Editor) SetStatusMessage(format string, args ...any) {
	e.statusMessage = fmt.Sprintf(format, args...)
	e.statusMessageTime = time.Now()
}

// StatusMessage returns the current message-line text and whether it
// has not yet expired.
func (e *Editor) StatusMessage() (string, bool) {
	return e.statusMessage, time.Since(e.statusMessageTime) < statusExpiry
}
