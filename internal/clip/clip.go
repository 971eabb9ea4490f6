// Package clip copies share links to the system clipboard.
package clip

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable matches every *ClipboardUnavailableError.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

type ClipboardUnavailableError struct {
	Err error
}

func (e *ClipboardUnavailableError) Error() string {
	return fmt.Sprintf("%s: %v", ErrClipboardUnavailable, e.Err)
}

func (e *ClipboardUnavailableError) Unwrap() error { return e.Err }

func (e *ClipboardUnavailableError) Is(target error) bool { return target == ErrClipboardUnavailable }

// Clipboard writes text somewhere the user can paste it from.
type Clipboard interface {
	WriteAll(text string) error
}

// System is the OS clipboard (pbcopy, xclip/xsel/wl-copy, or the Windows API).
type System struct{}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard utility found")
	}
	return clipboard.WriteAll(text)
}

// Copy writes text to c. Any failure comes back as a
// *ClipboardUnavailableError; nothing is retried.
func Copy(c Clipboard, text string) error {
	if c == nil {
		return &ClipboardUnavailableError{Err: errors.New("no clipboard configured")}
	}
	if err := c.WriteAll(text); err != nil {
		var cue *ClipboardUnavailableError
		if errors.As(err, &cue) {
			return err
		}
		return &ClipboardUnavailableError{Err: err}
	}
	return nil
}

// Memory records the last copied text. Used where no OS clipboard exists.
type Memory struct {
	Text string
	Err  error
}

func (m *Memory) WriteAll(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Text = text
	return nil
}
