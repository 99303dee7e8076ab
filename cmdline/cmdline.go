// Package cmdline reads a single command line from an input source, publishing the
// partially typed text to a display after every edit.
package cmdline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// FrameInterval is how often the input source is polled while reading.
const FrameInterval = time.Second / 60

// ErrInputUnavailable is wrapped by Read when the input source cannot be acquired.
var ErrInputUnavailable = errors.New("input source unavailable")

// Action is what an input event means to the command line.
type Action int

const (
	Other Action = iota
	Backspace
	TextInput
	LeaveMode
)

func (a Action) String() string {
	switch a {
	case Backspace:
		return "backspace"
	case TextInput:
		return "text"
	case LeaveMode:
		return "leave"
	default:
		return "other"
	}
}

// Event is one input event. Text is only set for TextInput.
type Event struct {
	Action Action
	Text   string
}

// Poller drains the events that arrived since the previous call without blocking.
type Poller interface {
	Poll() []Event
}

// Source hands out a Poller for the duration of one read.
type Source interface {
	Acquire() (Poller, error)
}

// Display shows the command line being edited.
type Display interface {
	SetCommandLine(line string)
	Render(full bool) error
}

// Buffer holds the text typed since command mode was entered.
type Buffer struct {
	entry string
	text  string
}

// NewBuffer returns an empty buffer for a command line opened with entry.
func NewBuffer(entry string) *Buffer {
	return &Buffer{entry: entry}
}

func (b *Buffer) String() string {
	return b.text
}

// Apply edits the buffer according to ev. changed reports whether the text was
// modified and done whether reading should stop.
func (b *Buffer) Apply(ev Event) (changed, done bool) {
	switch ev.Action {
	case Backspace:
		if b.text == "" {
			// Erasing past the start cancels the command.
			return false, true
		}
		_, size := utf8.DecodeLastRuneInString(b.text)
		b.text = b.text[:len(b.text)-size]
		return true, false
	case TextInput:
		b.text += ev.Text
		// The key that opened command mode can show up as the first input.
		if b.entry != "" && strings.HasPrefix(b.text, b.entry) {
			b.text = b.text[len(b.entry):]
		}
		return true, false
	case LeaveMode:
		return false, true
	default:
		return false, false
	}
}

// Reader runs the command line input loop.
type Reader struct {
	source   Source
	display  Display
	interval time.Duration
}

// NewReader creates a Reader polling source once per FrameInterval.
func NewReader(source Source, display Display) *Reader {
	return &Reader{source: source, display: display, interval: FrameInterval}
}

// Read collects input until the user leaves command mode and returns the typed
// text. An empty result means the command was cancelled. Errors are fatal: the
// source could not be acquired, the display failed, or ctx was cancelled.
func (r *Reader) Read(ctx context.Context, entry string) (string, error) {
	poller, err := r.source.Acquire()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInputUnavailable, err)
	}

	buf := NewBuffer(entry)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		for _, ev := range poller.Poll() {
			changed, done := buf.Apply(ev)
			if done {
				return buf.String(), nil
			}
			if !changed {
				continue
			}
			r.display.SetCommandLine(buf.String())
			if err := r.display.Render(false); err != nil {
				return "", fmt.Errorf("failed to render command line: %w", err)
			}
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}
