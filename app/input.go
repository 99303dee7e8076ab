package app

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"imgview/cmdline"
	"imgview/log"
)

const keyBufferSize = 64

var errKeySourceClosed = errors.New("key source closed")

// keyEvent maps a key press to what it means on the command line.
func keyEvent(msg tea.KeyMsg) cmdline.Event {
	switch msg.Type {
	case tea.KeyBackspace:
		return cmdline.Event{Action: cmdline.Backspace}
	case tea.KeyEnter, tea.KeyEsc:
		return cmdline.Event{Action: cmdline.LeaveMode}
	case tea.KeyRunes:
		return cmdline.Event{Action: cmdline.TextInput, Text: string(msg.Runes)}
	case tea.KeySpace:
		return cmdline.Event{Action: cmdline.TextInput, Text: " "}
	default:
		return cmdline.Event{Action: cmdline.Other}
	}
}

// keySource hands key presses received by Update to the command line reader
// running in its own goroutine.
type keySource struct {
	events chan cmdline.Event
	closed atomic.Bool
	// dropLog limits warnings about a full buffer. Only used from Update.
	dropLog *log.Every
}

func newKeySource() *keySource {
	return &keySource{
		events:  make(chan cmdline.Event, keyBufferSize),
		dropLog: log.NewEvery(time.Second),
	}
}

func (k *keySource) Acquire() (cmdline.Poller, error) {
	if k.closed.Load() {
		return nil, errKeySourceClosed
	}
	return k, nil
}

func (k *keySource) Poll() []cmdline.Event {
	var events []cmdline.Event
	for {
		select {
		case ev := <-k.events:
			events = append(events, ev)
		default:
			return events
		}
	}
}

func (k *keySource) push(ev cmdline.Event) {
	select {
	case k.events <- ev:
	default:
		if k.dropLog.ShouldLog() {
			log.WarningLog.Printf("dropped %s key event, reader is not keeping up", ev.Action)
		}
	}
}

// reset discards events left over from a previous command line.
func (k *keySource) reset() {
	k.Poll()
}

func (k *keySource) close() {
	k.closed.Store(true)
}

// lineUpdate is the command line as of one edit. seq identifies the read it
// belongs to.
type lineUpdate struct {
	seq  int
	line string
}

// lineDisplay publishes the command line to Update. Only the latest line is
// kept so the reader never blocks on a slow UI.
type lineDisplay struct {
	seq   int
	lines chan lineUpdate
}

func (d *lineDisplay) SetCommandLine(line string) {
	update := lineUpdate{seq: d.seq, line: line}
	for {
		select {
		case d.lines <- update:
			return
		default:
			select {
			case <-d.lines:
			default:
			}
		}
	}
}

// Render is a no-op: delivering the line to Update already redraws the screen.
func (d *lineDisplay) Render(bool) error {
	return nil
}

// commandLineMsg carries an edited command line into Update.
type commandLineMsg lineUpdate

// commandDoneMsg is sent when a read finishes.
type commandDoneMsg struct {
	seq  int
	line string
	err  error
}

func readCommandCmd(ctx context.Context, reader *cmdline.Reader, entry string, seq int) tea.Cmd {
	return func() tea.Msg {
		line, err := reader.Read(ctx, entry)
		return commandDoneMsg{seq: seq, line: line, err: err}
	}
}

func waitForCommandLine(ctx context.Context, lines <-chan lineUpdate) tea.Cmd {
	return func() tea.Msg {
		select {
		case update := <-lines:
			return commandLineMsg(update)
		case <-ctx.Done():
			return nil
		}
	}
}
