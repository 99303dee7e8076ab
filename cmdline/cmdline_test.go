package cmdline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPoller returns one batch per Poll call, then nothing.
type scriptedPoller struct {
	batches [][]Event
	polls   int
}

func (p *scriptedPoller) Poll() []Event {
	p.polls++
	if len(p.batches) == 0 {
		return nil
	}
	batch := p.batches[0]
	p.batches = p.batches[1:]
	return batch
}

type fakeSource struct {
	poller *scriptedPoller
	err    error
}

func (s *fakeSource) Acquire() (Poller, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.poller, nil
}

type recordingDisplay struct {
	lines     []string
	renders   int
	renderErr error
}

func (d *recordingDisplay) SetCommandLine(line string) { d.lines = append(d.lines, line) }

func (d *recordingDisplay) Render(full bool) error {
	d.renders++
	return d.renderErr
}

func text(s string) Event { return Event{Action: TextInput, Text: s} }

var (
	backspace = Event{Action: Backspace}
	leave     = Event{Action: LeaveMode}
	other     = Event{Action: Other}
)

func TestBufferApply(t *testing.T) {
	tests := []struct {
		name     string
		entry    string
		events   []Event
		want     string
		wantDone bool
	}{
		{name: "typing", entry: ":", events: []Event{text("n"), text("g")}, want: "ng"},
		{name: "leaked entry character is stripped", entry: ":", events: []Event{text(":"), text("q")}, want: "q"},
		{name: "entry inside text is kept", entry: ":", events: []Event{text("a"), text(":")}, want: "a:"},
		{name: "slash entry", entry: "/", events: []Event{text("/"), text("sort")}, want: "sort"},
		{name: "backspace removes last character", entry: ":", events: []Event{text("ab"), backspace}, want: "a"},
		{name: "backspace removes whole rune", entry: ":", events: []Event{text("aé"), backspace}, want: "a"},
		{name: "backspace on empty cancels", entry: ":", events: []Event{backspace}, want: "", wantDone: true},
		{name: "backspace after erasing everything cancels", entry: ":", events: []Event{text("a"), backspace, backspace}, want: "", wantDone: true},
		{name: "leave keeps text", entry: ":", events: []Event{text("q"), leave}, want: "q", wantDone: true},
		{name: "other is ignored", entry: ":", events: []Event{text("q"), other}, want: "q"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewBuffer(tt.entry)
			var done bool
			for _, ev := range tt.events {
				_, done = buf.Apply(ev)
				if done {
					break
				}
			}
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, tt.wantDone, done)
		})
	}
}

func TestBufferApplyReportsChanges(t *testing.T) {
	buf := NewBuffer(":")
	changed, _ := buf.Apply(other)
	assert.False(t, changed)
	changed, _ = buf.Apply(text("x"))
	assert.True(t, changed)
	changed, done := buf.Apply(leave)
	assert.False(t, changed)
	assert.True(t, done)
}

func newTestReader(source Source, display Display) *Reader {
	r := NewReader(source, display)
	r.interval = time.Millisecond
	return r
}

func TestReaderRead(t *testing.T) {
	poller := &scriptedPoller{batches: [][]Event{
		{text(":"), text("d")},
		nil,
		{text("f"), other, text(" /tmp"), backspace},
		{leave, text("ignored")},
	}}
	display := &recordingDisplay{}

	got, err := newTestReader(&fakeSource{poller: poller}, display).Read(context.Background(), ":")
	require.NoError(t, err)
	assert.Equal(t, "df /tm", got)
	// One publish per edit, none for the ignored event.
	assert.Equal(t, []string{"", "d", "df", "df /tmp", "df /tm"}, display.lines)
	assert.Equal(t, 5, display.renders)
	assert.Equal(t, 4, poller.polls)
}

func TestReaderCancel(t *testing.T) {
	poller := &scriptedPoller{batches: [][]Event{{text("x"), backspace}, {backspace, text("y")}}}
	display := &recordingDisplay{}

	got, err := newTestReader(&fakeSource{poller: poller}, display).Read(context.Background(), ":")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, []string{"x", ""}, display.lines)
}

func TestReaderSourceUnavailable(t *testing.T) {
	cause := errors.New("no terminal")
	_, err := newTestReader(&fakeSource{err: cause}, &recordingDisplay{}).Read(context.Background(), ":")
	assert.ErrorIs(t, err, ErrInputUnavailable)
	assert.Contains(t, err.Error(), "no terminal")
}

func TestReaderRenderFailure(t *testing.T) {
	poller := &scriptedPoller{batches: [][]Event{{text("q")}}}
	display := &recordingDisplay{renderErr: errors.New("screen gone")}

	_, err := newTestReader(&fakeSource{poller: poller}, display).Read(context.Background(), ":")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "screen gone")
}

func TestReaderContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestReader(&fakeSource{poller: &scriptedPoller{}}, &recordingDisplay{}).Read(ctx, ":")
	assert.ErrorIs(t, err, context.Canceled)
}
