package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgview/cmdline"
	"imgview/session"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestHome(t *testing.T, s *session.Session) *home {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	m := newHome(ctx, s)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	return m
}

func isQuit(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHomeNavigation(t *testing.T) {
	m := newTestHome(t, newTestSession("a", "b", "c"))

	m.Update(runeKey("j"))
	assert.Equal(t, 1, m.session.Index())
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.session.Index())
	m.Update(runeKey("j"))
	assert.Equal(t, 0, m.session.Index())
	m.Update(runeKey("G"))
	assert.Equal(t, 2, m.session.Index())
	m.Update(runeKey("k"))
	assert.Equal(t, 1, m.session.Index())
	m.Update(runeKey("g"))
	assert.Equal(t, 0, m.session.Index())
}

func TestHomeCommandMessages(t *testing.T) {
	m := newTestHome(t, newTestSession("a", "b", "c"))

	_, cmd := m.Update(runeKey(":"))
	require.NotNil(t, cmd)
	assert.True(t, m.reading)
	assert.Equal(t, ModeCommand, m.controller.Mode().Kind)

	// While reading, keys go to the reader instead of moving the selection.
	m.Update(runeKey("j"))
	assert.Equal(t, 0, m.session.Index())
	assert.Equal(t, []cmdline.Event{{Action: cmdline.TextInput, Text: "j"}}, m.keys.Poll())

	m.Update(commandLineMsg{seq: m.seq, line: "r"})
	assert.Equal(t, Mode{Kind: ModeCommand, Text: "r"}, m.controller.Mode())
	assert.Contains(t, m.View(), ":r")

	// Updates from an older read are ignored.
	m.Update(commandLineMsg{seq: m.seq - 1, line: "stale"})
	assert.Equal(t, "r", m.controller.Mode().Text)
	m.Update(commandDoneMsg{seq: m.seq - 1, line: "q"})
	assert.True(t, m.reading)

	_, cmd = m.Update(commandDoneMsg{seq: m.seq, line: "r"})
	assert.Nil(t, cmd)
	assert.False(t, m.reading)
	assert.Equal(t, ModeNormal, m.controller.Mode().Kind)
	assert.Equal(t, []string{"c", "b", "a"}, m.session.Images())
}

func TestHomeErrorClearsOnNextKey(t *testing.T) {
	m := newTestHome(t, newTestSession("a", "b", "c"))

	m.Update(runeKey("/"))
	m.Update(commandDoneMsg{seq: m.seq, line: "bogus"})
	assert.Equal(t, ModeError, m.controller.Mode().Kind)
	assert.Contains(t, m.View(), `no such command "bogus"`)

	m.Update(runeKey("j"))
	assert.Equal(t, ModeNormal, m.controller.Mode().Kind)
	assert.Equal(t, 1, m.session.Index(), "the key is handled after clearing the error")
}

func TestHomeQuit(t *testing.T) {
	t.Run("command", func(t *testing.T) {
		m := newTestHome(t, newTestSession("a"))
		m.Update(runeKey(":"))
		_, cmd := m.Update(commandDoneMsg{seq: m.seq, line: "q"})
		isQuit(t, cmd)
		assert.NoError(t, m.err)
		assert.Empty(t, m.View())
	})

	t.Run("key", func(t *testing.T) {
		m := newTestHome(t, newTestSession("a"))
		_, cmd := m.Update(runeKey("q"))
		isQuit(t, cmd)
	})

	t.Run("ctrl+c while reading", func(t *testing.T) {
		m := newTestHome(t, newTestSession("a"))
		m.Update(runeKey(":"))
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		isQuit(t, cmd)
		_, err := m.keys.Acquire()
		assert.Error(t, err)
	})

	t.Run("fatal input error", func(t *testing.T) {
		m := newTestHome(t, newTestSession("a"))
		m.Update(runeKey(":"))
		_, cmd := m.Update(commandDoneMsg{seq: m.seq, err: cmdline.ErrInputUnavailable})
		isQuit(t, cmd)
		assert.ErrorIs(t, m.err, cmdline.ErrInputUnavailable)
		assert.Equal(t, ModeExit, m.controller.Mode().Kind)
	})
}

func TestHomeHelp(t *testing.T) {
	m := newTestHome(t, newTestSession("a", "b"))

	m.Update(runeKey("?"))
	assert.True(t, m.controller.HelpVisible())
	view := m.View()
	assert.Contains(t, view, "Commands:")
	assert.Contains(t, view, ":ng/:newglob <glob>")

	// Any key closes the help screen without acting.
	m.Update(runeKey("j"))
	assert.False(t, m.controller.HelpVisible())
	assert.Equal(t, 0, m.session.Index())
}

func TestHomeKeep(t *testing.T) {
	root := t.TempDir()
	image := filepath.Join(root, "a.png")
	require.NoError(t, os.WriteFile(image, []byte("png"), 0644))
	s := session.New(session.Options{Images: []string{image}, BaseDir: root})

	m := newTestHome(t, s)
	_, cmd := m.Update(runeKey("K"))
	require.NotNil(t, cmd)

	kept := filepath.Join(root, "keep", "a.png")
	assert.FileExists(t, kept)
	assert.Contains(t, m.status, kept)

	// The status clears only for the latest message.
	m.Update(hideStatusMsg{seq: m.statusSeq - 1})
	assert.NotEmpty(t, m.status)
	m.Update(hideStatusMsg{seq: m.statusSeq})
	assert.Empty(t, m.status)
}

func TestHomeKeepWithoutImages(t *testing.T) {
	m := newTestHome(t, newTestSession())
	_, cmd := m.Update(runeKey("K"))
	assert.Nil(t, cmd)
	assert.Equal(t, Mode{Kind: ModeError, Text: errNoImage.Error()}, m.controller.Mode())
	assert.Contains(t, m.View(), "no images")
}

// TestHomeReadsCommandLine runs the reader goroutine against the key source the
// way the bubbletea program does.
func TestHomeReadsCommandLine(t *testing.T) {
	m := newTestHome(t, newTestSession("a", "b", "c"))

	_, cmd := m.Update(runeKey(":"))
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)

	msgs := make(chan tea.Msg, len(batch))
	for _, c := range batch {
		go func() { msgs <- c() }()
	}

	m.Update(runeKey("r"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	deadline := time.After(5 * time.Second)
	for m.reading {
		select {
		case msg := <-msgs:
			m.Update(msg)
		case <-deadline:
			t.Fatal("command line was never finished")
		}
	}
	assert.Equal(t, []string{"c", "b", "a"}, m.session.Images())
	assert.Equal(t, ModeNormal, m.controller.Mode().Kind)
}

// Edits published right before a read finished must not cost the next read its
// live command line.
func TestHomeLeftoverLineKeepsNextReadLive(t *testing.T) {
	t.Run("stale line during a read", func(t *testing.T) {
		m := newTestHome(t, newTestSession("a", "b", "c"))

		m.Update(runeKey(":"))
		m.Update(commandDoneMsg{seq: m.seq, line: "ab"})
		_, cmd := m.Update(commandLineMsg{seq: m.seq, line: "a"})
		assert.Nil(t, cmd)

		m.Update(runeKey(":"))
		require.True(t, m.reading)
		_, cmd = m.Update(commandLineMsg{seq: m.seq - 1, line: "ab"})
		require.NotNil(t, cmd, "the current read still needs a listener")
		assert.True(t, m.waiting)
		assert.Empty(t, m.controller.Mode().Text)

		(&lineDisplay{seq: m.seq, lines: m.lines}).SetCommandLine("sort")
		m.Update(cmd())
		assert.Equal(t, Mode{Kind: ModeCommand, Text: "sort"}, m.controller.Mode())
	})

	t.Run("leftover line is discarded on entry", func(t *testing.T) {
		m := newTestHome(t, newTestSession("a", "b", "c"))

		m.Update(runeKey(":"))
		m.Update(commandDoneMsg{seq: m.seq, line: "ab"})
		m.Update(commandLineMsg{seq: m.seq, line: "a"})
		require.False(t, m.waiting)
		m.lines <- lineUpdate{seq: m.seq, line: "ab"}

		m.Update(runeKey(":"))
		assert.Empty(t, m.lines)
		assert.True(t, m.waiting)
	})
}
