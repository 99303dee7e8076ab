package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"imgview/cmdline"
	"imgview/imageset"
	"imgview/keys"
	"imgview/log"
	"imgview/session"
	"imgview/ui"
	"imgview/ui/overlay"
)

// statusTimeout is how long a status message stays on screen.
const statusTimeout = 3 * time.Second

var errNoImage = errors.New("no image selected")

// Run is the main entrypoint into the application. It returns when the user
// quits or command input fails fatally.
func Run(ctx context.Context, s *session.Session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newHome(ctx, s), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(*home); ok && m.err != nil {
		return m.err
	}
	return nil
}

type home struct {
	ctx context.Context

	// -- State --

	controller *Controller
	session    *session.Session

	// keys feeds key presses to the command line reader while reading is true.
	keys    *keySource
	reading bool
	// lines carries command line edits back from the reader.
	lines chan lineUpdate
	// waiting is true while a waitForCommandLine command is outstanding.
	waiting bool
	// seq numbers command line reads so late messages from an old read are ignored.
	seq int

	// status is a transient confirmation shown in the info bar.
	status    string
	statusSeq int

	// err is the fatal error the program stopped with.
	err error

	// -- UI Components --

	list        *ui.List
	infoBar     *ui.InfoBar
	helpOverlay *overlay.TextOverlay

	width, height int
}

func newHome(ctx context.Context, s *session.Session) *home {
	m := &home{
		ctx:        ctx,
		controller: NewController(s),
		session:    s,
		keys:       newKeySource(),
		lines:      make(chan lineUpdate, 1),
		list:       ui.NewList(),
		infoBar:    ui.NewInfoBar(),
	}
	m.helpOverlay = overlay.NewTextOverlay(helpContent())
	m.helpOverlay.OnDismiss = m.controller.HideHelp
	return m
}

// updateHandleWindowSizeEvent sets the sizes of the components.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	// The info bar takes the last row.
	m.list.SetSize(msg.Width, max(msg.Height-1, 1))
	m.infoBar.SetWidth(msg.Width)
	m.helpOverlay.SetWidth(min(msg.Width-4, 90))
}

func (m *home) Init() tea.Cmd {
	return tea.SetWindowTitle("imgview")
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case commandLineMsg:
		m.waiting = false
		if !m.reading {
			return m, nil
		}
		// A line left over from an earlier read is skipped, but the current
		// read still needs a listener.
		if msg.seq == m.seq {
			m.controller.SetCommandLine(msg.line)
		}
		m.waiting = true
		return m, waitForCommandLine(m.ctx, m.lines)
	case commandDoneMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m.handleCommandDone(msg)
	case hideStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}
	return m, nil
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.handleQuit()
	}

	if m.reading {
		m.keys.push(keyEvent(msg))
		return m, nil
	}

	if m.controller.HelpVisible() {
		m.helpOverlay.HandleKeyPress(msg)
		return m, nil
	}

	// An error stays up until the next key, which is then handled normally.
	m.controller.Acknowledge()

	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return m, nil
	}

	switch name {
	case keys.KeyNext:
		m.session.Next()
	case keys.KeyPrev:
		m.session.Prev()
	case keys.KeyFirst:
		m.session.First()
	case keys.KeyLast:
		m.session.Last()
	case keys.KeyCommand:
		return m, m.enterCommandMode(msg.String())
	case keys.KeyHelp:
		m.controller.ToggleHelp()
	case keys.KeyKeep:
		return m, m.keepCurrent()
	case keys.KeyYank:
		return m, m.yankCurrent()
	case keys.KeyQuit:
		return m.handleQuit()
	case keys.KeyEsc:
	}
	return m, nil
}

// enterCommandMode starts reading a command line in the background.
func (m *home) enterCommandMode(entry string) tea.Cmd {
	if !m.controller.Enter(entry) {
		return nil
	}
	m.seq++
	m.reading = true
	m.keys.reset()
	if !m.waiting {
		// Nobody else receives from lines, so edits of a finished read can go.
		select {
		case <-m.lines:
		default:
		}
	}

	reader := cmdline.NewReader(m.keys, &lineDisplay{seq: m.seq, lines: m.lines})
	cmds := []tea.Cmd{readCommandCmd(m.ctx, reader, entry, m.seq)}
	if !m.waiting {
		m.waiting = true
		cmds = append(cmds, waitForCommandLine(m.ctx, m.lines))
	}
	return tea.Batch(cmds...)
}

func (m *home) handleCommandDone(msg commandDoneMsg) (tea.Model, tea.Cmd) {
	m.reading = false
	if msg.err != nil {
		m.controller.Abort(msg.err)
		m.err = fmt.Errorf("command mode: %w", msg.err)
		return m, tea.Quit
	}

	m.controller.Execute(msg.line)
	if m.controller.Mode().Kind == ModeExit {
		return m.handleQuit()
	}
	return m, nil
}

func (m *home) handleQuit() (tea.Model, tea.Cmd) {
	m.keys.close()
	log.InfoLog.Printf("quitting")
	return m, tea.Quit
}

// keepCurrent copies the selected image into the destination folder.
func (m *home) keepCurrent() tea.Cmd {
	path, ok := m.session.Current()
	if !ok {
		m.controller.Fail(errNoImage)
		return nil
	}
	dest, err := imageset.Keep(path, m.session.DestFolder())
	if err != nil {
		m.controller.Fail(err)
		return nil
	}
	log.InfoLog.Printf("kept %q as %q", path, dest)
	return m.showStatus("kept " + dest)
}

// yankCurrent copies the selected image path to the clipboard.
func (m *home) yankCurrent() tea.Cmd {
	path, ok := m.session.Current()
	if !ok {
		m.controller.Fail(errNoImage)
		return nil
	}
	if err := clipboard.WriteAll(path); err != nil {
		m.controller.Fail(fmt.Errorf("failed to copy path to clipboard: %w", err))
		return nil
	}
	return m.showStatus("copied " + path)
}

// hideStatusMsg implements tea.Msg and clears the status text from the screen.
type hideStatusMsg struct {
	seq int
}

// showStatus sets the status message. We return a callback tea.Cmd that returns a
// hideStatusMsg after statusTimeout.
func (m *home) showStatus(text string) tea.Cmd {
	m.statusSeq++
	m.status = text
	seq := m.statusSeq
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(statusTimeout):
		}
		return hideStatusMsg{seq: seq}
	}
}

func (m *home) menuHints() string {
	hints := make([]string, 0, len(keys.MenuOrder))
	for _, name := range keys.MenuOrder {
		help := keys.GlobalkeyBindings[name].Help()
		hints = append(hints, help.Key+" "+help.Desc)
	}
	return strings.Join(hints, " • ")
}

func (m *home) infoLine() string {
	mode := m.controller.Mode()
	switch mode.Kind {
	case ModeCommand:
		return m.infoBar.Command(m.controller.Entry(), mode.Text)
	case ModeError:
		return m.infoBar.Error(mode.Text)
	case ModeExit:
		return ""
	}

	if m.status != "" {
		return m.infoBar.Status(m.status, m.menuHints())
	}
	current, ok := m.session.Current()
	if !ok {
		return m.infoBar.Status("no images", m.menuHints())
	}
	left := fmt.Sprintf("%s • %s • keep → %s", current, m.session.Order(), m.session.DestFolder())
	return m.infoBar.Status(left, m.menuHints())
}

func (m *home) View() string {
	if m.controller.Mode().Kind == ModeExit {
		return ""
	}
	if m.controller.HelpVisible() {
		return overlay.PlaceOverlay(m.width, m.height, m.helpOverlay.Render())
	}

	m.list.SetImages(m.session.Viewable(), m.session.Index(), m.session.Len(), m.session.BaseDir())
	return lipgloss.JoinVertical(lipgloss.Left, m.list.String(), m.infoLine())
}
