package app

import (
	"context"

	"imgview/cmdline"
	"imgview/command"
	"imgview/log"
	"imgview/session"
)

type ModeKind int

const (
	// ModeNormal is browsing, keys act on the image list.
	ModeNormal ModeKind = iota
	// ModeCommand is the state while a command line is being typed.
	ModeCommand
	// ModeError shows a failed command until the next key press.
	ModeError
	// ModeExit is terminal.
	ModeExit
)

// Mode is what the bottom line of the screen shows. Text is the command line
// in ModeCommand and the message in ModeError.
type Mode struct {
	Kind ModeKind
	Text string
}

// Controller runs commands against a session and tracks the resulting mode.
// It must only be used from one goroutine.
type Controller struct {
	session  *session.Session
	mode     Mode
	entry    string
	showHelp bool
}

func NewController(s *session.Session) *Controller {
	return &Controller{session: s}
}

func (c *Controller) Mode() Mode { return c.mode }

// Entry is the character command mode was last entered with.
func (c *Controller) Entry() string { return c.entry }

func (c *Controller) Session() *session.Session { return c.session }

func (c *Controller) HelpVisible() bool { return c.showHelp }

func (c *Controller) ToggleHelp() { c.showHelp = !c.showHelp }

func (c *Controller) HideHelp() { c.showHelp = false }

// Enter switches to command mode with an empty command line. It reports false
// once the controller has exited.
func (c *Controller) Enter(entry string) bool {
	if c.mode.Kind == ModeExit {
		return false
	}
	c.mode = Mode{Kind: ModeCommand}
	c.entry = entry
	return true
}

// SetCommandLine updates the command line shown while in command mode.
func (c *Controller) SetCommandLine(line string) {
	if c.mode.Kind == ModeCommand {
		c.mode.Text = line
	}
}

// Execute parses and runs a finished command line and leaves command mode. An
// empty line cancels. Failures switch to ModeError.
func (c *Controller) Execute(line string) {
	if c.mode.Kind == ModeExit {
		return
	}
	c.mode = Mode{Kind: ModeNormal}
	if line == "" {
		return
	}

	inv, err := command.Parse(line)
	if err != nil {
		c.Fail(err)
		return
	}
	log.InfoLog.Printf("running command %q", line)
	if err := c.dispatch(inv); err != nil {
		c.Fail(err)
	}
}

func (c *Controller) dispatch(inv command.Invocation) error {
	switch inv.Kind {
	case command.Sort:
		return c.session.Sort(inv.Argument)
	case command.NewGlob:
		return c.session.NewGlob(inv.Argument)
	case command.Help:
		c.ToggleHelp()
	case command.Quit:
		c.mode = Mode{Kind: ModeExit}
	case command.Reverse:
		c.session.Reverse()
	case command.DestFolder:
		return c.session.SetDestFolder(inv.Argument)
	case command.MaximumImages:
		return c.session.SetMaximum(inv.Argument)
	}
	return nil
}

// Fail displays err until the next key press.
func (c *Controller) Fail(err error) {
	log.WarningLog.Printf("%v", err)
	if c.mode.Kind == ModeExit {
		return
	}
	c.mode = Mode{Kind: ModeError, Text: err.Error()}
}

// Acknowledge clears a displayed error.
func (c *Controller) Acknowledge() {
	if c.mode.Kind == ModeError {
		c.mode = Mode{Kind: ModeNormal}
	}
}

// Run enters command mode, reads a line with reader and executes it. Errors
// from the reader are fatal: they are returned and the controller exits.
func (c *Controller) Run(ctx context.Context, reader *cmdline.Reader, entry string) error {
	if !c.Enter(entry) {
		return nil
	}
	line, err := reader.Read(ctx, entry)
	if err != nil {
		c.Abort(err)
		return err
	}
	c.Execute(line)
	return nil
}

// Abort exits after a fatal input error.
func (c *Controller) Abort(err error) {
	log.ErrorLog.Printf("command mode aborted: %v", err)
	c.mode = Mode{Kind: ModeExit}
}
