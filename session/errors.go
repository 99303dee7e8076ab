package session

import (
	"fmt"

	"imgview/command"
)

// MissingArgumentError is returned when a command that needs an argument got none.
type MissingArgumentError struct {
	Command command.Kind
	// Want describes the expected argument, e.g. "a glob".
	Want string
}

func (e *MissingArgumentError) Error() string {
	aliases := e.Command.Aliases()
	long, short := aliases[len(aliases)-1], aliases[0]
	if long == short {
		return fmt.Sprintf("command \":%s\" requires %s", long, e.Want)
	}
	return fmt.Sprintf("command \":%s\" or \":%s\" requires %s", long, short, e.Want)
}

// InvalidArgumentError is returned when an argument could not be interpreted.
// The message is the one of Err.
type InvalidArgumentError struct {
	Command command.Kind
	Value   string
	Err     error
}

func (e *InvalidArgumentError) Error() string {
	return e.Err.Error()
}

func (e *InvalidArgumentError) Unwrap() error { return e.Err }
