package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"imgview/command"
)

func TestHelpContent(t *testing.T) {
	content := helpContent()

	for _, kind := range command.Kinds {
		assert.Contains(t, content, commandSyntax(kind))
	}
	assert.Contains(t, content, "cancelled by erasing the whole line")
	assert.Contains(t, content, "Esc runs the command like enter, it does not cancel.")
}

func TestCommandSyntax(t *testing.T) {
	assert.Equal(t, ":ng/:newglob <glob>", commandSyntax(command.NewGlob))
	assert.Equal(t, ":r/:reverse", commandSyntax(command.Reverse))
}
