package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"imgview/command"
	"imgview/keys"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#7D56F4"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#36CFC9"))
	keyStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFCC00"))
	descStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
)

// helpColumn is the width of the key column.
const helpColumn = 24

func helpLine(key, desc string) string {
	padding := strings.Repeat(" ", max(helpColumn-lipgloss.Width(key), 1))
	return keyStyle.Render(key) + padding + descStyle.Render("- "+desc)
}

// commandSyntax renders the ways to type a command, e.g. ":ng/:newglob <glob>".
func commandSyntax(kind command.Kind) string {
	aliases := kind.Aliases()
	for i, alias := range aliases {
		aliases[i] = ":" + alias
	}
	syntax := strings.Join(aliases, "/")
	if usage := kind.Usage(); usage != "" {
		syntax += " " + usage
	}
	return syntax
}

// helpContent lists every command and every normal mode key.
func helpContent() string {
	lines := []string{
		titleStyle.Render("imgview"),
		"",
		"Browse images from the terminal. Commands are typed after : or /, finished",
		"with enter and cancelled by erasing the whole line.",
		"Esc runs the command like enter, it does not cancel.",
		"",
		headerStyle.Render("Commands:"),
	}
	for _, kind := range command.Kinds {
		lines = append(lines, helpLine(commandSyntax(kind), kind.Summary()))
	}
	lines = append(lines, "")

	for _, category := range keys.GetAllCategories() {
		categoryKeys := keys.GetKeysInCategory(category)
		if len(categoryKeys) == 0 {
			continue
		}
		lines = append(lines, headerStyle.Render(string(category)+":"))
		for _, keyName := range categoryKeys {
			binding := keys.GlobalkeyBindings[keyName]
			lines = append(lines, helpLine(binding.Help().Key, keys.GetKeyHelp(keyName).Description))
		}
		lines = append(lines, "")
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
