package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyNext KeyName = iota
	KeyPrev
	KeyFirst
	KeyLast

	KeyCommand // Enter command mode
	KeyHelp    // Toggle the help overlay
	KeyKeep    // Copy the current image to the destination folder
	KeyYank    // Copy the current image path to the clipboard
	KeyQuit
	KeyEsc
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"down":   KeyNext,
	"j":      KeyNext,
	"right":  KeyNext,
	"l":      KeyNext,
	"up":     KeyPrev,
	"k":      KeyPrev,
	"left":   KeyPrev,
	"h":      KeyPrev,
	"g":      KeyFirst,
	"home":   KeyFirst,
	"G":      KeyLast,
	"end":    KeyLast,
	":":      KeyCommand,
	"/":      KeyCommand,
	"?":      KeyHelp,
	"K":      KeyKeep,
	"y":      KeyYank,
	"q":      KeyQuit,
	"ctrl+c": KeyQuit,
	"esc":    KeyEsc,
}

// GlobalkeyBindings is a global, immutable map of KeyName to keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyNext: key.NewBinding(
		key.WithKeys("down", "j", "right", "l"),
		key.WithHelp("↓/j", "next"),
	),
	KeyPrev: key.NewBinding(
		key.WithKeys("up", "k", "left", "h"),
		key.WithHelp("↑/k", "previous"),
	),
	KeyFirst: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "first"),
	),
	KeyLast: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "last"),
	),
	KeyCommand: key.NewBinding(
		key.WithKeys(":", "/"),
		key.WithHelp(":", "command"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	KeyKeep: key.NewBinding(
		key.WithKeys("K"),
		key.WithHelp("K", "keep"),
	),
	KeyYank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "yank path"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),

	// General keybinding
	KeyEsc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close help"),
	),
}

// MenuOrder is the order bindings appear in the status bar.
var MenuOrder = []KeyName{KeyNext, KeyPrev, KeyCommand, KeyKeep, KeyHelp, KeyQuit}
