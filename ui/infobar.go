package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var commandStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"})

var errorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#de613e"))

var statusStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#51bd73", Dark: "#51bd73"})

var hintStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"})

const cursor = "█"

const ellipsis = "…"

// InfoBar is the bottom line of the screen: the command being typed, an error,
// or a status line.
type InfoBar struct {
	width int
}

func NewInfoBar() *InfoBar {
	return &InfoBar{}
}

func (b *InfoBar) SetWidth(width int) {
	b.width = width
}

// Command renders the command line. When it does not fit, the start is cut so
// the cursor stays visible.
func (b *InfoBar) Command(entry, line string) string {
	return commandStyle.Render(fitTail(entry+line+cursor, b.width))
}

// Error renders msg, cut at the end when too wide.
func (b *InfoBar) Error(msg string) string {
	return errorStyle.Render(runewidth.Truncate(msg, b.width, ellipsis))
}

// Status renders left and right aligned text. Hints are dropped first when
// space runs out, then left is cut.
func (b *InfoBar) Status(left, hints string) string {
	leftWidth := runewidth.StringWidth(left)
	hintWidth := runewidth.StringWidth(hints)
	if leftWidth+1+hintWidth > b.width {
		return statusStyle.Render(runewidth.Truncate(left, b.width, ellipsis))
	}
	gap := strings.Repeat(" ", b.width-leftWidth-hintWidth)
	return statusStyle.Render(left) + gap + hintStyle.Render(hints)
}

// fitTail keeps the end of s that fits in width cells.
func fitTail(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	room := width - runewidth.StringWidth(ellipsis)
	if room <= 0 {
		return ""
	}
	for runewidth.StringWidth(s) > room {
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
	}
	return ellipsis + s
}
