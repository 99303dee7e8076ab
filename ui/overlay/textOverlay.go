package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var overlayStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(1, 2)

// TextOverlay shows static text, such as the help screen, above the main view.
type TextOverlay struct {
	content string
	width   int
	// OnDismiss is called when the overlay is closed by a key press.
	OnDismiss func()
}

// NewTextOverlay creates a new text overlay with the given content.
func NewTextOverlay(content string) *TextOverlay {
	return &TextOverlay{content: content}
}

// SetWidth sets the outer width. 0 sizes the overlay to its content.
func (t *TextOverlay) SetWidth(width int) {
	t.width = width
}

// HandleKeyPress closes the overlay on any key. Returns true if the overlay should be closed.
func (t *TextOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	if t.OnDismiss != nil {
		t.OnDismiss()
	}
	return true
}

// Render returns the framed content.
func (t *TextOverlay) Render() string {
	style := overlayStyle
	if t.width > 0 {
		style = style.Width(t.width - style.GetHorizontalBorderSize())
	}
	return style.Render(t.content)
}

// PlaceOverlay centers fg inside a width by height area, replacing the background.
func PlaceOverlay(width, height int, fg string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, fg)
}
