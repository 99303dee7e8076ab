package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
)

var titleStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"})

var selectedTitleStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Background(lipgloss.Color("#dde4f0")).
	Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#1a1a1a"})

var indexStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"})

var mainTitle = lipgloss.NewStyle().
	Background(lipgloss.Color("62")).
	Foreground(lipgloss.Color("230"))

var emptyStyle = lipgloss.NewStyle().
	Padding(1, 1).
	Foreground(lipgloss.AdaptiveColor{Light: "#888888", Dark: "#888888"})

// titleLines is the number of rows taken by the title and the blank line below it.
const titleLines = 2

// List displays the images of the viewable window with the selection highlighted.
type List struct {
	images        []string
	selectedIdx   int
	total         int
	baseDir       string
	height, width int

	// Index of the first visible row
	scrollOffset int
}

func NewList() *List {
	return &List{}
}

// SetSize sets the height and width of the list.
func (l *List) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// SetImages replaces the rows. images is the viewable window, total the size of
// the full image list. Paths below baseDir are shown relative to it.
func (l *List) SetImages(images []string, selected, total int, baseDir string) {
	l.images = images
	l.selectedIdx = selected
	l.total = total
	l.baseDir = baseDir
	l.ensureSelectedVisible()
}

func (l *List) maxVisibleRows() int {
	return max(l.height-titleLines, 1)
}

// ensureSelectedVisible adjusts scroll offset so the selected row is on screen.
func (l *List) ensureSelectedVisible() {
	if len(l.images) == 0 {
		l.scrollOffset = 0
		return
	}
	maxVisible := l.maxVisibleRows()
	if l.selectedIdx < l.scrollOffset {
		l.scrollOffset = l.selectedIdx
	}
	if l.selectedIdx >= l.scrollOffset+maxVisible {
		l.scrollOffset = l.selectedIdx - maxVisible + 1
	}
	l.scrollOffset = min(max(l.scrollOffset, 0), len(l.images)-1)
}

// scrollIndicator describes which rows are shown and how many images are capped away.
func (l *List) scrollIndicator() string {
	var parts []string
	if end := min(l.scrollOffset+l.maxVisibleRows(), len(l.images)); len(l.images) > end-l.scrollOffset {
		parts = append(parts, fmt.Sprintf("%d-%d/%d", l.scrollOffset+1, end, len(l.images)))
	}
	if l.total > len(l.images) {
		parts = append(parts, fmt.Sprintf("%d of %d shown", len(l.images), l.total))
	}
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

func (l *List) displayName(path string) string {
	if l.baseDir == "" {
		return path
	}
	rel, err := filepath.Rel(l.baseDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func (l *List) String() string {
	var b strings.Builder
	b.WriteString(mainTitle.Render(" Images" + l.scrollIndicator() + " "))
	b.WriteString("\n\n")

	if len(l.images) == 0 {
		b.WriteString(emptyStyle.Render("no images"))
		return lipgloss.Place(l.width, l.height, lipgloss.Left, lipgloss.Top, b.String())
	}

	numWidth := len(fmt.Sprint(len(l.images)))
	end := min(l.scrollOffset+l.maxVisibleRows(), len(l.images))
	for i := l.scrollOffset; i < end; i++ {
		prefix := indexStyle.Render(fmt.Sprintf("%*d ", numWidth, i+1))
		// Two columns of padding from the row style.
		room := max(l.width-ansi.PrintableRuneWidth(prefix)-2, 1)
		name := truncate.StringWithTail(l.displayName(l.images[i]), uint(room), "…")

		style := titleStyle
		if i == l.selectedIdx {
			style = selectedTitleStyle
		}
		b.WriteString(prefix + style.Render(name))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return lipgloss.Place(l.width, l.height, lipgloss.Left, lipgloss.Top, b.String())
}
