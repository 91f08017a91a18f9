package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// scrollbar renders a vertical track, with a thumb sized and placed in
// proportion to the visible window of some content.
type scrollbar struct {
	thumb lipgloss.Style
	track lipgloss.Style
}

func newScrollbar() scrollbar {
	return scrollbar{
		thumb: lipgloss.NewStyle().Foreground(lipgloss.Color("57")),
		track: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// thumbBounds returns the first row and the size of the thumb, for a window
// of height rows at offset into content rows. Content that fits is a full
// height thumb.
func thumbBounds(content, height, offset int) (top, size int) {
	if content <= height {
		return 0, height
	}
	size = max(1, height*height/content)
	maxOffset := content - height
	offset = max(0, min(offset, maxOffset))
	return offset * (height - size) / maxOffset, size
}

// view returns height rows, one column wide.
func (s scrollbar) view(content, height, offset int) string {
	if height <= 0 {
		return ""
	}
	top, size := thumbBounds(content, height, offset)
	rows := make([]string, height)
	for i := range rows {
		if top <= i && i < top+size {
			rows[i] = s.thumb.Render("┃")
		} else {
			rows[i] = s.track.Render("│")
		}
	}
	return strings.Join(rows, "\n")
}
