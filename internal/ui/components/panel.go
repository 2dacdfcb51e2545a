package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/lauralie13/Spy-Academy/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for panel sections.
// All boxes are rendered at this width so they line up.
func ContentWidth(frameWidth int) int {
	// frame border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 64)
}

// Frame wraps content in a double-border frame, centered both ways
// within the given dimensions.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded-border card at content width cw.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(0, 2).
		Render(content)
}

// Badge renders a short bold label on a colored background.
func Badge(label string, bg color.Color) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.BgDark).
		Background(bg).
		Padding(0, 1).
		Render(label)
}

// ButtonWidth is the fixed width of panel buttons.
const ButtonWidth = 24

// Button renders a fixed-width bordered button.
func Button(label string, selected, disabled bool) string {
	style := lipgloss.NewStyle().
		Width(ButtonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	switch {
	case disabled:
		return style.Foreground(theme.TextDim).BorderForeground(theme.Border).Render(label)
	case selected:
		return style.
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Highlight).
			BorderForeground(theme.Highlight).
			Render("▸ " + label)
	default:
		return style.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
	}
}
