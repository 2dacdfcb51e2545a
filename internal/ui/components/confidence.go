package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lauralie13/Spy-Academy/internal/ui/theme"
)

// ConfidenceStep is how far one key press moves the slider.
const ConfidenceStep = 10

// Confidence is a 0–100 slider for self-reported confidence.
type Confidence struct {
	Value int
	Width int
}

// NewConfidence creates a slider starting at value.
func NewConfidence(value, width int) Confidence {
	return Confidence{Value: clampPercent(value), Width: width}
}

// Update moves the slider with left/right (or h/l). Digits 0–9 jump to
// that tenth, so 7 means 70.
func (c Confidence) Update(msg tea.Msg) (Confidence, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	key := kmsg.String()
	switch key {
	case "left", "h":
		c.Value = clampPercent(c.Value - ConfidenceStep)
	case "right", "l":
		c.Value = clampPercent(c.Value + ConfidenceStep)
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			c.Value = int(key[0]-'0') * 10
		}
	}
	return c, nil
}

// View renders the slider with its value and a verbal label.
func (c Confidence) View() string {
	barWidth := max(c.Width-18, 10)
	filled := barWidth * c.Value / 100
	bar := lipgloss.NewStyle().Foreground(theme.Accent).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %3d%%  %s", bar, c.Value,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(ConfidenceLabel(c.Value)))
}

// ConfidenceLabel names a confidence level.
func ConfidenceLabel(v int) string {
	switch {
	case v >= 80:
		return "certain"
	case v >= 60:
		return "fairly sure"
	case v >= 40:
		return "unsure"
	default:
		return "guessing"
	}
}

func clampPercent(v int) int {
	return min(max(v, 0), 100)
}
