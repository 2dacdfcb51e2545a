package home

import (
	"charm.land/lipgloss/v2"

	"github.com/lauralie13/Spy-Academy/internal/progress"
	"github.com/lauralie13/Spy-Academy/internal/ui/theme"
)

// BadgeVariant selects which agent badge art to display.
type BadgeVariant int

const (
	BadgeIdle      BadgeVariant = iota
	BadgeDecorated              // at least one objective mastered
	BadgeAlert                  // reviews piling up or a flagged misconception
)

const badgeIdle = `╭─────────╮
│  ◉   ◉  │
│    ─    │
│ [AGENT] │
╰─────────╯`

const badgeDecorated = `╭─────────╮
│  ◉   ◉  │
│    ◡    │
│ [AGENT] │
╰────┬────╯
     ★`

const badgeAlert = `╭─────────╮
│  ◉   ◉  │ !
│    ○    │
│ [AGENT] │
╰─────────╯`

// alertDue is how many due objectives switch the badge to alert.
const alertDue = 3

// VariantFor picks the badge for the current stats.
func VariantFor(st progress.Stats) BadgeVariant {
	switch {
	case st.Due >= alertDue || st.Flagged > 0:
		return BadgeAlert
	case st.Mastered > 0:
		return BadgeDecorated
	default:
		return BadgeIdle
	}
}

// RenderBadge returns the badge art for the given variant.
func RenderBadge(v BadgeVariant) string {
	art, fg := badgeIdle, theme.Primary
	switch v {
	case BadgeDecorated:
		art, fg = badgeDecorated, theme.Highlight
	case BadgeAlert:
		art, fg = badgeAlert, theme.Warning
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
