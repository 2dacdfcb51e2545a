package mission

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
	"github.com/lauralie13/Spy-Academy/internal/missions"
	"github.com/lauralie13/Spy-Academy/internal/ui/layout"
	"github.com/lauralie13/Spy-Academy/internal/ui/theme"
)

type zoneBuilder struct {
	t      catalog.ZoneBuilderTasks
	cursor int
	// zone index per asset, -1 while unplaced
	placed []int
}

func newZoneBuilder(t catalog.ZoneBuilderTasks) *zoneBuilder {
	if len(t.Zones) == 0 {
		t.Zones = catalog.DefaultZones
	}
	placed := make([]int, len(t.Assets))
	for i := range placed {
		placed[i] = -1
	}
	return &zoneBuilder{t: t, placed: placed}
}

func (z *zoneBuilder) Update(msg tea.KeyMsg) (tea.Cmd, bool) {
	if len(z.t.Assets) == 0 {
		return nil, msg.String() == "enter"
	}
	n := len(z.t.Zones)
	switch key := msg.String(); key {
	case "up", "k":
		z.cursor = max(z.cursor-1, 0)
	case "down", "j":
		z.cursor = min(z.cursor+1, len(z.t.Assets)-1)
	case "right", "l":
		z.placed[z.cursor] = (z.placed[z.cursor] + 1) % n
	case "left", "h":
		if z.placed[z.cursor] <= 0 {
			z.placed[z.cursor] = n - 1
		} else {
			z.placed[z.cursor]--
		}
	case "enter", "ctrl+s":
		return nil, true
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < n {
				z.placed[z.cursor] = i
				z.cursor = min(z.cursor+1, len(z.t.Assets)-1)
			}
		}
	}
	return nil, false
}

func (z *zoneBuilder) Attempt() missions.Attempt {
	placements := make(map[string]string, len(z.t.Assets))
	for i, a := range z.t.Assets {
		if z.placed[i] >= 0 {
			placements[a.Name] = z.t.Zones[z.placed[i]]
		}
	}
	return missions.Attempt{Placements: placements}
}

func (z *zoneBuilder) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Asset"},
		{Key: "←→ / 1-9", Description: "Zone"},
		{Key: "Enter", Description: "Submit"},
	}
}

func (z *zoneBuilder) View(width int, readable bool) string {
	var b strings.Builder

	var zones []string
	for i, name := range z.t.Zones {
		zones = append(zones, fmt.Sprintf("%d %s", i+1, name))
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Zones: " + strings.Join(zones, "  ·  ")))
	b.WriteString("\n\n")

	for i, a := range z.t.Assets {
		zone := "—"
		if z.placed[i] >= 0 {
			zone = z.t.Zones[z.placed[i]]
		}
		line := fmt.Sprintf("%-24s %-12s", a.Name, zone)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		prefix := "  "
		if i == z.cursor {
			style = theme.Selected
			prefix = "▸ "
		}
		b.WriteString(style.Render(prefix + line))
		if i == z.cursor && a.ControlHint != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("  " + a.ControlHint))
		}
		b.WriteString("\n")
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}
