package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/lauralie13/Spy-Academy/internal/ui/theme"
)

const bannerArt = `
 ███████╗██████╗ ██╗   ██╗     █████╗  ██████╗ █████╗ ██████╗ ███████╗███╗   ███╗██╗   ██╗
 ██╔════╝██╔══██╗╚██╗ ██╔╝    ██╔══██╗██╔════╝██╔══██╗██╔══██╗██╔════╝████╗ ████║╚██╗ ██╔╝
 ███████╗██████╔╝ ╚████╔╝     ███████║██║     ███████║██║  ██║█████╗  ██╔████╔██║ ╚████╔╝
 ╚════██║██╔═══╝   ╚██╔╝      ██╔══██║██║     ██╔══██║██║  ██║██╔══╝  ██║╚██╔╝██║  ╚██╔╝
 ███████║██║        ██║       ██║  ██║╚██████╗██║  ██║██████╔╝███████╗██║ ╚═╝ ██║   ██║
 ╚══════╝╚═╝        ╚═╝       ╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝╚═════╝ ╚══════╝╚═╝     ╚═╝   ╚═╝`

const bannerCompact = "S P Y   A C A D E M Y"

// RenderBanner returns the banner in the primary color, falling back to
// a single line on terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 92 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
