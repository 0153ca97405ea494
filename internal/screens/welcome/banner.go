package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/eduwise/eduwise/internal/ui/theme"
)

const bannerArt = `
 ███████╗██████╗ ██╗   ██╗██╗    ██╗██╗███████╗███████╗
 ██╔════╝██╔══██╗██║   ██║██║    ██║██║██╔════╝██╔════╝
 █████╗  ██║  ██║██║   ██║██║ █╗ ██║██║███████╗█████╗
 ██╔══╝  ██║  ██║██║   ██║██║███╗██║██║╚════██║██╔══╝
 ███████╗██████╔╝╚██████╔╝╚███╔███╔╝██║███████║███████╗
 ╚══════╝╚═════╝  ╚═════╝  ╚══╝╚══╝ ╚═╝╚══════╝╚══════╝`

const bannerCompact = "E D U W I S E"

// RenderBanner returns the EDUWISE banner styled in the primary color,
// or the compact form for terminals narrower than 58 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 58 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
