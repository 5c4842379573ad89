package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/estudos/internal/ui/theme"
)

const bannerArt = `
 ███████╗███████╗████████╗██╗   ██╗██████╗  ██████╗ ███████╗
 ██╔════╝██╔════╝╚══██╔══╝██║   ██║██╔══██╗██╔═══██╗██╔════╝
 █████╗  ███████╗   ██║   ██║   ██║██║  ██║██║   ██║███████╗
 ██╔══╝  ╚════██║   ██║   ██║   ██║██║  ██║██║   ██║╚════██║
 ███████╗███████║   ██║   ╚██████╔╝██████╔╝╚██████╔╝███████║
 ╚══════╝╚══════╝   ╚═╝    ╚═════╝ ╚═════╝  ╚═════╝ ╚══════╝`

const bannerCompact = "E S T U D O S"

// bannerMinWidth is the narrowest terminal that fits the block banner.
const bannerMinWidth = 62

// RenderBanner returns the ESTUDOS banner, or a spaced-out one-liner on
// narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
