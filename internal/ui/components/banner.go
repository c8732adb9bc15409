package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/funnel/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██╗      █████╗  ██████╗██╗  ██╗  ██████╗  ██████╗ ██╗  ██╗
 ██╔══██╗██║     ██╔══██╗██╔════╝██║ ██╔╝  ██╔══██╗██╔═══██╗╚██╗██╔╝
 ██████╔╝██║     ███████║██║     █████╔╝   ██████╔╝██║   ██║ ╚███╔╝
 ██╔══██╗██║     ██╔══██║██║     ██╔═██╗   ██╔══██╗██║   ██║ ██╔██╗
 ██████╔╝███████╗██║  ██║╚██████╗██║  ██╗  ██████╔╝╚██████╔╝██╔╝ ██╗
 ╚═════╝ ╚══════╝╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝  ╚═════╝  ╚═════╝ ╚═╝  ╚═╝`

const bannerCompact = "B L A C K   B O X"

// BannerWidth is the narrowest content width that fits the full banner.
const BannerWidth = 68

// Banner returns the BLACK BOX banner styled in the primary color.
// Uses a compact fallback for narrower widths.
func Banner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < BannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
