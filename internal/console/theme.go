package console

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ptero-tools/pterodactyl-go"
)

// Power state colors.
var (
	colorOffline  = lipgloss.Color("#6b7280")
	colorStarting = lipgloss.Color("#d97706")
	colorRunning  = lipgloss.Color("#22c55e")
	colorStopping = lipgloss.Color("#d97706")
)

// UI chrome colors.
var (
	colorBright = lipgloss.Color("#f9fafb")
	colorDimmed = lipgloss.Color("#6b7280")
	colorDanger = lipgloss.Color("#dc2626")
)

var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBright)

	styleDimmed = lipgloss.NewStyle().
			Foreground(colorDimmed)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger)
)

// stateColor returns the color for a power state.
func stateColor(state pterodactyl.ServerState) lipgloss.Color {
	switch state {
	case pterodactyl.StateRunning:
		return colorRunning
	case pterodactyl.StateStarting:
		return colorStarting
	case pterodactyl.StateStopping:
		return colorStopping
	default:
		return colorOffline
	}
}
