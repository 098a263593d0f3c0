package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	Cream    = lipgloss.AdaptiveColor{Light: "#FFFDF5", Dark: "#FFFDF5"}
	Fuchsia  = lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	Red      = lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"}
	FaintRed = lipgloss.AdaptiveColor{Light: "#FF6F91", Dark: "#C74665"}

	DimNormalFg = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"})
	GrayFg      = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"})
	FuchsiaFg   = lipgloss.NewStyle().Foreground(Fuchsia)
	RedFg       = lipgloss.NewStyle().Foreground(Red)

	// instagram color palette
	// https://www.color-hex.com/color-palette/44340
	InstaMagenta = lipgloss.Color("#d62976")
	InstaPurple  = lipgloss.Color("#962fbf")

	LogoStyle = lipgloss.NewStyle().
			Foreground(Cream).
			Background(InstaPurple).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#656565", Dark: "#7D7D7D"}).
			Background(lipgloss.AdaptiveColor{Light: "#E6E6E6", Dark: "#242424"})

	StatusBarMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#89F0CB")).
				Background(lipgloss.Color("#1C8760"))

	StatusBarErrorStyle = lipgloss.NewStyle().
				Foreground(Cream).
				Background(FaintRed)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(InstaMagenta)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(Cream).
				Background(InstaPurple)
)
