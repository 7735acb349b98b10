package main

import "github.com/charmbracelet/lipgloss"

// Grid geometry of the circuit panel.
const (
	cellW          = 11 // width of each moment column in characters
	labelVisualW   = 7  // visual width of qubit label area
	gateNameW      = 5  // width of gate name inside box
	gateBoxW       = 7  // ┤ + gateNameW + ├ = 1 + 5 + 1
	controlsHeight = 6  // height of the help bar including its border
)

// Palette shared by the viewer and the report tables.
var (
	colorBlue   = lipgloss.Color("#7aa2f7")
	colorPurple = lipgloss.Color("#bb9af7")
	colorGreen  = lipgloss.Color("#9ece6a")
	colorOrange = lipgloss.Color("#ff9e64")
	colorYellow = lipgloss.Color("#e0af68")
	colorCyan   = lipgloss.Color("#7dcfff")
	colorTeal   = lipgloss.Color("#73daca")
	colorMuted  = lipgloss.Color("#565f89")
	colorText   = lipgloss.Color("#c0caf5")
)

func panelStyle(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border)
}

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

// Viewer styles.
var (
	circuitStyle    = panelStyle(colorBlue).Padding(1)
	qasmStyle       = panelStyle(colorPurple).Padding(1)
	controlsStyle   = panelStyle(colorGreen).Padding(0, 1)
	menuBorderStyle = panelStyle(colorOrange).Padding(0, 1)

	titleStyle        = fg(colorOrange).Bold(true)
	cursorBoxStyle    = fg(colorOrange).Bold(true)
	menuSelectedStyle = fg(colorOrange).Bold(true)
	activeGateStyle   = fg(colorYellow)
	qubitLabelStyle   = fg(colorCyan)
	gateStyle         = fg(colorTeal).Bold(true)
	dimStyle          = fg(colorMuted)
	menuNormalStyle   = fg(colorText)
)

// Report table styles.
var (
	reportBorderStyle = fg(colorBlue)
	reportHeaderStyle = titleStyle.Padding(0, 1)
	reportCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	reportDimStyle    = dimStyle.Padding(0, 1)
)
