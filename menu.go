package main

import (
	"fmt"
	"strings"
)

// renderMenu renders the floating stage-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Show Stage"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	for i, sv := range m.stages {
		counts := fmt.Sprintf("%d ops  T=%d  depth %d", sv.summary.Operations, sv.summary.TCount, sv.summary.Depth)
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-14s", sv.Name)))
			sb.WriteString(gateStyle.Render(counts))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-14s", sv.Name)))
			sb.WriteString(dimStyle.Render(counts))
		}
		if i == m.stage {
			sb.WriteString(dimStyle.Render(" (shown)"))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
