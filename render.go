package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return string([]rune(s)[:width])
	}
	total := width - n
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// gateDisplayName returns a short display name for a gate.
func gateDisplayName(name string) string {
	switch name {
	case GateSdg:
		return "S†"
	case GateTdg:
		return "T†"
	default:
		return name
	}
}

// targetSymbol returns the wire symbol drawn on the target qubit of a
// controlled gate, or false when the target is drawn as a boxed gate.
func targetSymbol(op Operation) (string, bool) {
	base, _ := singleQubitBase(op.Gate.Name)
	switch {
	case op.Gate.Name == GateSWAP:
		return "×", true
	case base == GateX:
		return "⊕", true
	case base == GateZ:
		return "●", true
	}
	return "", false
}

// ──────────────────────────── Cell rendering ────────────────────────────

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	op          *Operation
	isControl   bool
	isTarget    bool
	passThrough bool
	vertAbove   bool
	vertBelow   bool
}

// cellAt inspects one moment at one qubit.
func cellAt(moment Moment, qubit int) cellInfo {
	var info cellInfo
	for i := range moment {
		op := &moment[i]
		if len(op.Qubits) > 1 {
			lo, hi := op.Qubits[0], op.Qubits[0]
			for _, q := range op.Qubits {
				lo, hi = min(lo, q), max(hi, q)
			}
			if qubit > lo && qubit <= hi {
				info.vertAbove = true
			}
			if qubit >= lo && qubit < hi {
				info.vertBelow = true
			}
			if qubit > lo && qubit < hi && !op.References(qubit) && info.op == nil {
				info.passThrough = true
			}
		}
		if !op.References(qubit) {
			continue
		}
		info.op = op
		info.passThrough = false
		if len(op.Qubits) > 1 {
			if op.Gate.Name == GateSWAP {
				info.isControl = true
			} else if op.Target() == qubit {
				_, info.isTarget = targetSymbol(*op)
			} else {
				info.isControl = true
			}
		}
	}
	return info
}

type cellHighlight int

const (
	hlNone cellHighlight = iota
	hlCursor
)

func boxedName(op Operation) string {
	base, _ := singleQubitBase(op.Gate.Name)
	return padCenter(gateDisplayName(base), gateNameW)
}

// renderCell returns 3 lines (top, mid, bot) for a single cell.
// Each line is exactly cellW (11) visual characters wide.
func renderCell(info cellInfo, hl cellHighlight) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)

	// ── Highlighted cell ──
	if hl == hlCursor {
		bdr := cursorBoxStyle
		innerW := cellW - 2
		dashL := (innerW - 1) / 2
		dashR := innerW - dashL - 1

		top = bdr.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = bdr.Render("╚" + strings.Repeat("═", innerW) + "╝")

		switch {
		case info.op != nil && info.isControl:
			sym := "●"
			if info.op.Gate.Name == GateSWAP {
				sym = "×"
			}
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", dashR) + bdr.Render("║")
		case info.op != nil && info.isTarget:
			sym, _ := targetSymbol(*info.op)
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", dashR) + bdr.Render("║")
		case info.op != nil:
			mid = bdr.Render("║") + "─┤" + gateStyle.Render(boxedName(*info.op)) + "├─" + bdr.Render("║")
		case info.passThrough:
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR) + bdr.Render("║")
		default:
			mid = bdr.Render("║") + strings.Repeat("─", innerW) + bdr.Render("║")
		}
		return
	}

	// ── Normal (non-highlighted) cells ──
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	top = emptyRow
	if info.vertAbove {
		top = vertRow
	}
	bot = emptyRow
	if info.vertBelow {
		bot = vertRow
	}

	switch {
	case info.op != nil && (info.isControl || info.isTarget):
		sym := "●"
		if info.isTarget || info.op.Gate.Name == GateSWAP {
			sym, _ = targetSymbol(*info.op)
		}
		mid = strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", dashR)

	case info.op != nil:
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		boxTop := "┌" + strings.Repeat("─", gateNameW) + "┐"
		boxBot := "└" + strings.Repeat("─", gateNameW) + "┘"
		if info.vertAbove {
			boxTop = "┌" + strings.Repeat("─", gateNameW/2) + "┴" + strings.Repeat("─", gateNameW-gateNameW/2-1) + "┐"
		}
		if info.vertBelow {
			boxBot = "└" + strings.Repeat("─", gateNameW/2) + "┬" + strings.Repeat("─", gateNameW-gateNameW/2-1) + "┘"
		}

		top = strings.Repeat(" ", margin) + gateStyle.Render(boxTop) + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+boxedName(*info.op)+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render(boxBot) + strings.Repeat(" ", rightMargin)

	case info.passThrough:
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)

	default:
		mid = strings.Repeat("─", cellW)
	}

	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the circuit grid panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder
	sv := m.current()

	sb.WriteString(titleStyle.Render("Circuit · " + sv.Name))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("  " + sv.summary.String()))
	sb.WriteString("\n\n")

	// How many moments fit
	availWidth := width - labelVisualW - 4
	maxSteps := max(availWidth/cellW, 1)

	startStep := 0
	if m.cursorStep >= maxSteps {
		startStep = m.cursorStep - maxSteps + 1
	}
	endStep := min(startStep+maxSteps, len(sv.moments))

	if startStep > 0 {
		fmt.Fprintf(&sb, "  ◀ showing moments %d–%d of %d\n", startStep, endStep-1, len(sv.moments))
	}

	// Moment number header
	header := strings.Repeat(" ", labelVisualW)
	for step := startStep; step < endStep; step++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step), cellW))
	}
	sb.WriteString(header + "\n")

	// Render each qubit as 3 lines
	for qubit := range sv.Circuit.NumQubits() {
		topLine := strings.Repeat(" ", labelVisualW)
		label := fmt.Sprintf("q[%d]", qubit)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for step := startStep; step < endStep; step++ {
			info := cellAt(sv.moments[step], qubit)

			hl := hlNone
			if step == m.cursorStep && qubit == m.cursorQubit && m.focus == focusCircuit {
				hl = hlCursor
			}

			top, mid, bot := renderCell(info, hl)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	// Status line
	fmt.Fprintf(&sb, "\n  Moment %d, Qubit %d", m.cursorStep, m.cursorQubit)
	if m.cursorStep < len(sv.moments) {
		if info := cellAt(sv.moments[m.cursorStep], m.cursorQubit); info.op != nil {
			fmt.Fprintf(&sb, "  │  %s", activeGateStyle.Render(info.op.String()))
		}
	}
	if m.statusMsg != "" {
		fmt.Fprintf(&sb, "  │  %s", activeGateStyle.Render(m.statusMsg))
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderQASMPanel renders the read-only QASM panel.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "QASM"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmView.View())
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(fmt.Sprintf("%3.f%%", m.qasmView.ScrollPercent()*100)))

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("↑↓/jk Qubit  ←→/hl Moment  g/G First/Last")
	sb.WriteString("    ")
	sb.WriteString(activeGateStyle.Render("s"))
	sb.WriteString(" Stages\n")

	sb.WriteString(activeGateStyle.Render("Actions:  "))
	sb.WriteString("Tab Scroll QASM  ^S Save  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// overlayAt draws overlay over bg with its top-left corner at column x of
// line y. Columns are counted in cell width, ignoring escape sequences.
func overlayAt(bg, overlay string, x, y int) string {
	lines := strings.Split(bg, "\n")
	for i, row := range strings.Split(overlay, "\n") {
		if n := y + i; n >= 0 && n < len(lines) {
			lines[n] = spliceLineAt(lines[n], row, x)
		}
	}
	return strings.Join(lines, "\n")
}

// spliceLineAt replaces the cells of line under overlay, padding line with
// spaces when it ends before x.
func spliceLineAt(line, overlay string, x int) string {
	left := ansi.Truncate(line, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	right := ansi.TruncateLeft(line, x+ansi.StringWidth(overlay), "")
	return left + overlay + right
}
