package main

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// cliffordTGates is the target gate set of the transpiler.
var cliffordTGates = map[string]bool{
	GateI: true, GateX: true, GateY: true, GateZ: true, GateH: true,
	GateS: true, GateSdg: true, GateT: true, GateTdg: true,
	GateCNOT: true, GateCZ: true, GateSWAP: true,
}

// Summary holds resource counts for a circuit.
type Summary struct {
	Qubits     int
	Operations int
	GateCounts map[string]int
	TCount     int
	Rotations  int
	MultiQubit int
	Depth      int
	TDepth     int
	CliffordT  bool
}

// Summarize counts gates and computes depths for c.
func Summarize(c Circuit) Summary {
	s := Summary{
		Qubits:     c.NumQubits(),
		Operations: c.Len(),
		GateCounts: make(map[string]int),
		CliffordT:  true,
	}
	for _, op := range c.Operations() {
		s.GateCounts[op.Gate.Name]++
		if isTGate(op) {
			s.TCount++
		}
		if len(op.Gate.Params) > 0 {
			s.Rotations++
		}
		if len(op.Qubits) > 1 {
			s.MultiQubit++
		}
		if !cliffordTGates[op.Gate.Name] {
			s.CliffordT = false
		}
	}
	dag := NewCircuitDAG(c)
	s.Depth = dag.Depth()
	s.TDepth = TDepth(c)
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d qubits, %d ops, depth %d, T-count %d, T-depth %d",
		s.Qubits, s.Operations, s.Depth, s.TCount, s.TDepth)
}

func newReportTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(reportBorderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return reportHeaderStyle
			case col == 0:
				return reportDimStyle
			default:
				return reportCellStyle
			}
		})
}

func summaryRows(summaries ...Summary) [][]string {
	metric := func(name string, f func(Summary) string) []string {
		row := []string{name}
		for _, s := range summaries {
			row = append(row, f(s))
		}
		return row
	}
	itoa := strconv.Itoa
	rows := [][]string{
		metric("qubits", func(s Summary) string { return itoa(s.Qubits) }),
		metric("operations", func(s Summary) string { return itoa(s.Operations) }),
		metric("depth", func(s Summary) string { return itoa(s.Depth) }),
		metric("T-count", func(s Summary) string { return itoa(s.TCount) }),
		metric("T-depth", func(s Summary) string { return itoa(s.TDepth) }),
		metric("rotations", func(s Summary) string { return itoa(s.Rotations) }),
		metric("multi-qubit", func(s Summary) string { return itoa(s.MultiQubit) }),
		metric("clifford+T", func(s Summary) string { return strconv.FormatBool(s.CliffordT) }),
	}

	names := make(map[string]bool)
	for _, s := range summaries {
		for name := range s.GateCounts {
			names[name] = true
		}
	}
	for _, name := range slices.Sorted(maps.Keys(names)) {
		rows = append(rows, metric("  "+name, func(s Summary) string { return itoa(s.GateCounts[name]) }))
	}
	return rows
}

// RenderSummary renders a single summary as a two-column table.
func RenderSummary(s Summary) string {
	return newReportTable("metric", "value").Rows(summaryRows(s)...).Render()
}

// RenderComparison renders resource counts of a circuit before and after
// transpilation side by side.
func RenderComparison(before, after Summary) string {
	return newReportTable("metric", "input", "clifford+T").Rows(summaryRows(before, after)...).Render()
}

// RenderProbabilities renders per-qubit measurement probabilities.
func RenderProbabilities(probs []QubitProbability) string {
	t := newReportTable("qubit", "P(0)", "P(1)")
	for q, p := range probs {
		t.Row(strconv.Itoa(q), strconv.FormatFloat(p.Prob0, 'f', 4, 64), strconv.FormatFloat(p.Prob1, 'f', 4, 64))
	}
	return t.Render()
}
