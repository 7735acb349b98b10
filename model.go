package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
)

// Stage is one named version of a circuit shown by the viewer, for example
// the input circuit and its Clifford+T rewrite.
type Stage struct {
	Name    string
	Circuit Circuit
}

// stageView caches everything derived from a stage's circuit.
type stageView struct {
	Stage
	moments []Moment
	qasm    string
	summary Summary
}

func newStageView(s Stage) stageView {
	qasm, err := ToQASM(s.Circuit)
	if err != nil {
		qasm = "// " + err.Error()
	}
	return stageView{
		Stage:   s,
		moments: Moments(s.Circuit),
		qasm:    qasm,
		summary: Summarize(s.Circuit),
	}
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Home   key.Binding
	End    key.Binding
	Tab    key.Binding
	Stages key.Binding
	Select key.Binding
	Back   key.Binding
	Save   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Left:   key.NewBinding(key.WithKeys("left", "h")),
	Right:  key.NewBinding(key.WithKeys("right", "l")),
	Home:   key.NewBinding(key.WithKeys("home", "g")),
	End:    key.NewBinding(key.WithKeys("end", "G")),
	Tab:    key.NewBinding(key.WithKeys("tab")),
	Stages: key.NewBinding(key.WithKeys("s")),
	Select: key.NewBinding(key.WithKeys("enter")),
	Back:   key.NewBinding(key.WithKeys("esc")),
	Save:   key.NewBinding(key.WithKeys("ctrl+s")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c")),
}

// Model is the read-only circuit viewer state.
type Model struct {
	stages      []stageView
	stage       int
	cursorQubit int
	cursorStep  int
	width       int
	height      int
	qasmView    viewport.Model
	focus       focus
	statusMsg   string // transient status message (e.g. save confirmation)
	savePrefix  string

	// Stage picker state
	menuItem int
}

// NewModel returns a viewer over the given stages. The first stage is shown
// initially. ctrl+s writes the displayed stage to <savePrefix>_<stage>.qasm.
func NewModel(savePrefix string, stages ...Stage) Model {
	m := Model{
		qasmView:   viewport.New(40, 20),
		focus:      focusCircuit,
		savePrefix: savePrefix,
	}
	for _, s := range stages {
		m.stages = append(m.stages, newStageView(s))
	}
	if len(m.stages) == 0 {
		m.stages = []stageView{newStageView(Stage{Name: "empty", Circuit: NewCircuit(1)})}
	}
	m.selectStage(0)
	return m
}

func (m *Model) current() stageView { return m.stages[m.stage] }

func (m *Model) selectStage(i int) {
	m.stage = i
	sv := m.current()
	m.cursorQubit = min(m.cursorQubit, max(sv.Circuit.NumQubits()-1, 0))
	m.cursorStep = min(m.cursorStep, max(len(sv.moments)-1, 0))
	m.qasmView.SetContent(sv.qasm)
	m.qasmView.GotoTop()
}

// savePath is where ctrl+s writes the displayed stage.
func (m Model) savePath() string {
	return fmt.Sprintf("%s_%s.qasm", m.savePrefix, m.current().Name)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.qasmView.Width = max(msg.Width/3-6, 20)
		m.qasmView.Height = max(msg.Height-controlsHeight-8, 4)

	case tea.KeyMsg:
		m.statusMsg = ""

		switch {
		case key.Matches(msg, keys.Quit) && m.focus != focusMenu:
			return m, tea.Quit
		case key.Matches(msg, keys.Save):
			m.saveStage()
			return m, nil
		}

		switch m.focus {
		case focusCircuit:
			m.updateCircuit(msg)
		case focusQASM:
			if key.Matches(msg, keys.Tab) || key.Matches(msg, keys.Back) {
				m.focus = focusCircuit
				return m, nil
			}
			m.qasmView, cmd = m.qasmView.Update(msg)
		case focusMenu:
			m.updateMenu(msg)
		}
	}

	return m, cmd
}

func (m *Model) updateCircuit(msg tea.KeyMsg) {
	sv := m.current()
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursorQubit > 0 {
			m.cursorQubit--
		}
	case key.Matches(msg, keys.Down):
		if m.cursorQubit < sv.Circuit.NumQubits()-1 {
			m.cursorQubit++
		}
	case key.Matches(msg, keys.Left):
		if m.cursorStep > 0 {
			m.cursorStep--
		}
	case key.Matches(msg, keys.Right):
		if m.cursorStep < len(sv.moments)-1 {
			m.cursorStep++
		}
	case key.Matches(msg, keys.Home):
		m.cursorStep = 0
	case key.Matches(msg, keys.End):
		m.cursorStep = max(len(sv.moments)-1, 0)
	case key.Matches(msg, keys.Tab):
		m.focus = focusQASM
	case key.Matches(msg, keys.Stages):
		m.focus = focusMenu
		m.menuItem = m.stage
	}
}

func (m *Model) updateMenu(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.menuItem > 0 {
			m.menuItem--
		}
	case key.Matches(msg, keys.Down):
		if m.menuItem < len(m.stages)-1 {
			m.menuItem++
		}
	case key.Matches(msg, keys.Select):
		m.selectStage(m.menuItem)
		m.focus = focusCircuit
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Quit):
		m.focus = focusCircuit
	}
}

func (m *Model) saveStage() {
	path := m.savePath()
	if err := os.WriteFile(path, []byte(m.current().qasm), 0644); err != nil {
		m.statusMsg = fmt.Sprintf("Save error: %v", err)
		return
	}
	m.statusMsg = "Saved " + path
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	qasmWidth := m.width / 3
	circuitWidth := m.width - qasmWidth - 4
	circuitHeight := max(m.height-controlsHeight-2, 6)

	circuitPanel := m.renderCircuitPanel(circuitWidth, circuitHeight)
	qasmPanel := m.renderQASMPanel(qasmWidth, circuitHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, qasmPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}

	return frame
}
