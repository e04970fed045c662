package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/layout"
	"github.com/abilayout/reclayout/scenarios"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	dumpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// scenarioItem adapts a scenarios.Scenario to list.Item.
type scenarioItem struct {
	scenarios.Scenario
}

func (i scenarioItem) FilterValue() string { return i.Name }
func (i scenarioItem) Title() string       { return i.Name }
func (i scenarioItem) Description() string { return i.Target.ABI().String() }

type modelState int

const (
	statePick modelState = iota
	stateView
)

type interactiveModel struct {
	list     list.Model
	state    modelState
	selected scenarios.Scenario
	abi      reclayout.ABIKind
	dump     string
}

func newInteractiveModel(all []scenarios.Scenario) *interactiveModel {
	items := make([]list.Item, len(all))
	for i, s := range all {
		items[i] = scenarioItem{s}
	}
	l := list.New(items, list.NewDefaultDelegate(), 60, 20)
	l.Title = "Record layout scenarios"
	return &interactiveModel{list: l, state: statePick}
}

func (m *interactiveModel) Init() tea.Cmd { return nil }

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-4)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state == stateView {
				m.state = statePick
				return m, nil
			}
			return m, tea.Quit

		case "enter":
			if m.state == statePick {
				item, ok := m.list.SelectedItem().(scenarioItem)
				if !ok {
					return m, nil
				}
				m.selected = item.Scenario
				m.abi = item.Target.ABI()
				m.render()
				m.state = stateView
			}

		case "m":
			if m.state == stateView {
				m.toggleABI()
				m.render()
			}

		case "esc":
			if m.state == stateView {
				m.state = statePick
			}
		}
	}

	if m.state == statePick {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

// toggleABI flips the view's ABI without altering the underlying scenario's
// own declared target — a quick way to compare the two algorithms on the
// same declaration.
func (m *interactiveModel) toggleABI() {
	if m.abi == reclayout.ABIItanium {
		m.abi = reclayout.ABIMicrosoft
	} else {
		m.abi = reclayout.ABIItanium
	}
}

func (m *interactiveModel) render() {
	tgt := withABI(m.selected.Target, m.abi.String())
	cache := layout.New(tgt)
	var b strings.Builder
	cache.DumpRecordLayout(&b, m.selected.Record, false)
	m.dump = b.String()
}

func (m *interactiveModel) View() string {
	switch m.state {
	case stateView:
		var b strings.Builder
		b.WriteString(titleStyle.Render(m.selected.Name))
		b.WriteString(" ")
		b.WriteString(fmt.Sprintf("(%s)", m.abi))
		b.WriteString("\n\n")
		b.WriteString(dumpStyle.Render(m.dump))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("m toggle ABI • esc/q back"))
		return b.String()
	default:
		return m.list.View()
	}
}

func runInteractive(all []scenarios.Scenario) error {
	p := tea.NewProgram(newInteractiveModel(all), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
