// Package tui steps a simplex run interactively, one unit of work per key
// press, showing the tableau after every transition.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"q.log/tableau/report"
	"q.log/tableau/simplex"
)

const historySize = 8

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("51")).
			Bold(true).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("46")).
		Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	containerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(1, 2)
)

type keyMap struct {
	Step key.Binding
	Run  key.Binding
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Step, k.Run, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Step: key.NewBinding(key.WithKeys(" ", "n"), key.WithHelp("space/n", "step")),
	Run:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "run to end")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

// Model is the bubbletea model of an interactive run.
type Model struct {
	driver   *simplex.Driver
	keys     keyMap
	help     help.Model
	history  []string
	err      error
	quitting bool
}

func New(d *simplex.Driver) Model {
	return Model{
		driver: d,
		keys:   keys,
		help:   help.New(),
	}
}

// Driver returns the driver being stepped.
func (m Model) Driver() *simplex.Driver { return m.driver }

// Err returns the internal error that stopped the run, if any. Infeasible
// and unbounded outcomes are not errors here; they are read from the
// driver's Status.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Step):
			m.advance()
		case key.Matches(msg, m.keys.Run):
			for !m.finished() {
				m.advance()
			}
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m Model) finished() bool {
	return m.err != nil || m.driver.Done()
}

func (m *Model) advance() {
	if m.finished() {
		return
	}
	phase, iterations := m.driver.Phase(), m.driver.Iterations()
	_, err := m.driver.Advance()
	if _, ok := simplex.StatusOf(err); !ok {
		m.err = err
	}
	m.record(phase, iterations)
}

// record appends a line describing what the last Advance did.
func (m *Model) record(phase simplex.Phase, iterations int) {
	d := m.driver
	var line string
	switch {
	case d.Iterations() > iterations:
		line = fmt.Sprintf("%s: pivot %d", phase, d.Iterations())
	case d.Done():
		line = "finished: " + d.Status().String()
	case d.Phase() != phase:
		line = fmt.Sprintf("%s -> %s", phase, d.Phase())
	default:
		line = fmt.Sprintf("%s: %s", d.Phase(), d.State())
	}
	m.history = append(m.history, line)
	if len(m.history) > historySize {
		m.history = m.history[1:]
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	d := m.driver

	var b strings.Builder
	b.WriteString(headerStyle.Render("simplex") + "  " + m.status() + "\n\n")
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n\n",
		labelStyle.Render("phase"), valueStyle.Render(d.Phase().String()),
		labelStyle.Render("state"), valueStyle.Render(d.State().String()),
		labelStyle.Render("pivots"), valueStyle.Render(fmt.Sprint(d.Iterations())))
	b.WriteString(report.Table(d.Tableau()) + "\n")

	if len(m.history) > 0 {
		b.WriteString("\n")
		for _, line := range m.history {
			b.WriteString(dimStyle.Render(line) + "\n")
		}
	}
	if m.err != nil {
		b.WriteString("\n" + failStyle.Render("error: "+m.err.Error()) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))

	return containerStyle.Render(b.String())
}

func (m Model) status() string {
	d := m.driver
	switch {
	case m.err != nil:
		return failStyle.Render("✗ ERROR")
	case !d.Done():
		return dimStyle.Render("running")
	case d.Status() == simplex.OK:
		return okStyle.Render(fmt.Sprintf("✓ OPTIMAL z=%.4f", d.Tableau().ObjectiveValue()))
	}
	return failStyle.Render("✗ " + d.Status().String())
}
