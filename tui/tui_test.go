package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"q.log/tableau/model"
	"q.log/tableau/simplex"
)

func tableau(t *testing.T, numReal, numSlack int, rows [][]float64) *model.Tableau {
	t.Helper()
	tab, err := model.NewTableau(numReal, numSlack, len(rows)-1)
	require.NoError(t, err)
	for i, row := range rows {
		for j, v := range row {
			tab.Set(i, j, v)
		}
	}
	return tab
}

func canonical(t *testing.T) *model.Tableau {
	return tableau(t, 2, 3, [][]float64{
		{1, 0, 1, 0, 0, 0, 4, 2},
		{0, 2, 0, 1, 0, 0, 12, 3},
		{3, 2, 0, 0, 1, 0, 18, 4},
		{-3, -5, 0, 0, 0, 1, 0, -1},
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next, cmd
}

func TestNew(t *testing.T) {
	m := New(simplex.NewDriver(canonical(t)))
	assert.Nil(t, m.Init())
	assert.Equal(t, simplex.PhaseSetup, m.Driver().Phase())
	assert.Contains(t, m.View(), "running")
	assert.Contains(t, m.View(), "obj0")
}

func TestUpdate_Step(t *testing.T) {
	m := New(simplex.NewDriver(canonical(t)))

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Nil(t, cmd)
	assert.Equal(t, simplex.PhaseTwo, m.Driver().Phase())
	assert.Equal(t, []string{"setup -> phase 2"}, m.history)

	m, _ = press(t, m, runes("n"))
	assert.Equal(t, 1, m.Driver().Iterations())
	assert.Equal(t, "phase 2: pivot 1", m.history[len(m.history)-1])
}

func TestUpdate_RunToEnd(t *testing.T) {
	m := New(simplex.NewDriver(canonical(t)))

	m, _ = press(t, m, runes("r"))
	require.True(t, m.Driver().Done())
	require.NoError(t, m.Err())
	assert.Equal(t, simplex.OK, m.Driver().Status())
	assert.Equal(t, 2, m.Driver().Iterations())
	assert.Equal(t, "finished: OK", m.history[len(m.history)-1])
	assert.Contains(t, m.View(), "OPTIMAL z=36.0000")

	// Further steps are no-ops.
	n := len(m.history)
	m, _ = press(t, m, runes("n"))
	assert.Len(t, m.history, n)
}

func TestUpdate_Unbounded(t *testing.T) {
	m := New(simplex.NewDriver(tableau(t, 2, 1, [][]float64{
		{1, -1, 1, 0, 1, 2},
		{-1, 0, 0, 1, 0, -1},
	})))

	m, _ = press(t, m, runes("r"))
	require.NoError(t, m.Err(), "unbounded is an outcome, not an error")
	assert.Equal(t, simplex.Unbounded, m.Driver().Status())
	assert.Contains(t, m.View(), "UNBOUNDED")
}

func TestUpdate_Quit(t *testing.T) {
	m := New(simplex.NewDriver(canonical(t)))

	m, cmd := press(t, m, runes("q"))
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestUpdate_HistoryIsBounded(t *testing.T) {
	m := New(simplex.NewDriver(canonical(t)))
	for range historySize + 3 {
		m.record(simplex.PhaseTwo, m.Driver().Iterations())
	}
	assert.Len(t, m.history, historySize)
}
