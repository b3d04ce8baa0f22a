package main

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sized(t *testing.T, m ConsoleUI) ConsoleUI {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(ConsoleUI)
}

func submit(t *testing.T, m ConsoleUI, input string) (ConsoleUI, tea.Cmd) {
	t.Helper()
	m.input.SetValue(input)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(ConsoleUI), cmd
}

func TestConsoleUI_EncounterThenSpawn(t *testing.T) {
	m := sized(t, NewConsoleUI(newTestAPI(t)))
	assert.Contains(t, m.View(), "ENCOUNTER ENGINE")

	m, cmd := submit(t, m, "seed 9")
	assert.Nil(t, cmd)
	require.NotNil(t, m.seed)

	m, cmd = submit(t, m, "enc dungeon hard 5 5 5 5 hoard")
	require.NotNil(t, cmd)
	assert.True(t, m.loading)

	next, _ := m.Update(cmd())
	m = next.(ConsoleUI)
	assert.False(t, m.loading)
	require.NotNil(t, m.lastEnc)
	assert.NotEmpty(t, m.lastJSON)
	assert.Contains(t, m.entries[len(m.entries)-1], "seed 9")

	m, cmd = submit(t, m, "spawn")
	assert.Nil(t, cmd)
	assert.Contains(t, m.entries[len(m.entries)-1], "Combatants")
}

func TestConsoleUI_Errors(t *testing.T) {
	m := sized(t, NewConsoleUI(newTestAPI(t)))

	m, cmd := submit(t, m, "spawn")
	assert.Nil(t, cmd)
	assert.Contains(t, m.entries[len(m.entries)-1], "no encounter yet")

	m, _ = submit(t, m, "fireball")
	assert.Contains(t, m.entries[len(m.entries)-1], "unknown command")

	m, cmd = submit(t, m, "show 6f1c2a9e-2a43-4c1a-9d7e-0b8f9b2f4a11")
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	m = next.(ConsoleUI)
	assert.Contains(t, m.entries[len(m.entries)-1], "Encounter not found")
}

func TestConsoleUI_CopyLast(t *testing.T) {
	m := sized(t, NewConsoleUI(newTestAPI(t)))
	var copied string
	m.copyFn = func(s string) error {
		copied = s
		return nil
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	m = next.(ConsoleUI)
	assert.Equal(t, "nothing to copy yet", m.status)

	m, cmd := submit(t, m, "roll 1d20")
	next, _ = m.Update(cmd())
	m = next.(ConsoleUI)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	m = next.(ConsoleUI)
	assert.Equal(t, string(m.lastJSON), copied)
	assert.Contains(t, copied, `"dice":"1d20"`)

	m.copyFn = func(string) error { return errors.New("no clipboard") }
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "copy failed: no clipboard", next.(ConsoleUI).status)
}
