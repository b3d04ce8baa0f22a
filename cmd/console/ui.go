package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/encounter-engine/pkg/encounter"
	"github.com/muesli/reflow/wordwrap"
)

const PlaceHolderText = "enc forest medium 3 3 4 ... (/help for commands)"

// ConsoleUI is the BubbleTea model that runs the UI.
type ConsoleUI struct {
	api      *apiClient
	input    textinput.Model
	viewport viewport.Model
	ready    bool
	width    int
	height   int
	loading  bool

	entries  []string
	lastJSON []byte
	lastEnc  *encounter.Result
	seed     *uint64
	status   string

	// copyFn is swapped out in tests.
	copyFn func(string) error
}

// responseMsg carries the rendered outcome of an API call back to Update.
type responseMsg struct {
	text string
	raw  []byte
	enc  *encounter.Result
	err  error
}

var (
	panelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow
)

func NewConsoleUI(api *apiClient) ConsoleUI {
	ti := textinput.New()
	ti.Placeholder = PlaceHolderText
	ti.Prompt = promptStyle.Render(":: ")
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()

	vp := viewport.New(60, 20)
	vp.MouseWheelEnabled = true

	return ConsoleUI{
		api:      api,
		input:    ti,
		viewport: vp,
		entries:  []string{titleStyle.Render("ENCOUNTER ENGINE") + "\n" + helpText},
		copyFn:   clipboard.WriteAll,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return textinput.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 5
		m.input.Width = msg.Width - 8
		m.ready = true
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlY:
			m.copyLast()
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			input := strings.TrimSpace(m.input.Value())
			if input == "" {
				return m, nil
			}
			m.input.Reset()
			m.entries = append(m.entries, commandStyle.Render(":: "+input))
			return m.runCommand(input)
		}

	case responseMsg:
		m.loading = false
		m.status = ""
		if msg.raw != nil {
			m.lastJSON = msg.raw
		}
		if msg.err != nil {
			m.entries = append(m.entries, errorStyle.Render("Error: "+msg.err.Error()))
		} else {
			m.entries = append(m.entries, msg.text)
			if msg.enc != nil {
				m.lastEnc = msg.enc
			}
		}
		m.refresh()
		return m, nil
	}

	m.input, tiCmd = m.input.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

func (m ConsoleUI) runCommand(input string) (tea.Model, tea.Cmd) {
	cmd, err := parseCommand(input)
	if err != nil {
		m.entries = append(m.entries, errorStyle.Render(err.Error()))
		m.refresh()
		return m, nil
	}

	switch cmd.kind {
	case cmdHelp:
		m.entries = append(m.entries, helpText)
	case cmdSeed:
		m.seed = cmd.seed
		if m.seed == nil {
			m.entries = append(m.entries, dimStyle.Render("seed cleared; requests use a fresh seed"))
		} else {
			m.entries = append(m.entries, dimStyle.Render(fmt.Sprintf("seed fixed at %d", *m.seed)))
		}
	case cmdSpawn:
		if m.lastEnc == nil {
			m.entries = append(m.entries, errorStyle.Render("no encounter yet; run enc first"))
			break
		}
		text, err := formatCombatants(m.lastEnc)
		if err != nil {
			m.entries = append(m.entries, errorStyle.Render(err.Error()))
			break
		}
		m.entries = append(m.entries, text)
	default:
		m.loading = true
		m.status = "working..."
		m.refresh()
		return m, m.request(cmd)
	}

	m.refresh()
	return m, nil
}

// request runs an API-backed command off the UI goroutine.
func (m ConsoleUI) request(cmd command) tea.Cmd {
	api, seed, width := m.api, m.seed, m.contentWidth()
	return func() tea.Msg {
		switch cmd.kind {
		case cmdEncounter:
			req := cmd.encounter
			req.Seed = seed
			rec, raw, err := api.createEncounter(req)
			if err != nil {
				return responseMsg{raw: raw, err: err}
			}
			return responseMsg{text: formatEncounter(rec, width), raw: raw, enc: rec.Encounter}
		case cmdShow:
			rec, raw, err := api.getEncounter(cmd.id)
			if err != nil {
				return responseMsg{raw: raw, err: err}
			}
			return responseMsg{text: formatEncounter(rec, width), raw: raw, enc: rec.Encounter}
		case cmdLoot:
			req := cmd.treasure
			req.Seed = seed
			resp, raw, err := api.generateTreasure(req)
			if err != nil {
				return responseMsg{raw: raw, err: err}
			}
			text := formatTreasure(resp.Treasure, width) + dimStyle.Render(fmt.Sprintf("seed %d", resp.Seed))
			return responseMsg{text: text, raw: raw}
		case cmdRoll:
			resp, raw, err := api.roll(cmd.dice, seed)
			if err != nil {
				return responseMsg{raw: raw, err: err}
			}
			return responseMsg{text: formatRoll(resp), raw: raw}
		case cmdLocations:
			resp, raw, err := api.listLocations()
			if err != nil {
				return responseMsg{raw: raw, err: err}
			}
			return responseMsg{text: formatLocations(resp, width), raw: raw}
		}
		return responseMsg{err: fmt.Errorf("unsupported command")}
	}
}

func (m *ConsoleUI) copyLast() {
	if len(m.lastJSON) == 0 {
		m.status = "nothing to copy yet"
		return
	}
	if err := m.copyFn(string(m.lastJSON)); err != nil {
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = "copied last response to clipboard"
}

func (m ConsoleUI) contentWidth() int {
	if m.viewport.Width > 10 {
		return m.viewport.Width - 2
	}
	return 60
}

// refresh rewraps every entry for the current width and scrolls to the end.
func (m *ConsoleUI) refresh() {
	width := m.contentWidth()
	var content strings.Builder
	for _, e := range m.entries {
		content.WriteString(wordwrap.String(e, width))
		content.WriteString("\n\n")
	}
	m.viewport.SetContent(content.String())
	m.viewport.GotoBottom()
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	status := m.status
	if m.seed != nil {
		status = strings.TrimSpace(fmt.Sprintf("seed %d  %s", *m.seed, status))
	}

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		dimStyle.Render(strings.Repeat("─", max(m.width-4, 1))),
		m.input.View(),
		statusStyle.Render(status),
	))
}
