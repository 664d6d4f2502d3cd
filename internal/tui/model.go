// Package tui is a bubbletea terminal monitor that polls cmd/driver's
// HTTP status API and renders UPS state, grounded on guiperry-HASHER's
// internal/cli/ui/ui.go Model/Update/View skeleton and lipgloss panel
// styling (bordered panes, a black-on-yellow header bar, a grey footer).
package tui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#FFFF00")).
			Padding(0, 2).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4B5563")).
			Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#9CA3AF")).
			Padding(0, 1)

	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Italic(true)
)

// variable mirrors the JSON shape of internal/store.Variable, decoded
// independently so this package has no compile-time dependency on the
// driver process.
type variable struct {
	Name      string  `json:"Name"`
	Numeric   float64 `json:"Numeric"`
	Formatted string  `json:"Formatted"`
	UpdatedAt time.Time `json:"UpdatedAt"`
	Err       string  `json:"Err"`
}

type statusResponse struct {
	Variables map[string]variable `json:"variables"`
	PollStats struct {
		Cycles       uint64    `json:"Cycles"`
		ReadOK       uint64    `json:"ReadOK"`
		ReadFailed   uint64    `json:"ReadFailed"`
		LastCycleAt  time.Time `json:"LastCycleAt"`
		LastDuration int64     `json:"LastDuration"`
	} `json:"poll_stats"`
}

// tickMsg fires the periodic poll against the driver's HTTP API.
type tickMsg time.Time

// statusMsg carries a fetched (or failed) status response.
type statusMsg struct {
	status statusResponse
	err    error
}

// Model is the bubbletea root model for the monitor.
type Model struct {
	apiBase      string
	client       *http.Client
	pollInterval time.Duration

	width, height int
	last          statusResponse
	lastErr       error
	quitting      bool
}

// New builds a Model polling apiBase (e.g. "http://localhost:8080") every
// pollInterval.
func New(apiBase string, pollInterval time.Duration) Model {
	return Model{
		apiBase:      apiBase,
		client:       &http.Client{Timeout: 5 * time.Second},
		pollInterval: pollInterval,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchStatus(), tickEvery(m.pollInterval))
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) fetchStatus() tea.Cmd {
	return func() tea.Msg {
		resp, err := m.client.Get(m.apiBase + "/api/v1/status")
		if err != nil {
			return statusMsg{err: err}
		}
		defer resp.Body.Close()

		var status statusResponse
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{status: status}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.fetchStatus(), tickEvery(m.pollInterval))

	case statusMsg:
		if msg.err != nil {
			m.lastErr = msg.err
		} else {
			m.last = msg.status
			m.lastErr = nil
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := headerStyle.Render("APC Smart-UPS MODBUS-over-HID monitor")

	var body string
	if m.lastErr != nil {
		body = panelStyle.Render(errorStyle.Render(fmt.Sprintf("status fetch failed: %v", m.lastErr)))
	} else {
		body = panelStyle.Render(m.renderVariables())
	}

	footer := footerStyle.Render(fmt.Sprintf(
		"cycles=%d ok=%d failed=%d  %s",
		m.last.PollStats.Cycles, m.last.PollStats.ReadOK, m.last.PollStats.ReadFailed,
		helpStyle.Render("q to quit"),
	))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderVariables() string {
	names := make([]string, 0, len(m.last.Variables))
	for name := range m.last.Variables {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		v := m.last.Variables[name]
		b.WriteString(nameStyle.Render(name))
		b.WriteString(" = ")
		if v.Err != "" {
			b.WriteString(errorStyle.Render(v.Err))
		} else {
			b.WriteString(v.Formatted)
		}
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return "(no variables polled yet)"
	}
	return b.String()
}
