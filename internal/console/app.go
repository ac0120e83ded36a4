package console

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ptero-tools/pterodactyl-go"
)

// Model is the root Bubble Tea model for the server console.
type Model struct {
	server *pterodactyl.Server
	keys   KeyMap
	width  int
	height int

	// Session state.
	connected bool
	state     pterodactyl.ServerState
	stats     *pterodactyl.ServerStats

	// Console history, newest last, capped at historyLines.
	lines        []string
	historyLines int

	input textinput.Model
}

// New creates the root model for the given server.
func New(srv *pterodactyl.Server, cfg *Config) Model {
	input := textinput.New()
	input.Placeholder = "command"
	input.Prompt = "> "
	input.Focus()

	historyLines := cfg.Console.HistoryLines
	if historyLines <= 0 {
		historyLines = 1000
	}

	return Model{
		server:       srv,
		keys:         DefaultKeyMap(),
		historyLines: historyLines,
		input:        input,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReadyMsg:
		m.connected = true
		return m, nil

	case StatusMsg:
		m.state = msg.State
		return m, nil

	case ConsoleLineMsg:
		m.appendLine(msg.Line)
		return m, nil

	case StatsMsg:
		stats := msg.Stats
		m.stats = &stats
		m.state = stats.State
		return m, nil

	case CommandResultMsg:
		if msg.Err != nil {
			m.appendLine(styleError.Render("error: " + msg.Err.Error()))
		}
		return m, nil

	case DisconnectedMsg:
		m.connected = false
		if msg.Err != nil {
			m.appendLine(styleError.Render("disconnected: " + msg.Err.Error()))
			return m, nil
		}
		return m, tea.Quit
	}

	// Everything else (cursor blinks and the like) belongs to the input.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Send):
		command := m.input.Value()
		if command == "" {
			return m, nil
		}
		m.input.Reset()
		m.appendLine(styleDimmed.Render("> " + command))
		return m, m.sendCommand(command)

	case key.Matches(msg, m.keys.Start):
		return m, m.sendPowerSignal(pterodactyl.SignalStart)

	case key.Matches(msg, m.keys.Stop):
		return m, m.sendPowerSignal(pterodactyl.SignalStop)

	case key.Matches(msg, m.keys.Restart):
		return m, m.sendPowerSignal(pterodactyl.SignalRestart)

	case key.Matches(msg, m.keys.Kill):
		return m, m.sendPowerSignal(pterodactyl.SignalKill)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// sendCommand dispatches a console command over the REST API, so it works
// even while the websocket is re-authenticating.
func (m Model) sendCommand(command string) tea.Cmd {
	srv := m.server
	return func() tea.Msg {
		return CommandResultMsg{Err: srv.SendCommand(context.Background(), command)}
	}
}

func (m Model) sendPowerSignal(signal pterodactyl.PowerSignal) tea.Cmd {
	srv := m.server
	return func() tea.Msg {
		return CommandResultMsg{Err: srv.SendPowerSignal(context.Background(), signal)}
	}
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	if len(m.lines) > m.historyLines {
		m.lines = m.lines[len(m.lines)-m.historyLines:]
	}
}

// View renders the console.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Connecting..."
	}

	sections := []string{
		m.renderStatusBar(),
		m.renderConsole(),
		m.input.View(),
		styleDimmed.Render("  enter:send  ctrl+s:start  ctrl+x:stop  ctrl+r:restart  ctrl+k:kill  ctrl+c:quit"),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderStatusBar() string {
	stateStr := lipgloss.NewStyle().Foreground(stateColor(m.state)).Render(m.state.String())

	conn := "connecting"
	if m.connected {
		conn = "connected"
	}

	bar := styleHeader.Render(m.server.ID()) + "  " + stateStr + "  " + styleDimmed.Render(conn)
	if m.stats != nil {
		bar += "  " + styleDimmed.Render(fmt.Sprintf("mem %s/%s  cpu %.1f%%",
			formatBytes(m.stats.MemoryBytes),
			formatBytes(m.stats.MemoryLimitBytes),
			m.stats.CPUAbsolute))
	}
	return bar
}

func (m Model) renderConsole() string {
	// Status bar, input and help line take three rows.
	visible := m.height - 3
	if visible < 1 {
		visible = 1
	}

	lines := m.lines
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}

	out := make([]string, visible)
	copy(out, lines)
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%c", float64(n)/float64(div), "KMGTPE"[exp])
}
