package console

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ptero-tools/pterodactyl-go"
)

func newTestModel() Model {
	srv := pterodactyl.NewClient("https://panel.example.com", "k").Server("abc")
	m := New(srv, defaultConfig())
	m.width = 80
	m.height = 24
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm
}

func TestSessionMessages(t *testing.T) {
	m := newTestModel()

	m = update(t, m, ReadyMsg{})
	if !m.connected {
		t.Error("connected = false after ReadyMsg")
	}

	m = update(t, m, StatusMsg{State: pterodactyl.StateStarting})
	if m.state != pterodactyl.StateStarting {
		t.Errorf("state = %v, want StateStarting", m.state)
	}

	stats := pterodactyl.ServerStats{
		MemoryBytes: 1024,
		State:       pterodactyl.StateRunning,
	}
	m = update(t, m, StatsMsg{Stats: stats})
	if m.stats == nil || m.stats.MemoryBytes != 1024 {
		t.Errorf("stats = %+v", m.stats)
	}
	// Stats snapshots carry the state too.
	if m.state != pterodactyl.StateRunning {
		t.Errorf("state = %v, want StateRunning", m.state)
	}
}

func TestConsoleHistoryCap(t *testing.T) {
	m := newTestModel()
	m.historyLines = 3

	for _, line := range []string{"one", "two", "three", "four", "five"} {
		m = update(t, m, ConsoleLineMsg{Line: line})
	}

	if len(m.lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(m.lines))
	}
	if m.lines[0] != "three" || m.lines[2] != "five" {
		t.Errorf("lines = %v", m.lines)
	}
}

func TestDisconnectedWithErrorStays(t *testing.T) {
	m := newTestModel()
	m = update(t, m, ReadyMsg{})

	next, cmd := m.Update(DisconnectedMsg{Err: errors.New("token invalid")})
	m = next.(Model)
	if m.connected {
		t.Error("connected = true after DisconnectedMsg")
	}
	if cmd != nil {
		t.Error("a failed session should not quit the program")
	}
	if len(m.lines) == 0 || !strings.Contains(m.lines[len(m.lines)-1], "token invalid") {
		t.Errorf("lines = %v, want a disconnect line", m.lines)
	}
}

func TestDisconnectedCleanQuits(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(DisconnectedMsg{})
	if cmd == nil {
		t.Fatal("an orderly close should quit the program")
	}
}

func TestViewShowsState(t *testing.T) {
	m := newTestModel()
	m = update(t, m, StatusMsg{State: pterodactyl.StateRunning})
	m = update(t, m, ConsoleLineMsg{Line: "[Server] Done (2.5s)!"})

	view := m.View()
	if !strings.Contains(view, "abc") {
		t.Error("view does not show the server id")
	}
	if !strings.Contains(view, "running") {
		t.Error("view does not show the power state")
	}
	if !strings.Contains(view, "Done (2.5s)!") {
		t.Error("view does not show console output")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{512, "512B"},
		{2048, "2.0K"},
		{1536 * 1024, "1.5M"},
		{3 * 1024 * 1024 * 1024, "3.0G"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
