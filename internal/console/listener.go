package console

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ptero-tools/pterodactyl-go"
)

// --- Bubble Tea messages ---

// ReadyMsg is sent when the websocket session is authenticated.
type ReadyMsg struct{}

// StatusMsg delivers a power state change.
type StatusMsg struct{ State pterodactyl.ServerState }

// ConsoleLineMsg delivers one console output line.
type ConsoleLineMsg struct{ Line string }

// StatsMsg delivers a resource usage snapshot.
type StatsMsg struct{ Stats pterodactyl.ServerStats }

// DisconnectedMsg is sent when the websocket session ends. Err is nil on an
// orderly close.
type DisconnectedMsg struct{ Err error }

// CommandResultMsg reports the outcome of a command or power action sent
// over the REST API.
type CommandResultMsg struct{ Err error }

// teaListener forwards websocket events into the Bubble Tea program. On
// ready it asks the panel to replay the recent log and push a stats
// snapshot, so the console fills immediately.
type teaListener struct {
	send func(tea.Msg)
}

func (l teaListener) OnReady(h *pterodactyl.Handle) error {
	if err := h.RequestLogs(); err != nil {
		return err
	}
	if err := h.RequestStats(); err != nil {
		return err
	}
	l.send(ReadyMsg{})
	return nil
}

func (l teaListener) OnStatus(_ *pterodactyl.Handle, state pterodactyl.ServerState) error {
	l.send(StatusMsg{State: state})
	return nil
}

func (l teaListener) OnConsoleOutput(_ *pterodactyl.Handle, line string) error {
	l.send(ConsoleLineMsg{Line: line})
	return nil
}

func (l teaListener) OnStats(_ *pterodactyl.Handle, stats pterodactyl.ServerStats) error {
	l.send(StatsMsg{Stats: stats})
	return nil
}

// Run drives the server's websocket session, forwarding events through
// send. It blocks until the session ends and always delivers a final
// DisconnectedMsg. Run it in its own goroutine next to the program.
func Run(ctx context.Context, srv *pterodactyl.Server, send func(tea.Msg)) {
	err := srv.RunWebSocket(ctx, nil, teaListener{send: send})
	send(DisconnectedMsg{Err: err})
}
