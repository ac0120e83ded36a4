package pterodactyl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/gorilla/websocket"
)

// Stream is the duplex message stream the websocket loop runs over.
// *websocket.Conn satisfies it; tests substitute in-memory fakes.
type Stream interface {
	ReadMessage() (messageType int, data []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// StreamFactory opens a Stream to the given socket URL. It is invoked
// exactly once per RunWebSocket call; the loop never reconnects a dropped
// stream itself.
type StreamFactory func(ctx context.Context, socketURL string) (Stream, error)

// DialStream is the default StreamFactory, dialing with
// websocket.DefaultDialer.
func DialStream(ctx context.Context, socketURL string) (Stream, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, socketURL, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Listener receives websocket events for a server. Embed NopListener to
// implement only the callbacks you care about. Returning an error from any
// callback ends the loop with that error.
type Listener interface {
	// OnReady is called once per session, after the panel acknowledges
	// authentication.
	OnReady(h *Handle) error
	// OnStatus is called when the server's power state changes.
	OnStatus(h *Handle, state ServerState) error
	// OnConsoleOutput is called once per console line, in order.
	OnConsoleOutput(h *Handle, line string) error
	// OnStats is called when a resource stats snapshot is received.
	OnStats(h *Handle, stats ServerStats) error
}

// NopListener implements Listener with no-ops.
type NopListener struct{}

func (NopListener) OnReady(*Handle) error                 { return nil }
func (NopListener) OnStatus(*Handle, ServerState) error   { return nil }
func (NopListener) OnConsoleOutput(*Handle, string) error { return nil }
func (NopListener) OnStats(*Handle, ServerStats) error    { return nil }

// ServerStats is a resource snapshot pushed over the websocket.
type ServerStats struct {
	// MemoryBytes is the server's memory usage in bytes.
	MemoryBytes uint64 `json:"memory_bytes"`
	// MemoryLimitBytes is the memory limit in bytes.
	MemoryLimitBytes uint64 `json:"memory_limit_bytes"`
	// CPUAbsolute is the CPU usage in percent.
	CPUAbsolute float32 `json:"cpu_absolute"`
	// Network is the network transfer counters.
	Network NetworkStats `json:"network"`
	// State is the server's power state.
	State ServerState `json:"state"`
	// DiskBytes is the disk usage in bytes.
	DiskBytes uint64 `json:"disk_bytes"`
}

// NetworkStats is the network counters inside ServerStats.
type NetworkStats struct {
	RxBytes uint64 `json:"rx_bytes"`
	TxBytes uint64 `json:"tx_bytes"`
}

// Inbound event tags. Anything else is ignored once the session is ready.
const (
	eventAuthSuccess   = "auth success"
	eventStatus        = "status"
	eventConsoleOutput = "console output"
	eventStats         = "stats"
	eventTokenExpiring = "token expiring"
	eventTokenExpired  = "token expired"
)

// authPhase gates event dispatch: nothing but the authentication
// acknowledgment may be processed before the session is ready.
type authPhase int

const (
	phaseUnauthenticated authPhase = iota
	phaseReady
)

// webSocketLink is the one-time connection credential issued by the panel.
type webSocketLink struct {
	Token  string `json:"token"`
	Socket string `json:"socket"`
}

func (s *Server) webSocketLink(ctx context.Context) (webSocketLink, error) {
	var out dataResponse[webSocketLink]
	if err := s.client.get(ctx, "servers/"+s.id+"/websocket", &out); err != nil {
		return webSocketLink{}, err
	}
	return out.Data, nil
}

// RunWebSocket connects to this server's console websocket and runs the
// event loop until the peer closes the stream, the listener requests a
// disconnect, or a fatal error occurs. dial may be nil to use DialStream.
//
// The loop is single-threaded: it blocks on the next inbound frame and only
// writes synchronously from within Handle methods, so outbound ordering
// matches call order. ctx covers the credential fetches and the dial; the
// loop itself has no timeout and blocks for as long as the peer stays quiet.
func (s *Server) RunWebSocket(ctx context.Context, dial StreamFactory, listener Listener) error {
	link, err := s.webSocketLink(ctx)
	if err != nil {
		return err
	}
	if dial == nil {
		dial = DialStream
	}
	conn, err := dial(ctx, link.Socket)
	if err != nil {
		return err
	}
	defer conn.Close()

	sess := &wsSession{
		server:   s,
		conn:     conn,
		listener: listener,
		phase:    phaseUnauthenticated,
	}
	return sess.run(ctx, link.Token)
}

// wsSession owns the stream and listener for the lifetime of one
// connection.
type wsSession struct {
	server   *Server
	conn     Stream
	listener Listener
	phase    authPhase
}

func (sess *wsSession) run(ctx context.Context, token string) error {
	if err := sess.auth(token); err != nil {
		return err
	}
	for {
		msgType, data, err := sess.conn.ReadMessage()
		if err != nil {
			if isPeerClose(err) {
				return nil
			}
			return err
		}
		if msgType != websocket.TextMessage {
			return fmt.Errorf("%w: non-text frame", ErrUnexpectedMessage)
		}
		stop, err := sess.dispatch(ctx, data)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
}

// isPeerClose reports whether a read error means the peer ended the stream
// in an orderly way, which terminates the loop without error.
func isPeerClose(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}

func (sess *wsSession) dispatch(ctx context.Context, data []byte) (stop bool, err error) {
	var msg struct {
		Event string   `json:"event"`
		Args  []string `json:"args"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnexpectedMessage, err)
	}

	// The panel invalidating the session is fatal regardless of phase.
	if msg.Event == eventTokenExpired {
		return false, ErrTokenExpired
	}
	if sess.phase != phaseReady && msg.Event != eventAuthSuccess {
		return false, fmt.Errorf("%w: %q before authentication", ErrUnexpectedMessage, msg.Event)
	}

	switch msg.Event {
	case eventAuthSuccess:
		if sess.phase == phaseReady {
			// Acknowledgment of a token refresh; OnReady fires once only.
			return false, nil
		}
		sess.phase = phaseReady
		return sess.invoke(func(h *Handle) error {
			return sess.listener.OnReady(h)
		})

	case eventStatus:
		if len(msg.Args) == 0 {
			return false, fmt.Errorf("%w: status event without state", ErrUnexpectedMessage)
		}
		state, perr := parseServerState(msg.Args[0])
		if perr != nil {
			return false, fmt.Errorf("%w: %v", ErrUnexpectedMessage, perr)
		}
		return sess.invoke(func(h *Handle) error {
			return sess.listener.OnStatus(h, state)
		})

	case eventConsoleOutput:
		return sess.invoke(func(h *Handle) error {
			for _, line := range msg.Args {
				if err := sess.listener.OnConsoleOutput(h, line); err != nil {
					return err
				}
			}
			return nil
		})

	case eventStats:
		if len(msg.Args) == 0 {
			return false, fmt.Errorf("%w: stats event without payload", ErrUnexpectedMessage)
		}
		var stats ServerStats
		if uerr := json.Unmarshal([]byte(msg.Args[0]), &stats); uerr != nil {
			return false, fmt.Errorf("%w: %v", ErrUnexpectedMessage, uerr)
		}
		return sess.invoke(func(h *Handle) error {
			return sess.listener.OnStats(h, stats)
		})

	case eventTokenExpiring:
		// Refresh in place: new credential, same stream, no listener
		// notification. The next "auth success" is swallowed above.
		link, lerr := sess.server.webSocketLink(ctx)
		if lerr != nil {
			return false, lerr
		}
		return false, sess.auth(link.Token)

	default:
		// Unknown events are expected; the panel adds kinds this client
		// does not act on.
		return false, nil
	}
}

// invoke runs one listener callback with a fresh Handle and collects its
// stop flag. The handle is invalidated afterwards, so at most one usable
// handle exists at any instant.
func (sess *wsSession) invoke(fn func(*Handle) error) (bool, error) {
	h := &Handle{conn: sess.conn}
	err := fn(h)
	h.conn = nil
	if err != nil {
		return false, err
	}
	return h.stop, nil
}

func (sess *wsSession) auth(token string) error {
	return writeEvent(sess.conn, "auth", &token)
}

// writeEvent encodes and sends one outbound event frame. A nil arg encodes
// as the panel's expected [null] argument list.
func writeEvent(conn Stream, event string, arg *string) error {
	payload, err := json.Marshal(struct {
		Event string    `json:"event"`
		Args  []*string `json:"args"`
	}{Event: event, Args: []*string{arg}})
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

var errHandleExpired = errors.New("pterodactyl: websocket handle used outside its callback")

// Handle sends control events over the websocket and can request that the
// loop stop. It is only valid for the duration of the listener callback it
// was passed to; retaining it past the callback makes every send fail.
type Handle struct {
	conn Stream
	stop bool
}

// RequestStats asks the panel to push a stats snapshot.
func (h *Handle) RequestStats() error {
	return h.write("send stats", nil)
}

// RequestLogs asks the panel to replay the recent console log.
func (h *Handle) RequestLogs() error {
	return h.write("send logs", nil)
}

// SendPowerSignal sends a power signal to the server.
func (h *Handle) SendPowerSignal(signal PowerSignal) error {
	s := signal.String()
	return h.write("set state", &s)
}

// SendCommand sends a console command to the server.
func (h *Handle) SendCommand(command string) error {
	return h.write("send command", &command)
}

// Disconnect requests an orderly end of the websocket loop. It sends no
// frame and takes effect after the current callback returns.
func (h *Handle) Disconnect() {
	h.stop = true
}

func (h *Handle) write(event string, arg *string) error {
	if h.conn == nil {
		return errHandleExpired
	}
	return writeEvent(h.conn, event, arg)
}
