package pterodactyl

import (
	"encoding/json"
	"fmt"
)

// ServerState is the power state of a server.
type ServerState int

const (
	StateOffline ServerState = iota
	StateStarting
	StateRunning
	StateStopping
)

var serverStateNames = map[ServerState]string{
	StateOffline:  "offline",
	StateStarting: "starting",
	StateRunning:  "running",
	StateStopping: "stopping",
}

var serverStateFromName = map[string]ServerState{
	"offline":  StateOffline,
	"starting": StateStarting,
	"running":  StateRunning,
	"stopping": StateStopping,
}

func (s ServerState) String() string {
	if name, ok := serverStateNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s ServerState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ServerState) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	state, err := parseServerState(name)
	if err != nil {
		return err
	}
	*s = state
	return nil
}

func parseServerState(name string) (ServerState, error) {
	if state, ok := serverStateFromName[name]; ok {
		return state, nil
	}
	return 0, fmt.Errorf("unknown server state %q", name)
}

// PowerSignal is a power action that can be sent to a server.
type PowerSignal int

const (
	// SignalStart starts the server.
	SignalStart PowerSignal = iota
	// SignalStop stops the server gracefully.
	SignalStop
	// SignalRestart restarts the server gracefully.
	SignalRestart
	// SignalKill stops the server forcefully.
	SignalKill
)

var powerSignalNames = map[PowerSignal]string{
	SignalStart:   "start",
	SignalStop:    "stop",
	SignalRestart: "restart",
	SignalKill:    "kill",
}

var powerSignalFromName = map[string]PowerSignal{
	"start":   SignalStart,
	"stop":    SignalStop,
	"restart": SignalRestart,
	"kill":    SignalKill,
}

func (p PowerSignal) String() string {
	if name, ok := powerSignalNames[p]; ok {
		return name
	}
	return "unknown"
}

func (p PowerSignal) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PowerSignal) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	signal, ok := powerSignalFromName[name]
	if !ok {
		return fmt.Errorf("unknown power signal %q", name)
	}
	*p = signal
	return nil
}

// ServerStatus is a server's installation/maintenance status. Servers in
// normal operation have no status.
type ServerStatus int

const (
	StatusInstalling ServerStatus = iota
	StatusInstallFailed
	StatusReinstallFailed
	StatusSuspended
	StatusRestoringBackup
)

var serverStatusNames = map[ServerStatus]string{
	StatusInstalling:      "installing",
	StatusInstallFailed:   "install_failed",
	StatusReinstallFailed: "reinstall_failed",
	StatusSuspended:       "suspended",
	StatusRestoringBackup: "restoring_backup",
}

var serverStatusFromName = map[string]ServerStatus{
	"installing":       StatusInstalling,
	"install_failed":   StatusInstallFailed,
	"reinstall_failed": StatusReinstallFailed,
	"suspended":        StatusSuspended,
	"restoring_backup": StatusRestoringBackup,
}

func (s ServerStatus) String() string {
	if name, ok := serverStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s ServerStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ServerStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	status, ok := serverStatusFromName[name]
	if !ok {
		return fmt.Errorf("unknown server status %q", name)
	}
	*s = status
	return nil
}
