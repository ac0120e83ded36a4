package pterodactyl

import (
	"encoding/json"
	"testing"
)

func TestServerStateRoundTrip(t *testing.T) {
	tests := []struct {
		state ServerState
		name  string
	}{
		{StateOffline, "offline"},
		{StateStarting, "starting"},
		{StateRunning, "running"},
		{StateStopping, "stopping"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			data, err := json.Marshal(tt.state)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != `"`+tt.name+`"` {
				t.Errorf("marshal = %s", data)
			}
			var back ServerState
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if back != tt.state {
				t.Errorf("round trip = %v, want %v", back, tt.state)
			}
		})
	}
}

func TestServerStateUnknown(t *testing.T) {
	var s ServerState
	if err := json.Unmarshal([]byte(`"exploding"`), &s); err == nil {
		t.Error("unmarshal of unknown state did not fail")
	}
	if _, err := parseServerState("exploding"); err == nil {
		t.Error("parseServerState of unknown state did not fail")
	}
}

func TestPowerSignalNames(t *testing.T) {
	tests := []struct {
		signal PowerSignal
		name   string
	}{
		{SignalStart, "start"},
		{SignalStop, "stop"},
		{SignalRestart, "restart"},
		{SignalKill, "kill"},
	}
	for _, tt := range tests {
		if got := tt.signal.String(); got != tt.name {
			t.Errorf("%v.String() = %q, want %q", tt.signal, got, tt.name)
		}
		data, err := json.Marshal(tt.signal)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(data) != `"`+tt.name+`"` {
			t.Errorf("marshal = %s, want %q", data, tt.name)
		}
	}
}

func TestServerStatusDecoding(t *testing.T) {
	var status ServerStatus
	if err := json.Unmarshal([]byte(`"restoring_backup"`), &status); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if status != StatusRestoringBackup {
		t.Errorf("status = %v, want StatusRestoringBackup", status)
	}
	if err := json.Unmarshal([]byte(`"melting"`), &status); err == nil {
		t.Error("unmarshal of unknown status did not fail")
	}
}
