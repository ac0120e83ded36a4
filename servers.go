package pterodactyl

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ServerDetails describes a server as returned by the panel.
type ServerDetails struct {
	// ServerOwner reports whether the connected account owns this server.
	ServerOwner bool `json:"server_owner"`
	// Identifier is the short ID used in API paths.
	Identifier string `json:"identifier"`
	// UUID is the full server UUID.
	UUID uuid.UUID `json:"uuid"`
	// Name of the server.
	Name string `json:"name"`
	// Node the server runs on.
	Node string `json:"node"`
	// IsNodeUnderMaintenance reports whether the node is in maintenance.
	IsNodeUnderMaintenance bool `json:"is_node_under_maintenance"`
	// SFTPDetails is the SFTP endpoint for this server.
	SFTPDetails IPAndPort `json:"sftp_details"`
	// Description of the server, if set.
	Description string `json:"description"`
	// Limits are the virtual hardware limits.
	Limits ServerLimits `json:"limits"`
	// Invocation is the startup command.
	Invocation string `json:"invocation"`
	// DockerImage the server runs in.
	DockerImage string `json:"docker_image"`
	// EggFeatures enabled on this server.
	EggFeatures []string `json:"egg_features"`
	// FeatureLimits caps the number of databases, allocations and backups.
	FeatureLimits ServerFeatureLimits `json:"feature_limits"`
	// Status is the installation/maintenance status, nil in normal operation.
	Status *ServerStatus `json:"status"`
	// IsTransferring reports whether the server is being moved to another node.
	IsTransferring bool `json:"is_transferring"`
	// Relationships carries extra metadata included with the server.
	Relationships ServerRelationships `json:"relationships"`
}

// IPAndPort is an IP address and port pair.
type IPAndPort struct {
	IP   string `json:"ip"`
	Port uint16 `json:"port"`
}

func (p *IPAndPort) UnmarshalJSON(data []byte) error {
	// Some endpoints name the IP field "address".
	var raw struct {
		IP      string `json:"ip"`
		Address string `json:"address"`
		Port    uint16 `json:"port"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.IP = raw.IP
	if p.IP == "" {
		p.IP = raw.Address
	}
	p.Port = raw.Port
	return nil
}

// ServerLimits are the virtual hardware limits for a server. Zero means
// unlimited.
type ServerLimits struct {
	// Memory limit in MB.
	Memory uint64 `json:"memory"`
	// Swap limit in MB, -1 for unlimited.
	Swap int64 `json:"swap"`
	// Disk limit in MB.
	Disk uint64 `json:"disk"`
	// IO weight.
	IO uint32 `json:"io"`
	// CPU limit in percent.
	CPU float32 `json:"cpu"`
	// Threads the server is pinned to, nil for unrestricted.
	Threads ThreadList `json:"threads"`
	// OOMKiller reports whether the out of memory killer is enabled, nil
	// when unknown.
	OOMKiller *bool `json:"oom_killer"`
}

// ThreadList is a CPU thread pinning set, decoded from the panel's comma
// separated string form ("0,1,2"). A nil list means unrestricted.
type ThreadList []uint64

func (t *ThreadList) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*t = nil
		return nil
	}
	parts := strings.Split(*s, ",")
	list := make(ThreadList, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return err
		}
		list = append(list, n)
	}
	*t = list
	return nil
}

// ServerFeatureLimits caps resources the panel can allocate for a server.
// A nil field means no limit is reported.
type ServerFeatureLimits struct {
	Databases   *uint64 `json:"databases"`
	Allocations *uint64 `json:"allocations"`
	Backups     *uint64 `json:"backups"`
}

// ServerRelationships is extra metadata returned alongside a server.
type ServerRelationships struct {
	// Allocations are the server's network allocations.
	Allocations []Allocation
}

func (r *ServerRelationships) UnmarshalJSON(data []byte) error {
	var raw struct {
		Allocations listResponse[Allocation] `json:"allocations"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Allocations = raw.Allocations.items()
	return nil
}

// ServerResources is a point-in-time resource snapshot of a server.
type ServerResources struct {
	// CurrentState is the server's power state.
	CurrentState ServerState `json:"current_state"`
	// IsSuspended reports whether the server is suspended.
	IsSuspended bool `json:"is_suspended"`
	// Resources is the usage breakdown.
	Resources ResourceUsage `json:"resources"`
}

// ResourceUsage is the usage breakdown inside a ServerResources snapshot.
type ResourceUsage struct {
	MemoryBytes    uint64  `json:"memory_bytes"`
	CPUAbsolute    float32 `json:"cpu_absolute"`
	DiskBytes      uint64  `json:"disk_bytes"`
	NetworkRxBytes uint64  `json:"network_rx_bytes"`
	NetworkTxBytes uint64  `json:"network_tx_bytes"`
	// Uptime in seconds.
	Uptime uint64 `json:"uptime"`
}

// Details fetches information about this server.
func (s *Server) Details(ctx context.Context) (*ServerDetails, error) {
	var out attributesResponse[ServerDetails]
	if err := s.client.get(ctx, "servers/"+s.id, &out); err != nil {
		return nil, err
	}
	return &out.Attributes, nil
}

// Resources fetches the current resource usage of this server.
func (s *Server) Resources(ctx context.Context) (*ServerResources, error) {
	var out attributesResponse[ServerResources]
	if err := s.client.get(ctx, "servers/"+s.id+"/resources", &out); err != nil {
		return nil, err
	}
	return &out.Attributes, nil
}

// SendCommand sends a console command to this server over the REST API.
func (s *Server) SendCommand(ctx context.Context, command string) error {
	body := struct {
		Command string `json:"command"`
	}{Command: command}
	return s.client.post(ctx, "servers/"+s.id+"/command", body, nil)
}

// SendPowerSignal sends a power signal to this server over the REST API.
func (s *Server) SendPowerSignal(ctx context.Context, signal PowerSignal) error {
	body := struct {
		Signal PowerSignal `json:"signal"`
	}{Signal: signal}
	return s.client.post(ctx, "servers/"+s.id+"/power", body, nil)
}
