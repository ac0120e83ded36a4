package pterodactyl

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

// Allocation is a network allocation (IP and port) assigned to a server.
type Allocation struct {
	// ID of the allocation.
	ID uint64 `json:"id"`
	// IP of the allocation.
	IP string `json:"ip"`
	// IPAlias is a display alias for the IP, nil if unset.
	IPAlias *string `json:"ip_alias"`
	// Port of the allocation.
	Port uint16 `json:"port"`
	// Notes attached to the allocation, nil if unset.
	Notes *string `json:"notes"`
	// IsDefault reports whether this is the server's primary allocation.
	IsDefault bool `json:"is_default"`
}

// NetworkAllocations lists this server's network allocations.
func (s *Server) NetworkAllocations(ctx context.Context) ([]Allocation, error) {
	var out listResponse[Allocation]
	if err := s.client.get(ctx, "servers/"+s.id+"/network/allocations", &out); err != nil {
		return nil, err
	}
	return out.items(), nil
}

// CreateNetworkAllocation assigns a new allocation, if auto-assign is
// enabled on the panel.
func (s *Server) CreateNetworkAllocation(ctx context.Context) (*Allocation, error) {
	var out attributesResponse[Allocation]
	if err := s.client.post(ctx, "servers/"+s.id+"/network/allocations", nil, &out); err != nil {
		return nil, err
	}
	return &out.Attributes, nil
}

// SetAllocationNotes sets the notes on a network allocation.
func (s *Server) SetAllocationNotes(ctx context.Context, allocationID uint64, notes string) (*Allocation, error) {
	body := struct {
		Notes string `json:"notes"`
	}{Notes: notes}
	var out attributesResponse[Allocation]
	endpoint := "servers/" + s.id + "/network/allocations/" + strconv.FormatUint(allocationID, 10)
	if err := s.client.post(ctx, endpoint, body, &out); err != nil {
		return nil, err
	}
	return &out.Attributes, nil
}

// SetPrimaryAllocation makes the given allocation the server's primary one.
func (s *Server) SetPrimaryAllocation(ctx context.Context, allocationID uint64) (*Allocation, error) {
	var out attributesResponse[Allocation]
	endpoint := "servers/" + s.id + "/network/allocations/" + strconv.FormatUint(allocationID, 10) + "/primary"
	if err := s.client.post(ctx, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return &out.Attributes, nil
}

// DeleteNetworkAllocation removes the given allocation. Returns
// ErrPrimaryAllocation when the allocation is the server's primary one.
func (s *Server) DeleteNetworkAllocation(ctx context.Context, allocationID uint64) error {
	endpoint := "servers/" + s.id + "/network/allocations/" + strconv.FormatUint(allocationID, 10)
	_, err := s.client.do(ctx, http.MethodDelete, endpoint, nil, nil, func(status int, body []byte) error {
		if status != http.StatusBadRequest {
			return nil
		}
		var apiErr apiErrorResponse
		if json.Unmarshal(body, &apiErr) != nil {
			return nil
		}
		if apiErr.has("DisplayException") {
			return ErrPrimaryAllocation
		}
		return nil
	})
	return err
}
