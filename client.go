// Package pterodactyl is a client for the Pterodactyl panel client API,
// covering the REST endpoints under api/client and the per-server console
// websocket.
package pterodactyl

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimits holds the rate limit counters captured from the most recent
// API response.
type RateLimits struct {
	// Limit is the request limit per minute.
	Limit int
	// Remaining is the number of requests left in the current minute.
	Remaining int
}

// Client makes requests to a Pterodactyl panel's client API. It is safe for
// concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client

	mu         sync.RWMutex
	rateLimits *RateLimits
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient uses the given *http.Client instead of the default one.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a client for the panel hosted at panelURL,
// authenticating with the given client API key.
func NewClient(panelURL, apiKey string, opts ...Option) *Client {
	if !strings.HasSuffix(panelURL, "/") {
		panelURL += "/"
	}
	c := &Client{
		baseURL: panelURL + "api/client/",
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RateLimits returns the rate limit counters from the previous request, or
// nil if no request has captured them yet.
func (c *Client) RateLimits() *RateLimits {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.rateLimits == nil {
		return nil
	}
	rl := *c.rateLimits
	return &rl
}

// PermissionGroup describes a group of panel permissions.
type PermissionGroup struct {
	// Description of the group.
	Description string `json:"description"`
	// Keys maps permission names to their descriptions.
	Keys map[string]string `json:"keys"`
}

// ListServers lists the servers this account has access to.
func (c *Client) ListServers(ctx context.Context) ([]ServerDetails, error) {
	var out listResponse[ServerDetails]
	if err := c.get(ctx, "", &out); err != nil {
		return nil, err
	}
	return out.items(), nil
}

// Permissions returns all permissions available on this panel instance,
// keyed by group name.
func (c *Client) Permissions(ctx context.Context) (map[string]PermissionGroup, error) {
	var out attributesResponse[struct {
		Permissions map[string]PermissionGroup `json:"permissions"`
	}]
	if err := c.get(ctx, "permissions", &out); err != nil {
		return nil, err
	}
	return out.Attributes.Permissions, nil
}

// Server returns a handle for making requests against a specific server.
// The id is the short identifier shown in the panel, not the full UUID.
func (c *Client) Server(id string) *Server {
	return &Server{id: id, client: c}
}

// Server scopes API requests to a single Pterodactyl server.
type Server struct {
	id     string
	client *Client
}

// ID returns the server's short identifier.
func (s *Server) ID() string { return s.id }
