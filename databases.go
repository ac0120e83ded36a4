package pterodactyl

import (
	"context"
	"encoding/json"
)

// ServerDatabase is a database provisioned for a server.
type ServerDatabase struct {
	// ID of the database.
	ID string `json:"id"`
	// Host is the endpoint the database listens on.
	Host IPAndPort `json:"host"`
	// Name of the database.
	Name string `json:"name"`
	// Username used to log in.
	Username string `json:"username"`
	// ConnectionsFrom is the address pattern allowed to connect.
	ConnectionsFrom string `json:"connections_from"`
	// MaxConnections allowed at a time.
	MaxConnections uint64 `json:"max_connections"`
	// Relationships carries the password when the endpoint returns one.
	Relationships DatabaseRelationships `json:"relationships"`
}

// DatabaseRelationships is extra data returned alongside a database.
type DatabaseRelationships struct {
	// Password for the database user, nil when the endpoint withholds it.
	Password *string
}

func (r *DatabaseRelationships) UnmarshalJSON(data []byte) error {
	var raw struct {
		Password *attributesResponse[struct {
			Password string `json:"password"`
		}] `json:"password"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Password != nil {
		r.Password = &raw.Password.Attributes.Password
	}
	return nil
}

// Databases lists the databases on this server.
func (s *Server) Databases(ctx context.Context) ([]ServerDatabase, error) {
	var out listResponse[ServerDatabase]
	if err := s.client.get(ctx, "servers/"+s.id+"/databases", &out); err != nil {
		return nil, err
	}
	return out.items(), nil
}

// CreateDatabase creates a database with the given name. remote is the
// address pattern allowed to connect; use "%" for any.
func (s *Server) CreateDatabase(ctx context.Context, name, remote string) (*ServerDatabase, error) {
	body := struct {
		Database string `json:"database"`
		Remote   string `json:"remote"`
	}{Database: name, Remote: remote}
	var out attributesResponse[ServerDatabase]
	if err := s.client.post(ctx, "servers/"+s.id+"/databases", body, &out); err != nil {
		return nil, err
	}
	return &out.Attributes, nil
}

// RotateDatabasePassword generates a new password for the given database.
func (s *Server) RotateDatabasePassword(ctx context.Context, id string) (*ServerDatabase, error) {
	var out attributesResponse[ServerDatabase]
	if err := s.client.post(ctx, "servers/"+s.id+"/databases/"+id+"/rotate-password", nil, &out); err != nil {
		return nil, err
	}
	return &out.Attributes, nil
}

// DeleteDatabase deletes the given database.
func (s *Server) DeleteDatabase(ctx context.Context, id string) error {
	return s.client.delete(ctx, "servers/"+s.id+"/databases/"+id)
}
