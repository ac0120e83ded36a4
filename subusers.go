package pterodactyl

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Subuser is an account granted permissions on a server.
type Subuser struct {
	// UUID of the subuser.
	UUID uuid.UUID `json:"uuid"`
	// Username of the subuser.
	Username string `json:"username"`
	// Email of the subuser.
	Email string `json:"email"`
	// Image is the avatar URL.
	Image string `json:"image"`
	// TwoFactorEnabled reports whether the subuser has 2fa enabled.
	TwoFactorEnabled bool `json:"2fa_enabled"`
	// CreatedAt is when the subuser was added to the server.
	CreatedAt time.Time `json:"created_at"`
	// Permissions granted to the subuser.
	Permissions []string `json:"permissions"`
}

// Subusers lists the accounts with permissions on this server.
func (s *Server) Subusers(ctx context.Context) ([]Subuser, error) {
	var out listResponse[Subuser]
	if err := s.client.get(ctx, "servers/"+s.id+"/users", &out); err != nil {
		return nil, err
	}
	return out.items(), nil
}

// AddSubuser grants the account with the given email the given permissions
// on this server.
func (s *Server) AddSubuser(ctx context.Context, email string, permissions []string) (*Subuser, error) {
	body := struct {
		Email       string   `json:"email"`
		Permissions []string `json:"permissions"`
	}{Email: email, Permissions: permissions}
	var out attributesResponse[Subuser]
	if err := s.client.post(ctx, "servers/"+s.id+"/users", body, &out); err != nil {
		return nil, err
	}
	return &out.Attributes, nil
}

// Subuser fetches the subuser with the given UUID.
func (s *Server) Subuser(ctx context.Context, id uuid.UUID) (*Subuser, error) {
	var out attributesResponse[Subuser]
	if err := s.client.get(ctx, "servers/"+s.id+"/users/"+id.String(), &out); err != nil {
		return nil, err
	}
	return &out.Attributes, nil
}

// SetSubuserPermissions replaces a subuser's permissions.
func (s *Server) SetSubuserPermissions(ctx context.Context, id uuid.UUID, permissions []string) (*Subuser, error) {
	body := struct {
		Permissions []string `json:"permissions"`
	}{Permissions: permissions}
	var out attributesResponse[Subuser]
	if err := s.client.post(ctx, "servers/"+s.id+"/users/"+id.String(), body, &out); err != nil {
		return nil, err
	}
	return &out.Attributes, nil
}

// DeleteSubuser removes a subuser from this server.
func (s *Server) DeleteSubuser(ctx context.Context, id uuid.UUID) error {
	return s.client.delete(ctx, "servers/"+s.id+"/users/"+id.String())
}
