package pterodactyl

import "context"

// Rename changes this server's display name.
func (s *Server) Rename(ctx context.Context, name string) error {
	body := struct {
		Name string `json:"name"`
	}{Name: name}
	return s.client.post(ctx, "servers/"+s.id+"/settings/rename", body, nil)
}

// Reinstall reinstalls this server from its egg.
func (s *Server) Reinstall(ctx context.Context) error {
	return s.client.post(ctx, "servers/"+s.id+"/settings/reinstall", nil, nil)
}
