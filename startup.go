package pterodactyl

import "context"

// StartupData is a server's startup command and variables.
type StartupData struct {
	// StartupCommand with variables substituted.
	StartupCommand string
	// RawStartupCommand without variables substituted.
	RawStartupCommand string
	// Variables configuring the startup command.
	Variables []StartupVariable
}

// StartupVariable is one configurable startup variable.
type StartupVariable struct {
	// Name of the variable.
	Name string `json:"name"`
	// Description of the variable.
	Description string `json:"description"`
	// EnvVariable is the environment variable the value is exposed as.
	EnvVariable string `json:"env_variable"`
	// DefaultValue of the variable.
	DefaultValue string `json:"default_value"`
	// ServerValue is the current value on this server.
	ServerValue string `json:"server_value"`
	// IsEditable reports whether the value can be changed.
	IsEditable bool `json:"is_editable"`
	// Rules the value must satisfy, in Laravel validation syntax.
	Rules string `json:"rules"`
}

// Startup fetches this server's startup command and variables.
func (s *Server) Startup(ctx context.Context) (*StartupData, error) {
	var out struct {
		Data []attributesResponse[StartupVariable] `json:"data"`
		Meta struct {
			StartupCommand    string `json:"startup_command"`
			RawStartupCommand string `json:"raw_startup_command"`
		} `json:"meta"`
	}
	if err := s.client.get(ctx, "servers/"+s.id+"/startup", &out); err != nil {
		return nil, err
	}
	data := &StartupData{
		StartupCommand:    out.Meta.StartupCommand,
		RawStartupCommand: out.Meta.RawStartupCommand,
		Variables:         make([]StartupVariable, 0, len(out.Data)),
	}
	for _, v := range out.Data {
		data.Variables = append(data.Variables, v.Attributes)
	}
	return data, nil
}

// SetStartupVariable sets a startup variable by its environment variable
// name.
func (s *Server) SetStartupVariable(ctx context.Context, key, value string) (*StartupVariable, error) {
	body := struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}{Key: key, Value: value}
	var out attributesResponse[StartupVariable]
	if err := s.client.put(ctx, "servers/"+s.id+"/startup/variable", body, &out); err != nil {
		return nil, err
	}
	return &out.Attributes, nil
}
