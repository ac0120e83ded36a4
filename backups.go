package pterodactyl

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Backup is a backup of a server's files.
type Backup struct {
	// UUID identifies the backup.
	UUID uuid.UUID `json:"uuid"`
	// Name of the backup.
	Name string `json:"name"`
	// IgnoredFiles were excluded when the backup was created.
	IgnoredFiles []string `json:"ignored_files"`
	// Checksum of the backup contents, nil while the backup is running.
	Checksum *string `json:"checksum"`
	// Bytes is the backup size.
	Bytes uint64 `json:"bytes"`
	// CreatedAt is when the backup was started.
	CreatedAt time.Time `json:"created_at"`
	// CompletedAt is when the backup finished, nil while it is running.
	CompletedAt *time.Time `json:"completed_at"`
	// IsLocked prevents the backup from being deleted automatically.
	IsLocked bool `json:"is_locked"`
}

// BackupParams are the parameters for creating a backup. The zero value
// requests an unnamed, unlocked backup.
type BackupParams struct {
	// Name of the backup; empty lets the panel pick one.
	Name string `json:"name,omitempty"`
	// IsLocked creates the backup locked. Requires extra permissions.
	IsLocked bool `json:"is_locked,omitempty"`
}

// Backups lists this server's backups.
func (s *Server) Backups(ctx context.Context) ([]Backup, error) {
	var out listResponse[Backup]
	if err := s.client.get(ctx, "servers/"+s.id+"/backups", &out); err != nil {
		return nil, err
	}
	return out.items(), nil
}

// CreateBackup starts a new backup with the given parameters.
func (s *Server) CreateBackup(ctx context.Context, params BackupParams) (*Backup, error) {
	var out attributesResponse[Backup]
	if err := s.client.post(ctx, "servers/"+s.id+"/backups", params, &out); err != nil {
		return nil, err
	}
	return &out.Attributes, nil
}

// Backup fetches the backup with the given ID.
func (s *Server) Backup(ctx context.Context, id uuid.UUID) (*Backup, error) {
	var out attributesResponse[Backup]
	if err := s.client.get(ctx, "servers/"+s.id+"/backups/"+id.String(), &out); err != nil {
		return nil, err
	}
	return &out.Attributes, nil
}

// BackupDownloadURL returns a one-time download URL for a backup.
func (s *Server) BackupDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	var out attributesResponse[struct {
		URL string `json:"url"`
	}]
	if err := s.client.get(ctx, "servers/"+s.id+"/backups/"+id.String()+"/download", &out); err != nil {
		return "", err
	}
	return out.Attributes.URL, nil
}

// DeleteBackup deletes the backup with the given ID.
func (s *Server) DeleteBackup(ctx context.Context, id uuid.UUID) error {
	return s.client.delete(ctx, "servers/"+s.id+"/backups/"+id.String())
}
