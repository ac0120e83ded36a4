package pterodactyl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// File describes an entry on a server's filesystem.
type File struct {
	// Name of the file.
	Name string `json:"name"`
	// Permissions parsed from the panel's "drwxr-xr-x" form.
	Permissions FilePermissions `json:"mode"`
	// Size in bytes.
	Size uint64 `json:"size"`
	// IsFile reports whether this is a regular file.
	IsFile bool `json:"is_file"`
	// IsSymlink reports whether this is a symlink.
	IsSymlink bool `json:"is_symlink"`
	// IsEditable reports whether the panel will edit this file.
	IsEditable bool `json:"is_editable"`
	// Mimetype of the file.
	Mimetype string `json:"mimetype"`
	// CreatedAt is when the file was created.
	CreatedAt time.Time `json:"created_at"`
	// ModifiedAt is when the file was last modified.
	ModifiedAt time.Time `json:"modified_at"`
}

func (f *File) UnmarshalJSON(data []byte) error {
	// is_editable defaults to true when the panel omits it.
	type alias File
	aux := alias{IsEditable: true}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*f = File(aux)
	return nil
}

// FileType is the kind of filesystem entry.
type FileType int

const (
	FileTypeNormal FileType = iota
	FileTypeDirectory
	FileTypeSymlink
)

// FilePermissions are Unix permissions decoded from a mode string like
// "drwxr-xr-x".
type FilePermissions struct {
	Type       FileType
	Owner      UserFilePermissions
	GroupOwner UserFilePermissions
	OtherUsers UserFilePermissions
}

// UserFilePermissions are one permission triplet of a mode string.
type UserFilePermissions struct {
	Read       bool
	Write      bool
	Executable bool
	Setuid     bool
	Sticky     bool
}

func (p *FilePermissions) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := parseFilePermissions(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func parseFilePermissions(mode string) (FilePermissions, error) {
	var p FilePermissions
	if len(mode) != 10 {
		return p, fmt.Errorf("file mode %q must be 10 characters", mode)
	}
	switch mode[0] {
	case 'd':
		p.Type = FileTypeDirectory
	case 'l':
		p.Type = FileTypeSymlink
	case '-':
		p.Type = FileTypeNormal
	default:
		return p, fmt.Errorf("invalid file type %q in mode %q", mode[0], mode)
	}
	var err error
	if p.Owner, err = parseUserPermissions(mode[1:4]); err != nil {
		return p, fmt.Errorf("mode %q: %w", mode, err)
	}
	if p.GroupOwner, err = parseUserPermissions(mode[4:7]); err != nil {
		return p, fmt.Errorf("mode %q: %w", mode, err)
	}
	if p.OtherUsers, err = parseUserPermissions(mode[7:10]); err != nil {
		return p, fmt.Errorf("mode %q: %w", mode, err)
	}
	return p, nil
}

func parseUserPermissions(triplet string) (UserFilePermissions, error) {
	var p UserFilePermissions
	switch triplet[0] {
	case 'r':
		p.Read = true
	case '-':
	default:
		return p, fmt.Errorf("invalid read flag %q", triplet[0])
	}
	switch triplet[1] {
	case 'w':
		p.Write = true
	case '-':
	default:
		return p, fmt.Errorf("invalid write flag %q", triplet[1])
	}
	switch triplet[2] {
	case 'x':
		p.Executable = true
	case 's':
		p.Executable = true
		p.Setuid = true
	case 't':
		p.Executable = true
		p.Sticky = true
	case 'S':
		p.Setuid = true
	case 'T':
		p.Sticky = true
	case '-':
	default:
		return p, fmt.Errorf("invalid execute flag %q", triplet[2])
	}
	return p, nil
}

// splitDirFilename splits a path after the final slash.
func splitDirFilename(file string) (dir, filename string) {
	i := strings.LastIndex(file, "/")
	return file[:i+1], file[i+1:]
}

// splitFilenameExtension splits a filename before the final dot.
func splitFilenameExtension(file string) (name, ext string) {
	i := strings.LastIndex(file, ".")
	if i < 0 {
		return file, ""
	}
	return file[:i], file[i:]
}

func pathParts(file string) []string {
	file = strings.Trim(file, "/")
	if file == "" {
		return nil
	}
	return strings.Split(file, "/")
}

// relativize expresses file relative to root, using ".." segments to climb
// out of root where needed.
func relativize(file, root string) string {
	dir, filename := splitDirFilename(file)

	rootParts := pathParts(root)
	fileParts := pathParts(dir)

	common := 0
	for common < len(rootParts) && common < len(fileParts) && rootParts[common] == fileParts[common] {
		common++
	}

	var b strings.Builder
	for range rootParts[common:] {
		b.WriteString("../")
	}
	for _, part := range fileParts[common:] {
		b.WriteString(part)
		b.WriteString("/")
	}
	b.WriteString(filename)
	return b.String()
}

// Files lists the files in a directory on this server.
func (s *Server) Files(ctx context.Context, directory string) ([]File, error) {
	var out listResponse[File]
	endpoint := "servers/" + s.id + "/files/list?directory=" + url.QueryEscape(directory)
	if err := s.client.get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out.items(), nil
}

// FileContents downloads the contents of a file on this server.
func (s *Server) FileContents(ctx context.Context, file string) ([]byte, error) {
	endpoint := "servers/" + s.id + "/files/contents?file=" + url.QueryEscape(file)
	return s.client.do(ctx, http.MethodGet, endpoint, nil, nil, nil)
}

// FileContentsText downloads the contents of a UTF-8 file as a string.
func (s *Server) FileContentsText(ctx context.Context, file string) (string, error) {
	data, err := s.FileContents(ctx, file)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FileDownloadURL returns a one-time download URL for a file.
func (s *Server) FileDownloadURL(ctx context.Context, file string) (string, error) {
	var out attributesResponse[struct {
		URL string `json:"url"`
	}]
	endpoint := "servers/" + s.id + "/files/download?file=" + url.QueryEscape(file)
	if err := s.client.get(ctx, endpoint, &out); err != nil {
		return "", err
	}
	return out.Attributes.URL, nil
}

// FileRename is one from/to pair for RenameFiles.
type FileRename struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// RenameFile renames or moves a single file.
func (s *Server) RenameFile(ctx context.Context, from, to string) error {
	return s.RenameFiles(ctx, []FileRename{{From: from, To: to}})
}

// RenameFiles renames or moves files in bulk.
func (s *Server) RenameFiles(ctx context.Context, files []FileRename) error {
	body := struct {
		Root  string       `json:"root"`
		Files []FileRename `json:"files"`
	}{Root: "/", Files: files}
	return s.client.put(ctx, "servers/"+s.id+"/files/rename", body, nil)
}

// CreateFileCopy copies a file into its own directory under a panel-chosen
// "name copy N" style name. Use CopyFile to control the destination.
func (s *Server) CreateFileCopy(ctx context.Context, file string) error {
	body := struct {
		Location string `json:"location"`
	}{Location: file}
	return s.client.post(ctx, "servers/"+s.id+"/files/copy", body, nil)
}

// CopyFile copies a file to the given destination path. The panel only
// supports copy-into-place, so this predicts the generated copy name and
// renames it.
func (s *Server) CopyFile(ctx context.Context, from, to string) error {
	dir, filename := splitDirFilename(from)
	files, err := s.Files(ctx, dir)
	if err != nil {
		return err
	}
	name, ext := splitFilenameExtension(filename)

	copyName := fmt.Sprintf("%s copy%s", name, ext)
	for i := 1; fileExists(files, copyName); i++ {
		copyName = fmt.Sprintf("%s copy %d%s", name, i, ext)
	}

	if err := s.CreateFileCopy(ctx, from); err != nil {
		return err
	}
	return s.RenameFile(ctx, dir+copyName, to)
}

func fileExists(files []File, name string) bool {
	for _, f := range files {
		if f.Name == name {
			return true
		}
	}
	return false
}

// WriteFile overwrites the given file with data, creating it if needed.
func (s *Server) WriteFile(ctx context.Context, file string, data []byte) error {
	endpoint := "servers/" + s.id + "/files/write?file=" + url.QueryEscape(file)
	return s.client.post(ctx, endpoint, rawBody(data), nil)
}

// CompressFile compresses a file or directory into a .tar.gz next to it.
func (s *Server) CompressFile(ctx context.Context, file string) (*File, error) {
	dir, filename := splitDirFilename(file)
	return s.CompressFiles(ctx, dir, []string{filename})
}

// CompressFiles compresses a set of files under root into a .tar.gz.
func (s *Server) CompressFiles(ctx context.Context, root string, files []string) (*File, error) {
	body := struct {
		Root  string   `json:"root"`
		Files []string `json:"files"`
	}{Root: root, Files: files}
	var out attributesResponse[File]
	if err := s.client.post(ctx, "servers/"+s.id+"/files/compress", body, &out); err != nil {
		return nil, err
	}
	return &out.Attributes, nil
}

// DecompressFile extracts a .tar.gz into the given destination directory.
func (s *Server) DecompressFile(ctx context.Context, file, dest string) error {
	body := struct {
		Root string `json:"root"`
		File string `json:"file"`
	}{Root: dest, File: relativize(file, dest)}
	return s.client.post(ctx, "servers/"+s.id+"/files/decompress", body, nil)
}

// DeleteFile deletes a file or directory on this server.
func (s *Server) DeleteFile(ctx context.Context, file string) error {
	return s.DeleteFiles(ctx, []string{file})
}

// DeleteFiles deletes files or directories in bulk.
func (s *Server) DeleteFiles(ctx context.Context, files []string) error {
	body := struct {
		Root  string   `json:"root"`
		Files []string `json:"files"`
	}{Root: "/", Files: files}
	return s.client.post(ctx, "servers/"+s.id+"/files/delete", body, nil)
}

// CreateFolder creates a directory at the given path.
func (s *Server) CreateFolder(ctx context.Context, folder string) error {
	folder = strings.TrimSuffix(folder, "/")
	dir, name := splitDirFilename(folder)
	body := struct {
		Root string `json:"root"`
		Name string `json:"name"`
	}{Root: dir, Name: name}
	return s.client.post(ctx, "servers/"+s.id+"/files/create-folder", body, nil)
}

// FilesUploadURL returns a temporary URL for uploading files.
func (s *Server) FilesUploadURL(ctx context.Context) (string, error) {
	var out attributesResponse[struct {
		URL string `json:"url"`
	}]
	if err := s.client.get(ctx, "servers/"+s.id+"/files/upload", &out); err != nil {
		return "", err
	}
	return out.Attributes.URL, nil
}
