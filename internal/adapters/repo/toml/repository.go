// Package toml stores host profiles in a single TOML file. Writes go through
// a temp file and rename so readers never see a partial file.
package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/bnema/yzterm/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	hostsFileMode   = 0o600
	hostsDirMode    = 0o700
	hostsConfigDir  = ".yzterm"
	hostsConfigFile = "hosts.toml"
	tempFilePattern = ".hosts-*.toml.tmp"
)

type Repository struct {
	hostsPath string
	mu        *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.HostRepository = (*Repository)(nil)

// DefaultPath is ~/.yzterm/hosts.toml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, hostsConfigDir, hostsConfigFile), nil
}

// NewRepository opens the hosts file at path, or DefaultPath when path is
// empty. The file is created on first save.
func NewRepository(path string) (*Repository, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	hostsPath, err := normalizeHostsPath(path)
	if err != nil {
		return nil, err
	}

	return &Repository{hostsPath: hostsPath, mu: lockForPath(hostsPath)}, nil
}

func (r *Repository) Path() string {
	return r.hostsPath
}

func (r *Repository) Save(ctx context.Context, host domain.Host) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(host)
	updated := false
	for i := range file.Hosts {
		if file.Hosts[i].ID == encoded.ID {
			file.Hosts[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Hosts = append(file.Hosts, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) GetByID(ctx context.Context, id domain.HostID) (domain.Host, error) {
	if err := ctx.Err(); err != nil {
		return domain.Host{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Host{}, err
	}

	for _, entry := range file.Hosts {
		if entry.ID == string(id) {
			return fromSchema(entry), nil
		}
	}

	return domain.Host{}, fmt.Errorf("%w: %s", domain.ErrHostNotFound, id)
}

func (r *Repository) List(ctx context.Context) ([]domain.Host, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	hosts := make([]domain.Host, 0, len(file.Hosts))
	for _, entry := range file.Hosts {
		hosts = append(hosts, fromSchema(entry))
	}

	return hosts, nil
}

func (r *Repository) Delete(ctx context.Context, id domain.HostID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := file.Hosts[:0]
	for _, entry := range file.Hosts {
		if entry.ID != string(id) {
			kept = append(kept, entry)
		}
	}
	if len(kept) == len(file.Hosts) {
		return fmt.Errorf("%w: %s", domain.ErrHostNotFound, id)
	}
	file.Hosts = kept

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.hostsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read hosts file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode hosts file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeHostsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve hosts path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

// lockForPath shares one lock between repositories opened on the same file.
func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.hostsPath), hostsDirMode); err != nil {
		return fmt.Errorf("create hosts directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode hosts file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.hostsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp hosts file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp hosts file: %w", err)
	}

	if err := tempFile.Chmod(hostsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp hosts file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp hosts file: %w", err)
	}

	if err := os.Rename(tempName, r.hostsPath); err != nil {
		return fmt.Errorf("replace hosts file: %w", err)
	}

	cleanup = false

	return nil
}

func toSchema(host domain.Host) hostSchema {
	return hostSchema{
		ID:        string(host.ID),
		Name:      host.Name,
		Address:   host.Address,
		Port:      host.Port,
		Username:  host.Username,
		SecretRef: host.SecretRef,
	}
}

func fromSchema(entry hostSchema) domain.Host {
	return domain.Host{
		ID:        domain.HostID(entry.ID),
		Name:      entry.Name,
		Address:   entry.Address,
		Port:      entry.Port,
		Username:  entry.Username,
		SecretRef: entry.SecretRef,
	}
}
