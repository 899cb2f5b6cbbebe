package registry

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/ppm/internal/logger"
	"github.com/NikitaCOEUR/ppm/internal/perrors"
	"github.com/xeipuuv/gojsonschema"
)

// DefaultFileName is the registry file name under the home directory
const DefaultFileName = ".ppm.json"

//go:embed registry.schema.json
var schemaJSON string

var registrySchema = mustCompileSchema()

func mustCompileSchema() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("registry schema: %v", err))
	}
	return schema
}

// DefaultPath returns ~/.ppm.json
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DefaultFileName), nil
}

// Store reads and writes the registry backing file. There is no locking:
// concurrent writers race and the last save wins.
type Store struct {
	path string
	log  *logger.Logger
}

// NewStore creates a store for the registry file at path
func NewStore(path string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Discard()
	}
	return &Store{path: path, log: log}
}

// Path returns the backing file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the whole registry, creating the backing file as an empty
// object first if it does not exist yet
func (s *Store) Load() (*Registry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.log.Debug().Str("path", s.path).Msg("Creating empty registry")
		reg := New()
		if err := s.Save(reg); err != nil {
			return nil, err
		}
		return reg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read registry %s: %w", s.path, err)
	}

	if err := validate(data); err != nil {
		return nil, perrors.NewConfigCorruptError(s.path, "registry file is corrupt", err)
	}

	reg := New()
	if err := json.Unmarshal(data, reg); err != nil {
		return nil, perrors.NewConfigCorruptError(s.path, "registry file is corrupt", err)
	}

	s.log.Debug().Str("path", s.path).Int("projects", reg.Len()).Msg("Registry loaded")
	return reg, nil
}

// Save replaces the backing file with the full registry. The data is written
// to a temporary file next to the target and renamed over it, so readers
// never observe a half-written registry. When the path is a symlink, the
// file it points to is replaced.
func (s *Store) Save(reg *Registry) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}
	data = append(data, '\n')

	target := s.target()
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return perrors.NewFilesystemError("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return perrors.NewFilesystemError("write", s.path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return perrors.NewFilesystemError("write", s.path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return perrors.NewFilesystemError("write", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return perrors.NewFilesystemError("write", s.path, err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return perrors.NewFilesystemError("write", s.path, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return perrors.NewFilesystemError("write", s.path, err)
	}

	s.log.Debug().Str("path", s.path).Str("target", target).Int("projects", reg.Len()).Msg("Registry saved")
	return nil
}

// target returns the file a save replaces. A symlinked registry is written
// through the link so the link itself survives.
func (s *Store) target() string {
	if resolved, err := filepath.EvalSymlinks(s.path); err == nil {
		return resolved
	}
	// dangling link: create the file it names
	dest, err := os.Readlink(s.path)
	if err != nil {
		return s.path
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(s.path), dest)
	}
	return dest
}

// validate checks data against the embedded registry schema
func validate(data []byte) error {
	result, err := registrySchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return errors.New(strings.Join(msgs, "; "))
}
