// Package config handles loading of ppm user settings.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/ppm/internal/perrors"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override settings
const EnvPrefix = "PPM_"

// SupportedConfigNames contains supported settings file names (in order of preference)
var SupportedConfigNames = []string{
	"config.yml",
	"config.yaml",
	"config.toml",
	"config.json",
}

//go:embed defaults.yml
var defaultSettings []byte

// VCSSettings configures version-control initialisation for new projects
type VCSSettings struct {
	Command string   `koanf:"command"`
	Args    []string `koanf:"args"`
	// BuiltinFallback initialises the repository in-process when Command is not on PATH
	BuiltinFallback bool `koanf:"builtin_fallback"`
}

// DepsSettings configures the dependency manager run for new projects
type DepsSettings struct {
	Command string   `koanf:"command"`
	Args    []string `koanf:"args"`
}

// Settings holds the resolved ppm settings
type Settings struct {
	Registry string       `koanf:"registry"`
	LogLevel string       `koanf:"log_level"`
	Editors  []string     `koanf:"editors"`
	VCS      VCSSettings  `koanf:"vcs"`
	Deps     DepsSettings `koanf:"deps"`

	// Source is the settings file that was loaded, empty when none was found
	Source string `koanf:"-"`
}

// GetConfigDir returns the ppm settings directory
func GetConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "ppm"), nil
}

// FindConfigFile returns the first existing settings file in the ppm
// settings directory, or an empty string
func FindConfigFile() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// Load resolves settings from the built-in defaults, the settings file at
// path (searched for when empty) and PPM_* environment variables, in that
// order of increasing precedence. A missing settings file is not an error
// unless path was given explicitly.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultSettings), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load default settings: %w", err)
	}

	if path == "" {
		found, err := FindConfigFile()
		if err != nil {
			return nil, err
		}
		path = found
	}

	if path != "" {
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	s := &Settings{}
	if err := k.Unmarshal("", s); err != nil {
		return nil, perrors.NewConfigurationError(path, "failed to unmarshal settings", err)
	}
	s.Source = path

	if err := s.validate(); err != nil {
		return nil, perrors.NewConfigurationError(path, "invalid settings", err)
	}

	return s, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		parser = yaml.Parser()
	case ".toml":
		parser = toml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return perrors.NewConfigurationError(path, "unsupported settings format", fmt.Errorf("extension %q", filepath.Ext(path)))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return perrors.NewConfigurationError(path, "failed to read settings", err)
	}

	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return perrors.NewConfigurationError(path, "failed to parse settings", err)
	}
	return nil
}

// envKey maps PPM_VCS_BUILTIN_FALLBACK to vcs.builtin_fallback and splits
// list values on commas
func envKey(key, value string) (string, interface{}) {
	name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	switch {
	case name == "registry", name == "log_level":
		return name, value
	case name == "editors":
		return name, splitList(value)
	case strings.HasPrefix(name, "vcs_"), strings.HasPrefix(name, "deps_"):
		parts := strings.SplitN(name, "_", 2)
		if parts[1] == "args" {
			return parts[0] + ".args", strings.Fields(value)
		}
		return parts[0] + "." + parts[1], value
	}
	// PPM_CONFIG and unknown variables are not settings keys
	return "", nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (s *Settings) validate() error {
	if len(s.Editors) == 0 {
		return fmt.Errorf("editors must list at least one editor")
	}
	for _, e := range s.Editors {
		if strings.TrimSpace(e) == "" {
			return fmt.Errorf("editors must not contain empty names")
		}
	}
	if strings.TrimSpace(s.VCS.Command) == "" {
		return fmt.Errorf("vcs.command must not be empty")
	}
	if strings.TrimSpace(s.Deps.Command) == "" {
		return fmt.Errorf("deps.command must not be empty")
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// RegistryPath returns the configured registry file, expanded
func (s *Settings) RegistryPath() (string, error) {
	if s.Registry == "" {
		return "", nil
	}
	return ExpandHome(s.Registry)
}
