package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/relfiles/internal/core"
	"github.com/pelletier/go-toml/v2"
)

// DefaultConfigFile is the file written by init and searched first by Load.
const DefaultConfigFile = ".relfiles.yaml"

// ConfigFilePerm defines secure file permissions for config files (owner read/write only).
const ConfigFilePerm = core.PermOwnerRW

// searchOrder is the list of file names Load tries when no path is given.
var searchOrder = []string{DefaultConfigFile, ".relfiles.yml", ".relfiles.toml"}

// ErrConfigNotFound is returned by Load when no configuration file exists.
var ErrConfigNotFound = errors.New("no configuration file found")

// Load reads the configuration at path, or the first of .relfiles.yaml,
// .relfiles.yml and .relfiles.toml in the working directory when path is
// empty. It returns the file actually read.
func Load(ctx context.Context, fs core.FileSystem, path string) (*Config, string, error) {
	candidates := searchOrder
	if path != "" {
		candidates = []string{filepath.Clean(path)}
	}

	for _, candidate := range candidates {
		data, err := fs.ReadFile(ctx, candidate)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && path == "" {
				continue
			}
			if errors.Is(err, os.ErrNotExist) {
				return nil, candidate, fmt.Errorf("%w: %s", ErrConfigNotFound, candidate)
			}
			return nil, candidate, fmt.Errorf("failed to read config %q: %w", candidate, err)
		}

		cfg, err := Parse(data, formatOf(candidate))
		if err != nil {
			return nil, candidate, fmt.Errorf("invalid config %q: %w", candidate, err)
		}
		return cfg, candidate, nil
	}

	return nil, "", fmt.Errorf("%w: looked for %s", ErrConfigNotFound, strings.Join(searchOrder, ", "))
}

// Format is the encoding of a configuration file.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func formatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Parse decodes a configuration document. Unknown fields are rejected.
func Parse(data []byte, format Format) (*Config, error) {
	if format == FormatTOML {
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		converted, err := yaml.Marshal(doc)
		if err != nil {
			return nil, err
		}
		data = converted
	}

	var cfg Config
	if len(bytes.TrimSpace(data)) == 0 {
		return &cfg, nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FileOpener abstracts file opening operations for testability.
type FileOpener interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

// FileWriter abstracts file writing operations for testability.
type FileWriter interface {
	WriteFile(file *os.File, data []byte) (int, error)
}

// ConfigSaver handles configuration saving with injected dependencies.
type ConfigSaver struct {
	marshaler  core.Marshaler
	fileOpener FileOpener
	fileWriter FileWriter
}

type osFileOpener struct{}

func (o *osFileOpener) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

type osFileWriter struct{}

func (w *osFileWriter) WriteFile(file *os.File, data []byte) (int, error) {
	return file.Write(data)
}

// yamlMarshaler is the production implementation of core.Marshaler using YAML.
type yamlMarshaler struct{}

func (m *yamlMarshaler) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// NewConfigSaver creates a ConfigSaver with the given dependencies.
// If any dependency is nil, the production default is used.
func NewConfigSaver(marshaler core.Marshaler, opener FileOpener, writer FileWriter) *ConfigSaver {
	if marshaler == nil {
		marshaler = &yamlMarshaler{}
	}
	if opener == nil {
		opener = &osFileOpener{}
	}
	if writer == nil {
		writer = &osFileWriter{}
	}
	return &ConfigSaver{
		marshaler:  marshaler,
		fileOpener: opener,
		fileWriter: writer,
	}
}

// SaveTo writes the configuration as YAML to configFile.
func (s *ConfigSaver) SaveTo(cfg *Config, configFile string) error {
	data, err := s.marshaler.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to %q: %w", configFile, err)
	}

	file, err := s.fileOpener.OpenFile(configFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open config file %q: %w", configFile, err)
	}
	defer file.Close()

	if _, err := s.fileWriter.WriteFile(file, data); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", configFile, err)
	}

	return nil
}
