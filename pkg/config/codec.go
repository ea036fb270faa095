package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileFormat is the syntax of a configuration file.
type FileFormat string

const (
	FileFormatYAML FileFormat = "yaml"
	FileFormatTOML FileFormat = "toml"
)

// ErrUnknownFileFormat is returned for configuration files that are neither
// YAML nor TOML.
var ErrUnknownFileFormat = errors.New("unknown config file format")

// ParseFileFormat parses a format name.
func ParseFileFormat(name string) (FileFormat, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return FileFormatYAML, nil
	case "toml":
		return FileFormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFileFormat, name)
	}
}

// FileFormatForPath infers the format from the file extension.
func FileFormatForPath(path string) (FileFormat, error) {
	return ParseFileFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Decode parses data in the given format. Unknown keys are errors.
func Decode(data []byte, format FileFormat) (*Config, error) {
	switch format {
	case FileFormatYAML:
		return FromYAML(data)
	case FileFormatTOML:
		return FromTOML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFileFormat, format)
	}
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// FromTOML parses a configuration from TOML bytes.
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("parse toml: unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// ToYAML serializes the persisted fields to YAML.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// ToTOML serializes the persisted fields to TOML.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Encode serializes the persisted fields in the given format.
func (c *Config) Encode(format FileFormat) ([]byte, error) {
	switch format {
	case FileFormatYAML:
		return c.ToYAML()
	case FileFormatTOML:
		return c.ToTOML()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFileFormat, format)
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Extensions = slices.Clone(c.Extensions)
	clone.Ignore = slices.Clone(c.Ignore)
	clone.Strict = cloneBool(c.Strict)
	clone.Backup = cloneBool(c.Backup)
	clone.CheckLanguage = cloneBool(c.CheckLanguage)
	clone.FollowSymlinks = cloneBool(c.FollowSymlinks)
	return &clone
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	return Bool(*p)
}
