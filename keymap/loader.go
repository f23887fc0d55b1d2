package keymap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a keymap file format.
type Format int

const (
	// FormatJSON is the JSON keymap format.
	FormatJSON Format = iota

	// FormatYAML is the YAML keymap format.
	FormatYAML

	// FormatTOML is the TOML keymap format.
	FormatTOML
)

// FormatForPath returns the format implied by a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("unsupported keymap file extension %q", filepath.Ext(path))
	}
}

// Loader loads keymaps from configuration files.
type Loader struct {
	// searchPaths are directories to search for keymap files.
	searchPaths []string
}

// NewLoader creates a new keymap loader.
func NewLoader() *Loader {
	return &Loader{
		searchPaths: make([]string, 0),
	}
}

// AddSearchPath adds a directory to search for keymap files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// LoadFile loads a keymap from a file; the format is chosen by the
// file extension (.json, .yaml, .yml, .toml). The keymap Source is set
// to the path.
func (l *Loader) LoadFile(path string) (*Keymap, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()

	km, err := l.LoadReader(f, format)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if km.Source == "" {
		km.Source = path
	}
	return km, nil
}

// LoadReader loads a keymap from a reader in the given format.
func (l *Loader) LoadReader(r io.Reader, format Format) (*Keymap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading keymap: %w", err)
	}

	var config keymapConfig
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &config)
	case FormatYAML:
		err = yaml.Unmarshal(data, &config)
	case FormatTOML:
		err = toml.Unmarshal(data, &config)
	default:
		err = fmt.Errorf("unknown format %d", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}

	return config.keymap(), nil
}

// LoadAll loads all keymap files found in the search paths, in path
// order. Files that fail to load are skipped.
func (l *Loader) LoadAll() ([]*Keymap, error) {
	keymaps := make([]*Keymap, 0)

	for _, dir := range l.searchPaths {
		for _, pattern := range []string{"*.json", "*.yaml", "*.yml", "*.toml"} {
			matches, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				continue
			}

			for _, path := range matches {
				km, err := l.LoadFile(path)
				if err != nil {
					continue
				}
				keymaps = append(keymaps, km)
			}
		}
	}

	return keymaps, nil
}

// keymapConfig is the file structure for keymap files.
type keymapConfig struct {
	Name     string          `json:"name" yaml:"name" toml:"name"`
	Priority int             `json:"priority,omitempty" yaml:"priority,omitempty" toml:"priority,omitempty"`
	Source   string          `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
	Bindings []bindingConfig `json:"bindings" yaml:"bindings" toml:"bindings"`
}

type bindingConfig struct {
	Keys        string `json:"keys" yaml:"keys" toml:"keys"`
	Action      string `json:"action" yaml:"action" toml:"action"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`
}

// keymap converts the file structure to a Keymap.
func (c *keymapConfig) keymap() *Keymap {
	km := &Keymap{
		Name:     c.Name,
		Priority: c.Priority,
		Source:   c.Source,
		Bindings: make([]Binding, 0, len(c.Bindings)),
	}
	for _, bc := range c.Bindings {
		km.Bindings = append(km.Bindings, Binding(bc))
	}
	return km
}

// config converts a Keymap to the file structure.
func (k *Keymap) config() keymapConfig {
	c := keymapConfig{
		Name:     k.Name,
		Priority: k.Priority,
		Source:   k.Source,
		Bindings: make([]bindingConfig, 0, len(k.Bindings)),
	}
	for _, b := range k.Bindings {
		c.Bindings = append(c.Bindings, bindingConfig(b))
	}
	return c
}

// MarshalJSON converts a keymap to compact JSON, so a keymap nested
// inside another document marshals like any other value.
func (k *Keymap) MarshalJSON() ([]byte, error) {
	c := k.config()
	return json.Marshal(&c)
}

// UnmarshalJSON parses a keymap from JSON.
func (k *Keymap) UnmarshalJSON(data []byte) error {
	var config keymapConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return err
	}
	*k = *config.keymap()
	return nil
}

// SaveFile saves the keymap as indented JSON.
func (k *Keymap) SaveFile(path string) error {
	data, err := json.Marshal(k)
	if err != nil {
		return fmt.Errorf("marshaling keymap: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("formatting keymap: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing keymap file: %w", err)
	}

	return nil
}
