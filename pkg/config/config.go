// Package config loads reactor model configuration from YAML and runtime
// settings from the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the configuration file name looked up by LoadProject.
const ProjectFile = "reactor.yaml"

// ErrUnknownKey is returned when a configuration key does not exist.
var ErrUnknownKey = errors.New("unknown configuration key")

// Load reads a reactor config from a YAML file. Keys not present in the
// file keep their default values; keys that do not exist are rejected.
func Load(path string) (*ReactorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg := Defaults()
	if err := decodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	return cfg, nil
}

// LoadProject loads the reactor config from a project directory.
// It looks for reactor.yaml in the given directory.
func LoadProject(projectDir string) (*ReactorConfig, error) {
	return Load(filepath.Join(projectDir, ProjectFile))
}

// LoadPath loads from a YAML file, a project directory, or, for an empty
// path, returns the defaults.
func LoadPath(path string) (*ReactorConfig, error) {
	if path == "" {
		return Defaults(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if info.IsDir() {
		return LoadProject(path)
	}
	return Load(path)
}

// ApplyOverrides sets dotted keys from key=value pairs, e.g.
// "options.simple_core=true" or "blocks.number_of_blocks=12". Values are
// parsed as YAML scalars.
func (c *ReactorConfig) ApplyOverrides(pairs []string) error {
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return fmt.Errorf("override %q: expected key=value", pair)
		}
		var scalar any
		if err := yaml.Unmarshal([]byte(value), &scalar); err != nil {
			return fmt.Errorf("override %q: %w", pair, err)
		}
		doc := nest(strings.Split(key, "."), scalar)
		data, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("override %q: %w", pair, err)
		}
		if err := decodeStrict(data, c); err != nil {
			return fmt.Errorf("override %q: %w", pair, err)
		}
	}
	return nil
}

func nest(path []string, value any) map[string]any {
	if len(path) == 1 {
		return map[string]any{path[0]: value}
	}
	return map[string]any{path[0]: nest(path[1:], value)}
}

func decodeStrict(data []byte, target any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var te *yaml.TypeError
		if errors.As(err, &te) {
			for _, msg := range te.Errors {
				if strings.Contains(msg, "not found in type") {
					return fmt.Errorf("%w: %s", ErrUnknownKey, msg)
				}
			}
		}
		return err
	}
	return nil
}
