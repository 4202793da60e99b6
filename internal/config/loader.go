package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFilename is the default cluster configuration filename.
const DefaultConfigFilename = "cluster.yaml"

// LoadError reports a configuration source that could not be read or parsed.
// It is fatal: without a readable config there is nothing to operate on.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load config %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsLoadError reports whether err is a configuration load failure.
func IsLoadError(err error) bool {
	var loadErr *LoadError
	return errors.As(err, &loadErr)
}

// Load reads, parses, and validates a cluster configuration file.
func Load(path string) (*File, error) {
	f, err := LoadWithoutValidation(path)
	if err != nil {
		return nil, err
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return f, nil
}

// LoadWithoutValidation reads and parses a cluster configuration file without
// validating it. Useful for tooling that inspects partially valid configs.
func LoadWithoutValidation(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	f, err := parseFile(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	return f, nil
}

// LoadFromBytes parses and validates configuration data held in memory.
func LoadFromBytes(data []byte) (*File, error) {
	f, err := parseFile(data)
	if err != nil {
		return nil, err
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return f, nil
}

// parseFile parses YAML data into a File.
func parseFile(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &f, nil
}

// LoadTree reads a bare YAML mapping, such as a per-node override file.
func LoadTree(path string) (Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var t Tree
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("failed to parse YAML: %w", err)}
	}

	return t, nil
}

// SaveTree writes a configuration tree as YAML. Used for the generated
// per-node effective configuration snapshots.
func SaveTree(t Tree, path string) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal config tree: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// DefaultConfigPath returns the default path for the config file.
// It looks in the current working directory.
func DefaultConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return DefaultConfigFilename
	}
	return filepath.Join(cwd, DefaultConfigFilename)
}

// FindConfigFile searches for a config file in common locations.
// It checks the current directory, then walks up to find cluster.yaml.
func FindConfigFile() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	path := filepath.Join(cwd, DefaultConfigFilename)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	dir := cwd
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent

		path := filepath.Join(dir, DefaultConfigFilename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("config file %s not found", DefaultConfigFilename)
}
