// Package config loads depresolve.conf.{json,yaml} from the directory
// hierarchy above a project, merging root-to-leaf so a project-local file
// overrides anything set higher up, mirroring the teacher's directory-walk
// merge for its own build configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the knobs the resolution pipeline reads at startup.
type Config struct {
	// Repositories, if non-empty, replaces the default repository list
	// (Maven Central, Google, JitPack) entirely.
	Repositories []RepositoryConfig `json:"repositories" yaml:"repositories"`

	// Concurrency bounds the graph walker's per-level fan-out. Zero means
	// "use the walker's own default".
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// HTTPTimeoutSeconds bounds each HTTP round trip. Zero means "use the
	// HTTP client's own default".
	HTTPTimeoutSeconds int `json:"httpTimeoutSeconds" yaml:"httpTimeoutSeconds"`

	// HTTPRetryMax bounds retryablehttp's retry count. Zero means "use the
	// HTTP client's own default".
	HTTPRetryMax int `json:"httpRetryMax" yaml:"httpRetryMax"`
}

// RepositoryConfig names one remote Maven repository to probe.
type RepositoryConfig struct {
	Name    string `json:"name" yaml:"name"`
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
}

const (
	jsonFileName = "depresolve.conf.json"
	yamlFileName = "depresolve.conf.yaml"
)

// Load walks up the directory hierarchy from startDir looking for
// depresolve.conf.json / depresolve.conf.yaml files, merging them
// root-to-leaf so the file closest to startDir wins any field conflict.
func Load(startDir string) (*Config, error) {
	var found []string

	currentDir := startDir
	for {
		for _, name := range []string{jsonFileName, yamlFileName} {
			path := filepath.Join(currentDir, name)
			if _, err := os.Stat(path); err == nil {
				found = append(found, path)
			}
		}
		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break
		}
		currentDir = parent
	}

	cfg := &Config{}
	for i := len(found) - 1; i >= 0; i-- {
		if err := mergeFile(cfg, found[i]); err != nil {
			return nil, fmt.Errorf("merging config file %s: %w", found[i], err)
		}
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var layer Config
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &layer); err != nil {
			return fmt.Errorf("parsing yaml config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &layer); err != nil {
			return fmt.Errorf("parsing json config: %w", err)
		}
	}

	if len(layer.Repositories) > 0 {
		cfg.Repositories = layer.Repositories
	}
	if layer.Concurrency != 0 {
		cfg.Concurrency = layer.Concurrency
	}
	if layer.HTTPTimeoutSeconds != 0 {
		cfg.HTTPTimeoutSeconds = layer.HTTPTimeoutSeconds
	}
	if layer.HTTPRetryMax != 0 {
		cfg.HTTPRetryMax = layer.HTTPRetryMax
	}
	return nil
}
