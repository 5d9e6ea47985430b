package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/usedirective/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up in the project root.
const FileName = ".usedirective.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .usedirective.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads the nearest .usedirective.yaml at or above projectPath and
// records its directory in Dir. Returns DefaultConfig if there is none.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	path, ok := Find(projectPath)
	if !ok {
		return domain.DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ProjectConfig{}, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return domain.ProjectConfig{}, err
	}
	cfg.Dir = filepath.Dir(path)
	return cfg, nil
}

// Find walks from dir towards the filesystem root and returns the first
// config file it meets.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		p := filepath.Join(dir, FileName)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Parse decodes and validates configuration bytes.
func Parse(data []byte) (domain.ProjectConfig, error) {
	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	return cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg domain.ProjectConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
