// Package config resolves where the template registry and generated
// checks live. The root directory comes from the CHECKSMITH_DIR
// environment variable (falling back to the working directory); an
// optional checksmith.yaml inside the root overrides the conventional
// subdirectory layout.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the optional per-root configuration file.
const ConfigFileName = "checksmith.yaml"

// EnvRootDir overrides the root directory when set.
const EnvRootDir = "CHECKSMITH_DIR"

// Config holds the resolved locations the tool operates on. All paths
// are absolute after Load.
type Config struct {
	RootDir      string `yaml:"-"`
	TemplatesDir string `yaml:"templates_dir"`
	ChecksDir    string `yaml:"checks_dir"`
	RegistryFile string `yaml:"registry"`
}

// Load resolves the configuration from the environment, defaulting the
// root to the current working directory.
func Load() (*Config, error) {
	root := os.Getenv(EnvRootDir)
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		root = cwd
	}
	return LoadFrom(root)
}

// LoadFrom resolves the configuration for a specific root directory,
// applying checksmith.yaml overrides when the file exists.
func LoadFrom(root string) (*Config, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		RootDir:      root,
		TemplatesDir: "templates",
		ChecksDir:    "checks",
		RegistryFile: "registry.json",
	}

	data, err := os.ReadFile(filepath.Join(root, ConfigFileName))
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.TemplatesDir = resolve(root, cfg.TemplatesDir)
	cfg.ChecksDir = resolve(root, cfg.ChecksDir)
	return cfg, nil
}

// RegistryPath returns the absolute path of the registry file, which
// lives inside the templates directory.
func (c *Config) RegistryPath() string {
	return resolve(c.TemplatesDir, c.RegistryFile)
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
