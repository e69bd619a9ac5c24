package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/maderarasto/cordova-jsx/internal/errors"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "cordova.json"

	// YAMLConfigFileName is the name of the YAML configuration file.
	YAMLConfigFileName = "cordova.yaml"

	// DefaultMountTarget is the selector of the container the app mounts into.
	DefaultMountTarget = "#app"

	// DefaultAddress is the default serve address.
	DefaultAddress = ":8080"

	// DefaultPath is the default websocket path.
	DefaultPath = "/ws"

	// DefaultMetricsNamespace is the default Prometheus namespace.
	DefaultMetricsNamespace = "cordova"
)

// Config represents a cordova.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// MountTarget is the selector of the mount container.
	MountTarget string `json:"mountTarget,omitempty" yaml:"mountTarget,omitempty"`

	// Namespace is the default element namespace. Empty means HTML.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`

	// Server contains websocket server configuration.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Snapshot contains S3 snapshot configuration.
	Snapshot SnapshotConfig `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`

	configPath string
}

// ServerConfig contains serve settings.
type ServerConfig struct {
	// Address is the listen address.
	Address string `json:"address,omitempty" yaml:"address,omitempty"`

	// Path is the websocket endpoint path.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// MetricsConfig contains metrics settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// SnapshotConfig contains S3 snapshot settings.
type SnapshotConfig struct {
	Bucket   string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region   string `json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		MountTarget: DefaultMountTarget,
		Server: ServerConfig{
			Address: DefaultAddress,
			Path:    DefaultPath,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultMetricsNamespace,
		},
	}
}

// Load reads configuration from the specified directory.
// cordova.json takes precedence over cordova.yaml.
func Load(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E106").
		WithDetail("No " + ConfigFileName + " or " + YAMLConfigFileName + " found in " + dir)
}

// LoadFile reads configuration from the specified file path. The format is
// chosen by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E106").WithDetail("No configuration at " + path)
		}
		return nil, errors.New("E104").Wrap(err)
	}

	cfg := New()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E104").
			WithPath(path).
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.MountTarget == "" {
		c.MountTarget = DefaultMountTarget
	}
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Server.Path == "" {
		c.Server.Path = DefaultPath
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Server.Path, "/") {
		return errors.New("E104").
			WithDetail("server.path must start with '/'")
	}
	if strings.ContainsAny(c.Metrics.Namespace, " -.") {
		return errors.New("E104").
			WithDetail("metrics.namespace may only contain letters, digits and underscores")
	}
	if c.Snapshot.Endpoint != "" && c.Snapshot.Bucket == "" {
		return errors.New("E104").
			WithDetail("snapshot.endpoint is set but snapshot.bucket is empty")
	}
	return nil
}
