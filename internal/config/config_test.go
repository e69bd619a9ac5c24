package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/maderarasto/cordova-jsx/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.MountTarget != DefaultMountTarget {
		t.Errorf("MountTarget = %q, want %q", cfg.MountTarget, DefaultMountTarget)
	}
	if cfg.Server.Address != DefaultAddress {
		t.Errorf("Server.Address = %q, want %q", cfg.Server.Address, DefaultAddress)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should default to true")
	}
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    Config
	}{
		{
			name: "json",
			file: ConfigFileName,
			content: `{
  "name": "counter",
  "mountTarget": "#root",
  "server": {"address": "127.0.0.1:9000"},
  "metrics": {"enabled": false},
  "snapshot": {"bucket": "snaps", "prefix": "r/"}
}`,
			want: Config{
				Name:        "counter",
				MountTarget: "#root",
				Server:      ServerConfig{Address: "127.0.0.1:9000", Path: DefaultPath},
				Metrics:     MetricsConfig{Namespace: DefaultMetricsNamespace},
				Snapshot:    SnapshotConfig{Bucket: "snaps", Prefix: "r/"},
			},
		},
		{
			name: "yaml",
			file: YAMLConfigFileName,
			content: `name: counter
namespace: http://www.w3.org/2000/svg
server:
  path: /live
metrics:
  namespace: demo
snapshot:
  bucket: snaps
  region: eu-central-1
`,
			want: Config{
				Name:        "counter",
				MountTarget: DefaultMountTarget,
				Namespace:   "http://www.w3.org/2000/svg",
				Server:      ServerConfig{Address: DefaultAddress, Path: "/live"},
				Metrics:     MetricsConfig{Enabled: true, Namespace: "demo"},
				Snapshot:    SnapshotConfig{Bucket: "snaps", Region: "eu-central-1"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := write(t, dir, tt.file, tt.content)

			cfg, err := Load(dir)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Path() != path {
				t.Errorf("Path() = %q, want %q", cfg.Path(), path)
			}
			if diff := cmp.Diff(tt.want, *cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadPrefersJSON(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, ConfigFileName, `{"name": "json"}`)
	write(t, dir, YAMLConfigFileName, "name: yaml\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Name != "json" {
		t.Errorf("Name = %q, want %q", cfg.Name, "json")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    string
	}{
		{"missing", "", "", "E106"},
		{"invalid json", ConfigFileName, "not valid json", "E104"},
		{"invalid yaml", YAMLConfigFileName, "server: [", "E104"},
		{"relative path", ConfigFileName, `{"server": {"path": "ws"}}`, "E104"},
		{"bad namespace", ConfigFileName, `{"metrics": {"namespace": "my-app"}}`, "E104"},
		{"endpoint without bucket", YAMLConfigFileName, "snapshot:\n  endpoint: http://localhost:9000\n", "E104"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.file != "" {
				write(t, dir, tt.file, tt.content)
			}
			_, err := Load(dir)
			e, ok := err.(*errors.Error)
			if !ok || e.Code != tt.code {
				t.Fatalf("Load() error = %v, want %s", err, tt.code)
			}
			if !errors.IsConfiguration(err) {
				t.Errorf("IsConfiguration(%v) = false", err)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if e, ok := err.(*errors.Error); !ok || e.Code != "E106" {
		t.Errorf("LoadFile() error = %v, want E106", err)
	}
}
