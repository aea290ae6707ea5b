package appconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	yaml "sigs.k8s.io/yaml"
)

// Backend selects where app preferences are persisted.
type Backend string

const (
	BackendFile      Backend = "file"
	BackendConfigMap Backend = "configmap"
	BackendMemory    Backend = "memory"
)

type ViewerConfig struct {
	Theme string `json:"theme"`
}

type ConfigMapConfig struct {
	// Kubeconfig defaults to the standard loading rules (KUBECONFIG, ~/.kube/config).
	Kubeconfig string `json:"kubeconfig,omitempty"`
	Context    string `json:"context,omitempty"`
	Namespace  string `json:"namespace"`
	Name       string `json:"name"`
}

type PreferencesConfig struct {
	Backend Backend `json:"backend"`
	// Path of the file backend; empty means ~/.dashnav/preferences.yaml.
	Path      string          `json:"path,omitempty"`
	ConfigMap ConfigMapConfig `json:"configMap"`
}

type ShellConfig struct {
	// StartPath is the location the shell opens when none is given.
	StartPath string `json:"startPath"`
	// FallbackApp replaces a missing or corrupt app preference.
	FallbackApp string `json:"fallbackApp"`
}

type Config struct {
	Viewer      ViewerConfig      `json:"viewer"`
	Preferences PreferencesConfig `json:"preferences"`
	Shell       ShellConfig       `json:"shell"`
}

func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{Theme: "dracula"},
		Preferences: PreferencesConfig{
			Backend:   BackendFile,
			ConfigMap: ConfigMapConfig{Namespace: "default", Name: "dashnav-preferences"},
		},
		Shell: ShellConfig{StartPath: "/dashboard", FallbackApp: "cloud"},
	}
}

// Dir returns ~/.dashnav.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".dashnav"), nil
}

func path() (string, error) {
	d, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config.yaml"), nil
}

// Load reads ~/.dashnav/config.yaml if present, otherwise returns defaults.
func Load() (*Config, error) {
	p, err := path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(p)
}

// LoadFrom reads the config at p. A missing file yields defaults; on a parse
// error the defaults are returned together with the error.
func LoadFrom(p string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", p, err)
	}
	normalize(cfg)
	if err := Validate(cfg); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", p, err)
	}
	return cfg, nil
}

// normalize lower-cases enum-like values and fills zero values with defaults.
func normalize(cfg *Config) {
	def := Default()
	cfg.Viewer.Theme = strings.ToLower(strings.TrimSpace(cfg.Viewer.Theme))
	if cfg.Viewer.Theme == "" {
		cfg.Viewer.Theme = def.Viewer.Theme
	}
	cfg.Preferences.Backend = Backend(strings.ToLower(strings.TrimSpace(string(cfg.Preferences.Backend))))
	if cfg.Preferences.Backend == "" {
		cfg.Preferences.Backend = def.Preferences.Backend
	}
	if cfg.Preferences.ConfigMap.Namespace == "" {
		cfg.Preferences.ConfigMap.Namespace = def.Preferences.ConfigMap.Namespace
	}
	if cfg.Preferences.ConfigMap.Name == "" {
		cfg.Preferences.ConfigMap.Name = def.Preferences.ConfigMap.Name
	}
	if cfg.Shell.StartPath == "" {
		cfg.Shell.StartPath = def.Shell.StartPath
	}
	cfg.Shell.FallbackApp = strings.ToLower(strings.TrimSpace(cfg.Shell.FallbackApp))
	if cfg.Shell.FallbackApp == "" {
		cfg.Shell.FallbackApp = def.Shell.FallbackApp
	}
}

// Validate checks enum values. Unknown chroma themes are rejected so the
// viewer never silently falls back to an unstyled lexer.
func Validate(cfg *Config) error {
	var errs []error
	switch cfg.Preferences.Backend {
	case BackendFile, BackendConfigMap, BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("preferences.backend: unsupported value %q", cfg.Preferences.Backend))
	}
	if _, ok := styles.Registry[cfg.Viewer.Theme]; !ok {
		errs = append(errs, fmt.Errorf("viewer.theme: unknown style %q", cfg.Viewer.Theme))
	}
	switch cfg.Shell.FallbackApp {
	case "cloud", "software", "app":
	default:
		errs = append(errs, fmt.Errorf("shell.fallbackApp: unsupported value %q", cfg.Shell.FallbackApp))
	}
	return errors.Join(errs...)
}

// Save writes the config to ~/.dashnav/config.yaml, creating the directory if needed.
func Save(cfg *Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	return SaveTo(p, cfg)
}

// SaveTo writes cfg to p.
func SaveTo(p string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	out := *cfg
	normalize(&out)
	data, err := yaml.Marshal(&out)
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}
