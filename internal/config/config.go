// Package config manages global (~/.config/geoembed/config.toml) and
// per-project (.geoembed/config.toml) configuration for geoembed.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// GlobalConfig holds user-wide settings.
type GlobalConfig struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Output   OutputConfig   `toml:"output"`
	Watch    WatchConfig    `toml:"watch"`
	Batch    BatchConfig    `toml:"batch"`
}

// DefaultsConfig pre-fills the embed dialog fields.
type DefaultsConfig struct {
	Width       int  `toml:"width"`
	Height      int  `toml:"height"`
	ShowToolbar bool `toml:"show_toolbar"`
}

// OutputConfig selects the output format and diagnostics level.
type OutputConfig struct {
	Format  string `toml:"format"`
	Verbose bool   `toml:"verbose"`
}

// WatchConfig controls how file changes are batched by `geoembed watch`.
type WatchConfig struct {
	DebounceMs int `toml:"debounce_ms"`
}

// BatchConfig selects the files converted by `geoembed batch`.
type BatchConfig struct {
	Extensions []string `toml:"extensions"`
	OutputExt  string   `toml:"output_ext"`
}

// ProjectConfig holds per-project overrides stored in .geoembed/config.toml.
// Zero values mean "inherit from global".
type ProjectConfig struct {
	Defaults ProjectDefaults `toml:"defaults"`
	Output   ProjectOutput   `toml:"output"`
}

// ProjectDefaults overrides the dialog defaults. A nil ShowToolbar inherits.
type ProjectDefaults struct {
	Width       int   `toml:"width"`
	Height      int   `toml:"height"`
	ShowToolbar *bool `toml:"show_toolbar"`
}

// ProjectOutput mirrors the global [output] table.
type ProjectOutput struct {
	Format string `toml:"format"`
}

// DefaultGlobal returns sensible defaults.
func DefaultGlobal() GlobalConfig {
	return GlobalConfig{
		Defaults: DefaultsConfig{
			Width:       640,
			Height:      360,
			ShowToolbar: false,
		},
		Output: OutputConfig{
			Format: "html",
		},
		Watch: WatchConfig{
			DebounceMs: 300,
		},
		Batch: BatchConfig{
			Extensions: []string{".txt", ".snippet"},
			OutputExt:  ".html",
		},
	}
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "geoembed", "config.toml"), nil
}

// LoadGlobal loads the global config, applying defaults for any missing values.
func LoadGlobal() (GlobalConfig, error) {
	cfg := DefaultGlobal()

	path, err := GlobalConfigPath()
	if err != nil {
		return cfg, nil // Return defaults if we can't determine home dir.
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config: load global: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv lets GEOEMBED_* variables override file values.
func applyEnv(cfg *GlobalConfig) error {
	if v := os.Getenv("GEOEMBED_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: GEOEMBED_WIDTH: %w", err)
		}
		cfg.Defaults.Width = n
	}
	if v := os.Getenv("GEOEMBED_HEIGHT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: GEOEMBED_HEIGHT: %w", err)
		}
		cfg.Defaults.Height = n
	}
	if v := os.Getenv("GEOEMBED_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
	return nil
}

// SaveGlobal writes the global config to disk.
func SaveGlobal(cfg GlobalConfig) error {
	path, err := GlobalConfigPath()
	if err != nil {
		return err
	}
	return writeTOML(path, cfg)
}

// ProjectConfigDirPath returns the path to the project's .geoembed/ directory.
func ProjectConfigDirPath(root string) string {
	return filepath.Join(root, ".geoembed")
}

// LoadProject loads .geoembed/config.toml from the given project root.
func LoadProject(root string) (ProjectConfig, error) {
	var cfg ProjectConfig
	path := filepath.Join(ProjectConfigDirPath(root), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: load project: %w", err)
	}
	return cfg, nil
}

// SaveProject writes the project config to .geoembed/config.toml.
func SaveProject(root string, cfg ProjectConfig) error {
	return writeTOML(filepath.Join(ProjectConfigDirPath(root), "config.toml"), cfg)
}

// Load returns the effective config for a project root (global merged with project).
func Load(root string) (GlobalConfig, error) {
	global, err := LoadGlobal()
	if err != nil {
		return global, err
	}

	project, err := LoadProject(root)
	if err != nil {
		return global, err
	}

	if project.Defaults.Width > 0 {
		global.Defaults.Width = project.Defaults.Width
	}
	if project.Defaults.Height > 0 {
		global.Defaults.Height = project.Defaults.Height
	}
	if project.Defaults.ShowToolbar != nil {
		global.Defaults.ShowToolbar = *project.Defaults.ShowToolbar
	}
	if project.Output.Format != "" {
		global.Output.Format = project.Output.Format
	}
	return global, nil
}

// Encode renders cfg as TOML.
func Encode(cfg GlobalConfig) (string, error) {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return "", fmt.Errorf("config: encode: %w", err)
	}
	return sb.String(), nil
}

func writeTOML(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: mkdir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(v)
}
