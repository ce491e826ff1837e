package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tkerrors "github.com/odvcencio/tuikit/pkg/errors"
	"github.com/odvcencio/tuikit/pkg/logging"
	"github.com/odvcencio/tuikit/pkg/palette"
	"github.com/odvcencio/tuikit/pkg/ui/runtime"
	"github.com/odvcencio/tuikit/pkg/ui/terminal"
)

// Default configuration values exported for documentation and validation
const (
	DefaultPalettePreset = "classic"
	DefaultScrollKey     = "f6"
	DefaultLogLevel      = "info"
	DefaultLogDir        = "~/.tuikit/logs"
	DefaultMemoLimit     = 4096
)

// Config represents the complete tuikit configuration
type Config struct {
	Terminal TerminalConfig `yaml:"terminal"`
	Palette  PaletteConfig  `yaml:"palette"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// TerminalConfig controls terminal setup
type TerminalConfig struct {
	AllowInterrupt             bool   `yaml:"allow_interrupt"`
	AllowQuit                  bool   `yaml:"allow_quit"`
	AllowSuspend               bool   `yaml:"allow_suspend"`
	DisableAlternativeScreen   bool   `yaml:"disable_alternative_screen"`
	DisableTaggedPaste         bool   `yaml:"disable_tagged_paste"`
	ForceIncompatibleTerminals bool   `yaml:"force_incompatible_terminals"`
	ScrollKey                  string `yaml:"scroll_key"`
	Title                      string `yaml:"title"`
	IconTitle                  string `yaml:"icon_title"`
}

// PaletteConfig selects the palette of the root widget
type PaletteConfig struct {
	// Preset names a built-in palette. File takes precedence when set.
	Preset string `yaml:"preset"`
	File   string `yaml:"file"`
	// Watch reloads File when it changes.
	Watch bool `yaml:"watch"`
	// Cache memoizes palette resolution.
	Cache     bool `yaml:"cache"`
	MemoLimit int  `yaml:"memo_limit"`
}

// LoggingConfig controls the JSONL session log
type LoggingConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	// Addr is the listen address for /metrics. Empty disables the endpoint.
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Terminal: TerminalConfig{
			ScrollKey: DefaultScrollKey,
		},
		Palette: PaletteConfig{
			Preset:    DefaultPalettePreset,
			Cache:     true,
			MemoLimit: DefaultMemoLimit,
		},
		Logging: LoggingConfig{
			Dir:   DefaultLogDir,
			Level: DefaultLogLevel,
		},
	}
}

// Load loads configuration from default locations with proper precedence
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Load user config (~/.tuikit/config.yaml)
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home != "" {
		userConfigPath := filepath.Join(home, ".tuikit", "config.yaml")
		if err := loadAndMerge(cfg, userConfigPath); err != nil && !os.IsNotExist(err) {
			return nil, loadError(err, "loading user config", userConfigPath)
		}
	}

	// Load project config (./.tuikit/config.yaml)
	projectConfigPath := filepath.Join(".", ".tuikit", "config.yaml")
	if err := loadAndMerge(cfg, projectConfigPath); err != nil && !os.IsNotExist(err) {
		return nil, loadError(err, "loading project config", projectConfigPath)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadAndMerge(cfg, path); err != nil {
		return nil, loadError(err, "loading config", path)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadError keeps parse errors as they are and wraps everything else as
// CONFIG_LOAD.
func loadError(err error, msg, path string) error {
	if tkerrors.IsCode(err, tkerrors.ErrCodeConfigParse) {
		return err
	}
	return tkerrors.Wrap(err, tkerrors.ErrCodeConfigLoad, msg).WithContext("path", path)
}

// applyEnvOverrides applies environment variable overrides
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TUIKIT_PALETTE"); v != "" {
		cfg.Palette.Preset = v
	}
	if v := os.Getenv("TUIKIT_PALETTE_FILE"); v != "" {
		cfg.Palette.File = v
	}
	if val, ok := envBool("TUIKIT_FORCE_INCOMPATIBLE"); ok {
		cfg.Terminal.ForceIncompatibleTerminals = val
	}
	if val, ok := envBool("TUIKIT_DISABLE_ALTSCREEN"); ok {
		cfg.Terminal.DisableAlternativeScreen = val
	}
	if v := os.Getenv("TUIKIT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TUIKIT_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
}

func envBool(key string) (bool, bool) {
	val := os.Getenv(key)
	if val == "" {
		return false, false
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Palette.File) == "" {
		if !slices.Contains(palette.PresetNames(), c.Palette.Preset) {
			return invalid("palette.preset", fmt.Sprintf("unknown palette preset: %s (valid: %s)",
				c.Palette.Preset, strings.Join(palette.PresetNames(), ", ")))
		}
		if c.Palette.Watch {
			return invalid("palette.watch", "palette.watch requires palette.file")
		}
	}
	if c.Palette.MemoLimit < 0 {
		return invalid("palette.memo_limit", "palette.memo_limit must not be negative")
	}

	if _, err := c.scrollAtom(); err != nil {
		return err
	}

	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		return invalid("logging.level", fmt.Sprintf("invalid log level: %s (valid: debug, info, warn, error)", c.Logging.Level))
	}

	if addr := strings.TrimSpace(c.Metrics.Addr); addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return invalid("metrics.addr", fmt.Sprintf("invalid metrics address %q: %v", addr, err))
		}
	}
	return nil
}

func invalid(field, msg string) error {
	return tkerrors.New(tkerrors.ErrCodeConfigInvalid, msg).WithContext("field", field)
}

// scrollAtom resolves terminal.scroll_key. Only plain special keys are
// accepted, the viewport ignores the key when modifiers are held.
func (c *Config) scrollAtom() (terminal.Atom, error) {
	name := strings.TrimSpace(c.Terminal.ScrollKey)
	if name == "" {
		name = DefaultScrollKey
	}
	atom, _, mods, ok := terminal.ParseChord(name)
	if !ok || atom == terminal.AtomUnknown || mods != 0 {
		return terminal.AtomUnknown, invalid("terminal.scroll_key",
			fmt.Sprintf("invalid scroll key: %s (expected a key name such as f6)", c.Terminal.ScrollKey))
	}
	return atom, nil
}

// LogLevel returns the configured log level, info when unparsable.
func (c *Config) LogLevel() logging.Level {
	if lvl, ok := logging.ParseLevel(c.Logging.Level); ok {
		return lvl
	}
	return logging.LevelInfo
}

// LogDir returns the log directory with ~ expanded.
func (c *Config) LogDir() string {
	return expandHomeDir(c.Logging.Dir)
}

// PaletteFile returns the palette file path with ~ expanded.
func (c *Config) PaletteFile() string {
	return expandHomeDir(c.Palette.File)
}

// LoadPalette returns the configured palette: the file when one is set,
// otherwise the preset.
func (c *Config) LoadPalette() (palette.Palette, error) {
	if path := c.PaletteFile(); path != "" {
		f, err := palette.LoadFile(path)
		if err != nil {
			return palette.Palette{}, err
		}
		return f.Palette, nil
	}
	return palette.Preset(c.Palette.Preset)
}

// TerminalOptions converts the terminal section into runtime options.
// Logger and Diagnostics are left for the caller.
func (c *Config) TerminalOptions() runtime.Options {
	atom, err := c.scrollAtom()
	if err != nil {
		atom = terminal.AtomF6
	}
	return runtime.Options{
		AllowInterrupt:             c.Terminal.AllowInterrupt,
		AllowQuit:                  c.Terminal.AllowQuit,
		AllowSuspend:               c.Terminal.AllowSuspend,
		DisableAlternativeScreen:   c.Terminal.DisableAlternativeScreen,
		DisableTaggedPaste:         c.Terminal.DisableTaggedPaste,
		ForceIncompatibleTerminals: c.Terminal.ForceIncompatibleTerminals,
		ScrollKey:                  atom,
		Title:                      c.Terminal.Title,
		IconTitle:                  c.Terminal.IconTitle,
		PaletteCache:               c.Palette.Cache,
		MemoLimit:                  c.Palette.MemoLimit,
	}
}
