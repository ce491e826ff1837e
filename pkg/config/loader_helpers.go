package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	tkerrors "github.com/odvcencio/tuikit/pkg/errors"
)

// loadAndMerge loads a YAML file and merges it into the config.
func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return tkerrors.Wrap(err, tkerrors.ErrCodeConfigParse, "parsing YAML").WithContext("path", path)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return tkerrors.Wrap(err, tkerrors.ErrCodeConfigParse, "parsing YAML").WithContext("path", path)
	}

	mergeConfigs(cfg, &override, raw)
	return nil
}

// mergeConfigs merges override into base. Strings replace the base when
// non-empty, booleans and numbers only when the key is present in raw.
func mergeConfigs(base, override *Config, raw map[string]any) {
	if override == nil {
		return
	}

	bools := []struct {
		path []string
		dst  *bool
		src  bool
	}{
		{[]string{"terminal", "allow_interrupt"}, &base.Terminal.AllowInterrupt, override.Terminal.AllowInterrupt},
		{[]string{"terminal", "allow_quit"}, &base.Terminal.AllowQuit, override.Terminal.AllowQuit},
		{[]string{"terminal", "allow_suspend"}, &base.Terminal.AllowSuspend, override.Terminal.AllowSuspend},
		{[]string{"terminal", "disable_alternative_screen"}, &base.Terminal.DisableAlternativeScreen, override.Terminal.DisableAlternativeScreen},
		{[]string{"terminal", "disable_tagged_paste"}, &base.Terminal.DisableTaggedPaste, override.Terminal.DisableTaggedPaste},
		{[]string{"terminal", "force_incompatible_terminals"}, &base.Terminal.ForceIncompatibleTerminals, override.Terminal.ForceIncompatibleTerminals},
		{[]string{"palette", "watch"}, &base.Palette.Watch, override.Palette.Watch},
		{[]string{"palette", "cache"}, &base.Palette.Cache, override.Palette.Cache},
	}
	for _, b := range bools {
		if boolFieldSet(raw, b.path...) {
			*b.dst = b.src
		}
	}

	if override.Terminal.ScrollKey != "" {
		base.Terminal.ScrollKey = override.Terminal.ScrollKey
	}
	if override.Terminal.Title != "" {
		base.Terminal.Title = override.Terminal.Title
	}
	if override.Terminal.IconTitle != "" {
		base.Terminal.IconTitle = override.Terminal.IconTitle
	}

	if override.Palette.Preset != "" {
		base.Palette.Preset = override.Palette.Preset
	}
	if override.Palette.File != "" {
		base.Palette.File = override.Palette.File
	}
	if boolFieldSet(raw, "palette", "memo_limit") {
		base.Palette.MemoLimit = override.Palette.MemoLimit
	}

	if override.Logging.Dir != "" {
		base.Logging.Dir = override.Logging.Dir
	}
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Metrics.Addr != "" {
		base.Metrics.Addr = override.Metrics.Addr
	}
}

// boolFieldSet reports whether the nested key exists in the raw document.
func boolFieldSet(raw map[string]any, path ...string) bool {
	if len(path) == 0 || raw == nil {
		return false
	}
	current := any(raw)
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return false
		}
		val, ok := m[key]
		if !ok {
			return false
		}
		current = val
	}
	return true
}

func expandHomeDir(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
