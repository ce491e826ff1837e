package palette

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	tkerrors "github.com/odvcencio/tuikit/pkg/errors"
)

//go:embed presets/*.yaml
var presetFS embed.FS

var presetFiles = map[string]string{
	"classic": "presets/classic.yaml",
	"black":   "presets/black.yaml",
}

var (
	presetsOnce sync.Once
	presets     map[string]Palette
)

func loadPresets() {
	presets = make(map[string]Palette, len(presetFiles))
	for name, path := range presetFiles {
		data, err := presetFS.ReadFile(path)
		if err != nil {
			panic(fmt.Sprintf("palette: embedded preset %s: %v", name, err))
		}
		var doc fileDoc
		if err := yaml.Unmarshal(data, &doc); err != nil {
			panic(fmt.Sprintf("palette: embedded preset %s: %v", name, err))
		}
		// Presets never name a base, so build adds the default rules.
		f, err := doc.build()
		if err != nil {
			panic(fmt.Sprintf("palette: embedded preset %s: %v", name, err))
		}
		presets[name] = f.Palette
	}
}

// Preset returns a copy of the named built-in palette.
func Preset(name string) (Palette, error) {
	presetsOnce.Do(loadPresets)
	p, ok := presets[name]
	if !ok {
		return Palette{}, tkerrors.New(tkerrors.ErrCodePaletteUnknown, "unknown palette preset").
			WithContext("name", name).
			WithRemediation(fmt.Sprintf("use one of: %v", PresetNames()))
	}
	return p.Clone(), nil
}

// PresetNames lists the built-in palettes.
func PresetNames() []string {
	names := make([]string, 0, len(presetFiles))
	for name := range presetFiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Classic is the blue-window palette with gray dialogs.
func Classic() Palette {
	p, _ := Preset("classic")
	return p
}

// Black is the black-window palette.
func Black() Palette {
	p, _ := Preset("black")
	return p
}
