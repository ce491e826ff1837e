package palette

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	tkerrors "github.com/odvcencio/tuikit/pkg/errors"
	"github.com/odvcencio/tuikit/pkg/symbol"
	"github.com/odvcencio/tuikit/pkg/ui/backend"
)

// File is a palette loaded from a theme document.
type File struct {
	Name    string
	Path    string
	Palette Palette
}

type fileDoc struct {
	Name         string              `yaml:"name,omitempty"`
	Base         string              `yaml:"base,omitempty"`
	Colors       map[string]string   `yaml:"colors,omitempty"`
	Attributes   map[string][]string `yaml:"attributes,omitempty"`
	Rules        []ruleDoc           `yaml:"rules,omitempty"`
	DefaultRules *bool               `yaml:"default_rules,omitempty"`
}

// ruleDoc lists publish commands first, then local commands.
type ruleDoc struct {
	Classes []string   `yaml:"classes"`
	Publish [][]string `yaml:"publish"`
	Local   [][]string `yaml:"local"`
}

// LoadFile reads a theme document from disk.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tkerrors.Wrap(err, tkerrors.ErrCodePaletteParse, "failed to read palette file").
			WithContext("path", path)
	}
	f, err := Parse(data)
	if err != nil {
		if tkErr, ok := err.(*tkerrors.Error); ok {
			tkErr.WithContext("path", path)
		}
		return nil, err
	}
	f.Path = path
	return f, nil
}

// Parse decodes a theme document.
//
// A document may name a preset in "base" to start from. Without a base the
// default window rules are added unless "default_rules: false" is set.
func Parse(data []byte) (*File, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, tkerrors.Wrap(err, tkerrors.ErrCodePaletteParse, "invalid palette yaml")
	}
	return doc.build()
}

func (doc *fileDoc) build() (*File, error) {
	var p Palette
	if doc.Base != "" {
		base, err := Preset(doc.Base)
		if err != nil {
			return nil, err
		}
		p = base
	}

	for key, value := range doc.Colors {
		c, err := backend.ParseColor(value)
		if err != nil {
			return nil, tkerrors.Wrap(err, tkerrors.ErrCodePaletteParse, "invalid color").
				WithContext("key", key)
		}
		p.SetColor(key, c)
	}

	for key, names := range doc.Attributes {
		a, err := backend.ParseAttributes(names)
		if err != nil {
			return nil, tkerrors.Wrap(err, tkerrors.ErrCodePaletteParse, "invalid attributes").
				WithContext("key", key)
		}
		p.SetAttribute(key, a)
	}

	// Default rules go first so rules from the document override them
	// within the same specificity tier.
	if doc.DefaultRules != nil && *doc.DefaultRules || doc.DefaultRules == nil && doc.Base == "" {
		SetDefaultRules(&p)
	}

	for i, rd := range doc.Rules {
		rule := RuleDef{Classes: rd.Classes}
		for _, pair := range rd.Publish {
			if len(pair) != 2 {
				return nil, tkerrors.Newf(tkerrors.ErrCodePaletteParse, "rule %d: publish entry needs [target, source], got %d names", i, len(pair)).
					WithContext("rule", i)
			}
			rule.Commands = append(rule.Commands, PublishCmd(pair[0], pair[1]))
		}
		for _, pair := range rd.Local {
			if len(pair) != 2 {
				return nil, tkerrors.Newf(tkerrors.ErrCodePaletteParse, "rule %d: local entry needs [target, source], got %d names", i, len(pair)).
					WithContext("rule", i)
			}
			rule.Commands = append(rule.Commands, LocalCmd(pair[0], pair[1]))
		}
		p.AddRules(rule)
	}

	name := doc.Name
	if name == "" {
		name = doc.Base
	}
	return &File{Name: name, Palette: p}, nil
}

// Marshal renders the direct definitions of p as a theme document.
// Rules are not written; the document enables the default rules instead.
func Marshal(name string, p *Palette) ([]byte, error) {
	doc := fileDoc{
		Name:   name,
		Colors: make(map[string]string),
	}
	for _, key := range p.ColorKeys() {
		c, _ := p.Color(symbol.Intern(key))
		doc.Colors[key] = c.String()
	}
	if keys := p.AttributeKeys(); len(keys) > 0 {
		doc.Attributes = make(map[string][]string, len(keys))
		for _, key := range keys {
			a, _ := p.Attributes(symbol.Intern(key))
			doc.Attributes[key] = a.Names()
		}
	}
	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("marshal palette: %w", err)
	}
	return out, nil
}
