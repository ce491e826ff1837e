// Package palette maps symbolic style keys such as "button.fg" to concrete
// colors and attributes. A palette holds direct definitions plus alias
// rules. Rules match widgets by palette class and cascade from the root of
// the widget tree down to the widget being painted.
package palette

import (
	"sort"

	"github.com/odvcencio/tuikit/pkg/symbol"
	"github.com/odvcencio/tuikit/pkg/ui/backend"
)

// RuleKind selects where an alias rule takes effect.
type RuleKind int

const (
	// Publish aliases apply at the matching widget and are inherited by
	// its descendants.
	Publish RuleKind = iota
	// Local aliases apply only when the matching widget is the one being
	// resolved.
	Local
)

func (k RuleKind) String() string {
	if k == Local {
		return "local"
	}
	return "publish"
}

// RuleCmd copies the value of Source into Target.
type RuleCmd struct {
	Kind   RuleKind
	Target symbol.Symbol
	Source symbol.Symbol
}

// PublishCmd builds a Publish command from key names.
func PublishCmd(target, source string) RuleCmd {
	return RuleCmd{Kind: Publish, Target: symbol.Intern(target), Source: symbol.Intern(source)}
}

// LocalCmd builds a Local command from key names.
func LocalCmd(target, source string) RuleCmd {
	return RuleCmd{Kind: Local, Target: symbol.Intern(target), Source: symbol.Intern(source)}
}

// RuleDef applies its commands to widgets whose palette classes contain
// every entry of Classes. An empty Classes matches every widget.
type RuleDef struct {
	Classes  []string
	Commands []RuleCmd
}

// Matches reports whether Classes is a subset of classes.
func (r *RuleDef) Matches(classes []string) bool {
	for _, want := range r.Classes {
		found := false
		for _, have := range classes {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ColorDef is a direct color definition.
type ColorDef struct {
	Key   symbol.Symbol
	Color backend.Color
}

// AttributeDef is a direct attribute definition.
type AttributeDef struct {
	Key   symbol.Symbol
	Attrs backend.AttrMask
}

// Palette is a set of direct definitions and alias rules. The zero value
// is an empty palette. Copies share storage, use Clone for an independent
// palette.
type Palette struct {
	colors     map[symbol.Symbol]backend.Color
	attributes map[symbol.Symbol]backend.AttrMask
	rules      []RuleDef
}

// New returns an empty palette.
func New() Palette {
	return Palette{}
}

// IsNull reports whether the palette holds no definitions and no rules.
func (p *Palette) IsNull() bool {
	return p == nil || (len(p.colors) == 0 && len(p.attributes) == 0 && len(p.rules) == 0)
}

// Clone returns a deep copy.
func (p *Palette) Clone() Palette {
	if p == nil {
		return Palette{}
	}
	out := Palette{}
	if len(p.colors) > 0 {
		out.colors = make(map[symbol.Symbol]backend.Color, len(p.colors))
		for k, v := range p.colors {
			out.colors[k] = v
		}
	}
	if len(p.attributes) > 0 {
		out.attributes = make(map[symbol.Symbol]backend.AttrMask, len(p.attributes))
		for k, v := range p.attributes {
			out.attributes[k] = v
		}
	}
	if len(p.rules) > 0 {
		out.rules = make([]RuleDef, len(p.rules))
		for i, r := range p.rules {
			out.rules[i] = RuleDef{
				Classes:  append([]string(nil), r.Classes...),
				Commands: append([]RuleCmd(nil), r.Commands...),
			}
		}
	}
	return out
}

// SetColors adds or replaces color definitions.
func (p *Palette) SetColors(defs ...ColorDef) {
	if p.colors == nil {
		p.colors = make(map[symbol.Symbol]backend.Color, len(defs))
	}
	for _, d := range defs {
		p.colors[d.Key] = d.Color
	}
}

// SetColor defines a single color by key name.
func (p *Palette) SetColor(key string, c backend.Color) {
	p.SetColors(ColorDef{Key: symbol.Intern(key), Color: c})
}

// SetAttributes adds or replaces attribute definitions.
func (p *Palette) SetAttributes(defs ...AttributeDef) {
	if p.attributes == nil {
		p.attributes = make(map[symbol.Symbol]backend.AttrMask, len(defs))
	}
	for _, d := range defs {
		p.attributes[d.Key] = d.Attrs
	}
}

// SetAttribute defines a single attribute mask by key name.
func (p *Palette) SetAttribute(key string, a backend.AttrMask) {
	p.SetAttributes(AttributeDef{Key: symbol.Intern(key), Attrs: a})
}

// AddRules appends rules after the existing ones.
func (p *Palette) AddRules(rules ...RuleDef) {
	for _, r := range rules {
		p.rules = append(p.rules, RuleDef{
			Classes:  append([]string(nil), r.Classes...),
			Commands: append([]RuleCmd(nil), r.Commands...),
		})
	}
}

// Rules returns the rules in declaration order. The result must not be
// modified.
func (p *Palette) Rules() []RuleDef {
	if p == nil {
		return nil
	}
	return p.rules
}

// Color returns the direct definition for key, ignoring rules.
func (p *Palette) Color(key symbol.Symbol) (backend.Color, bool) {
	if p == nil {
		return 0, false
	}
	c, ok := p.colors[key]
	return c, ok
}

// Attributes returns the direct attribute definition for key, ignoring rules.
func (p *Palette) Attributes(key symbol.Symbol) (backend.AttrMask, bool) {
	if p == nil {
		return 0, false
	}
	a, ok := p.attributes[key]
	return a, ok
}

// ColorKeys lists the keys of direct color definitions, sorted by name.
func (p *Palette) ColorKeys() []string {
	if p == nil {
		return nil
	}
	return sortedNames(p.colors)
}

// AttributeKeys lists the keys of direct attribute definitions, sorted by name.
func (p *Palette) AttributeKeys() []string {
	if p == nil {
		return nil
	}
	return sortedNames(p.attributes)
}

func sortedNames[V any](m map[symbol.Symbol]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k.String())
	}
	sort.Strings(names)
	return names
}

func colorDefs(p *Palette) map[symbol.Symbol]backend.Color {
	return p.colors
}

func attributeDefs(p *Palette) map[symbol.Symbol]backend.AttrMask {
	return p.attributes
}

// View is a read-only handle on a palette. Tree nodes hand it to the
// resolver so lookups can not change a palette behind a cache.
type View struct {
	p *Palette
}

// ViewOf returns a view of p. A nil p gives the zero View.
func ViewOf(p *Palette) View {
	return View{p: p}
}

// IsNull reports whether the viewed palette is absent or empty.
func (v View) IsNull() bool {
	return v.p.IsNull()
}

// Color returns the direct definition for key.
func (v View) Color(key symbol.Symbol) (backend.Color, bool) {
	return v.p.Color(key)
}

// Attributes returns the direct attribute definition for key.
func (v View) Attributes(key symbol.Symbol) (backend.AttrMask, bool) {
	return v.p.Attributes(key)
}

// Clone returns an independent copy of the viewed palette.
func (v View) Clone() Palette {
	return v.p.Clone()
}
