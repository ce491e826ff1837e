package palette

import (
	"sort"

	"github.com/odvcencio/tuikit/pkg/symbol"
	"github.com/odvcencio/tuikit/pkg/ui/backend"
)

// Node is the read-only view of a widget tree the resolver walks.
// ParentNode must return an untyped nil at the root.
type Node interface {
	ParentNode() Node
	PaletteClasses() []string
	// PaletteView is the zero View for nodes without their own palette.
	PaletteView() View
}

// FallbackColor is returned for keys no palette defines.
var FallbackColor = backend.ColorRGB(0xff, 0, 0)

// FallbackAttributes is returned for attribute keys no palette defines.
const FallbackAttributes backend.AttrMask = 0

// ResolveColor resolves key for target, walking the palettes and rules of
// target and all of its ancestors.
func ResolveColor(target Node, key symbol.Symbol) backend.Color {
	if c, ok := resolveDefs(target, colorDefs)[key]; ok {
		return c
	}
	return FallbackColor
}

// ResolveAttributes resolves an attribute key like ResolveColor.
func ResolveAttributes(target Node, key symbol.Symbol) backend.AttrMask {
	if a, ok := resolveDefs(target, attributeDefs)[key]; ok {
		return a
	}
	return FallbackAttributes
}

// ResolveAllColors returns every color key visible at target.
func ResolveAllColors(target Node) map[symbol.Symbol]backend.Color {
	return resolveDefs(target, colorDefs)
}

// resolveDefs evaluates the cascade from the root down to target.
//
// At every level the rules collected so far that match the level's classes
// run grouped by class count, fewest classes first, with ties kept in
// declaration order. A command copies an already defined source into its
// target. Local commands only run at target itself. The level's own
// definitions are merged afterwards and win over anything a rule wrote.
func resolveDefs[V any](target Node, defsOf func(*Palette) map[symbol.Symbol]V) map[symbol.Symbol]V {
	var chain []Node
	for n := target; n != nil; n = n.ParentNode() {
		chain = append(chain, n)
	}

	defs := make(map[symbol.Symbol]V)
	var rules []*RuleDef
	var matching []*RuleDef

	for i := len(chain) - 1; i >= 0; i-- {
		w := chain[i]
		p := w.PaletteView().p
		if p != nil {
			for j := range p.rules {
				rules = append(rules, &p.rules[j])
			}
		}

		classes := w.PaletteClasses()
		matching = matching[:0]
		for _, r := range rules {
			if r.Matches(classes) {
				matching = append(matching, r)
			}
		}
		sort.SliceStable(matching, func(a, b int) bool {
			return len(matching[a].Classes) < len(matching[b].Classes)
		})

		isTarget := w == target
		for _, r := range matching {
			for _, cmd := range r.Commands {
				if cmd.Kind != Publish && !isTarget {
					continue
				}
				if v, ok := defs[cmd.Source]; ok {
					defs[cmd.Target] = v
				}
			}
		}

		if p != nil {
			for k, v := range defsOf(p) {
				defs[k] = v
			}
		}
	}
	return defs
}
