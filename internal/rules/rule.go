package rules

import (
	"restyle/internal/ast"
	"restyle/internal/diag"
	"restyle/internal/source"
)

// Context carries the per-file state every rule sees. Rules hold only
// transient references into it; nothing here survives the file pass.
type Context struct {
	File     *source.File
	Arenas   *ast.Builder
	Reporter diag.Reporter
	Settings Settings
}

// Text returns the source slice for sp.
func (c *Context) Text(sp source.Span) string {
	return c.File.Text(sp)
}

// LineOf returns the 1-based line holding byte offset off.
func (c *Context) LineOf(off uint32) uint32 {
	return c.File.LineOf(off)
}

// Name resolves an interned string.
func (c *Context) Name(id source.StringID) string {
	if id == source.NoStringID {
		return ""
	}
	return c.Arenas.Strings.MustLookup(id)
}

// Rule is one style check. Instances are created fresh per file, so
// accumulator state lives in the rule value and never leaks across files.
type Rule interface {
	Code() diag.Code
	Name() string
}

// ElementRule is called for every markup element in pre-order document order.
type ElementRule interface {
	Rule
	CheckElement(ctx *Context, id ast.NodeID, el *ast.Element)
}

// ArrowRule is called for every arrow function collected in the file.
type ArrowRule interface {
	Rule
	CheckArrow(ctx *Context, id ast.ExprID, arrow *ast.ArrowExpr)
}

// ItemRule is called for every top-level item before the markup walk, and
// Finish exactly once after the whole file has been traversed.
type ItemRule interface {
	Rule
	CheckItem(ctx *Context, id ast.ItemID, item *ast.Item)
	Finish(ctx *Context)
}

// Settings is the per-run rule configuration.
type Settings struct {
	// Disabled lists rule names to skip.
	Disabled []string
	// DefaultProps maps attribute names to their redundant default literal.
	DefaultProps map[string]string
	// ClassHelper and ClassHelperSource name the canonical class-combining
	// helper and the module it is imported from.
	ClassHelper       string
	ClassHelperSource string
	// SpacingIndent is the literal indentation used in the blank-line
	// separator inserted between siblings. It is not derived from context.
	SpacingIndent string
}

// DefaultSettings returns the built-in catalogs.
func DefaultSettings() Settings {
	return Settings{
		DefaultProps: map[string]string{
			"variant": "default",
			"size":    "default",
		},
		ClassHelper:       "cn",
		ClassHelperSource: "@/lib/utils",
		SpacingIndent:     "        ",
	}
}

func (s Settings) disabled(name string) bool {
	for _, d := range s.Disabled {
		if d == name {
			return true
		}
	}
	return false
}

// All returns fresh instances of every enabled rule for one file pass.
func All(s Settings) []Rule {
	candidates := []Rule{
		newSiblingSpacing(s),
		newRedundantWrapper(s),
		newDefaultProps(s),
		newExpressionArrow(s),
		newModuleRefs(s),
		newClassHelper(s),
	}
	out := candidates[:0]
	for _, r := range candidates {
		if !s.disabled(r.Name()) {
			out = append(out, r)
		}
	}
	return out
}

// Names lists every known rule name with its code, for the rules command.
func Names() []struct {
	Name string
	Code diag.Code
} {
	s := DefaultSettings()
	all := []Rule{
		newSiblingSpacing(s),
		newRedundantWrapper(s),
		newDefaultProps(s),
		newExpressionArrow(s),
		newModuleRefs(s),
		newClassHelper(s),
	}
	out := make([]struct {
		Name string
		Code diag.Code
	}, 0, len(all))
	for _, r := range all {
		out = append(out, struct {
			Name string
			Code diag.Code
		}{r.Name(), r.Code()})
	}
	return out
}
