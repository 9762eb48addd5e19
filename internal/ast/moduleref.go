package ast

import (
	"restyle/internal/source"
)

// SpecKind classifies one imported or re-exported binding.
type SpecKind uint8

const (
	// SpecDefault is a default binding: `import Name from "m"`.
	SpecDefault SpecKind = iota
	// SpecNamespace is a namespace binding: `* as ns`.
	SpecNamespace
	// SpecNamed is a braced binding: `{ name }` or `{ name as alias }`.
	SpecNamed
)

func (k SpecKind) String() string {
	switch k {
	case SpecDefault:
		return "default"
	case SpecNamespace:
		return "namespace"
	case SpecNamed:
		return "named"
	}
	return "invalid"
}

// Specifier is one binding of a module-reference declaration.
// Alias equals Name when no `as` clause was written.
type Specifier struct {
	Kind     SpecKind
	Name     source.StringID // source name; NoStringID for `*`
	Alias    source.StringID
	TypeOnly bool // erased at runtime; `type` qualifier inline or on the decl
	Span     source.Span
}

// ModuleRefItem is an import declaration or a re-export declaration with a
// module clause. The module string is kept verbatim (quotes included) so
// rewrites reuse the original spelling.
type ModuleRefItem struct {
	Module     source.StringID // unquoted module reference
	ModuleText string          // verbatim literal, e.g. `"./card"`
	ModuleSpan source.Span
	Specs      []Specifier
	IsExport   bool // re-export (`export ... from "m"`)
	HasStar    bool // bare `export * from "m"` (no alias)
	SideEffect bool // `import "m";` with no clause
}

// ModuleRef returns the payload for id, or nil/false for other kinds.
func (i *Items) ModuleRef(id ItemID) (*ModuleRefItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemModuleRef {
		return nil, false
	}
	return i.ModuleRefs.Get(uint32(item.Payload)), true
}

// NewModuleRef creates an import/re-export item.
func (i *Items) NewModuleRef(sp source.Span, ref ModuleRefItem) ItemID {
	ref.Specs = append([]Specifier(nil), ref.Specs...)
	payload := i.ModuleRefs.Allocate(ref)
	return i.New(ItemModuleRef, sp, PayloadID(payload))
}
