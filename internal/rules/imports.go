package rules

import (
	"fmt"
	"sort"
	"strings"

	"restyle/internal/ast"
	"restyle/internal/diag"
	"restyle/internal/source"
)

// moduleRefs merges multiple import declarations (and, separately keyed,
// re-export declarations) that reference the same module into one canonical
// declaration. State is accumulated during the item pass and emitted once at
// Finish; it never outlives the file.
type moduleRefs struct {
	settings Settings
	order    []groupKey
	groups   map[groupKey]*refGroup
}

type groupKey struct {
	module string
	export bool
}

type refGroup struct {
	entries []refEntry
}

type refEntry struct {
	span source.Span
	ref  *ast.ModuleRefItem
}

func newModuleRefs(s Settings) *moduleRefs {
	return &moduleRefs{settings: s, groups: make(map[groupKey]*refGroup)}
}

func (*moduleRefs) Code() diag.Code { return diag.StyleSplitModuleReferences }
func (*moduleRefs) Name() string    { return "merge-module-references" }

func (r *moduleRefs) CheckItem(ctx *Context, id ast.ItemID, item *ast.Item) {
	ref, ok := ctx.Arenas.Items.ModuleRef(id)
	if !ok {
		return
	}
	key := groupKey{module: ctx.Name(ref.Module), export: ref.IsExport}
	group := r.groups[key]
	if group == nil {
		group = &refGroup{}
		r.groups[key] = group
		r.order = append(r.order, key)
	}
	group.entries = append(group.entries, refEntry{span: item.Span, ref: ref})
}

func (r *moduleRefs) Finish(ctx *Context) {
	for _, key := range r.order {
		group := r.groups[key]
		if len(group.entries) < 2 {
			continue
		}
		r.emitGroup(ctx, key, group)
	}
	r.order = nil
	r.groups = nil
}

// binding is one classified named binding.
type binding struct {
	source   string
	alias    string
	typeOnly bool
}

func (r *moduleRefs) emitGroup(ctx *Context, key groupKey, group *refGroup) {
	first := group.entries[0]
	verb := "imported"
	if key.export {
		verb = "re-exported"
	}
	msg := fmt.Sprintf("%q is %s by %d separate declarations", key.module, verb, len(group.entries))

	b := diag.ReportWarning(ctx.Reporter, r.Code(), first.span, msg)
	for _, e := range group.entries[1:] {
		b.WithNote(e.span, "also declared here")
	}

	if reason, ok := r.mergeBlocked(group, key.export); !ok {
		b.WithNote(first.span, "not merged automatically: "+reason)
		b.Emit()
		return
	}

	rendered := r.renderCanonical(ctx, key, group, first.ref.ModuleText)

	edits := []diag.TextEdit{{
		Span:    first.span,
		NewText: rendered,
		OldText: ctx.Text(first.span),
	}}
	for _, e := range group.entries[1:] {
		sp := deletionSpan(ctx, e.span)
		edits = append(edits, diag.TextEdit{
			Span:    sp,
			NewText: "",
			OldText: ctx.Text(sp),
		})
	}

	b.WithFix("merge into one declaration", edits...).Emit()
}

// mergeBlocked reports declaration shapes with no safe rewrite.
func (r *moduleRefs) mergeBlocked(group *refGroup, export bool) (string, bool) {
	nsAliases := make(map[source.StringID]bool)
	for _, e := range group.entries {
		if e.ref.HasStar {
			return "group contains a star re-export", false
		}
		for _, spec := range e.ref.Specs {
			if spec.TypeOnly && spec.Kind != ast.SpecNamed {
				return "group contains a type-only default or namespace binding", false
			}
			if spec.Kind == ast.SpecNamespace {
				if export {
					return "group contains a namespace re-export", false
				}
				nsAliases[spec.Alias] = true
			}
		}
	}
	if len(nsAliases) > 1 {
		return "group binds more than one namespace alias", false
	}
	return "", true
}

// renderCanonical classifies, dedups, sorts and renders the merged
// declaration. The module text is the first declaration's, verbatim.
func (r *moduleRefs) renderCanonical(ctx *Context, key groupKey, group *refGroup, moduleText string) string {
	var defaultAlias, nsAlias string
	var hasDefault, hasNS bool
	var named []binding
	seen := make(map[string]bool)

	addNamed := func(src, alias string, typeOnly bool) {
		k := src + "\x00" + alias + "\x00"
		if typeOnly {
			k += "t"
		}
		if seen[k] {
			return
		}
		seen[k] = true
		named = append(named, binding{source: src, alias: alias, typeOnly: typeOnly})
	}

	for _, e := range group.entries {
		for _, spec := range e.ref.Specs {
			switch spec.Kind {
			case ast.SpecDefault:
				alias := ctx.Name(spec.Alias)
				switch {
				case !hasDefault:
					hasDefault = true
					defaultAlias = alias
				case alias != defaultAlias:
					// a second distinct default binding survives as
					// `default as alias` in the braced group
					addNamed("default", alias, false)
				}
			case ast.SpecNamespace:
				if !hasNS {
					hasNS = true
					nsAlias = ctx.Name(spec.Alias)
				}
			case ast.SpecNamed:
				addNamed(ctx.Name(spec.Name), ctx.Name(spec.Alias), spec.TypeOnly)
			}
		}
	}

	// value bindings before type-only, then by source name
	sort.SliceStable(named, func(i, j int) bool {
		if named[i].typeOnly != named[j].typeOnly {
			return !named[i].typeOnly
		}
		if named[i].source != named[j].source {
			return named[i].source < named[j].source
		}
		return named[i].alias < named[j].alias
	})

	braced := renderNamed(named)

	if key.export {
		return "export {" + braced + "} from " + moduleText + ";"
	}

	var parts []string
	if hasDefault {
		parts = append(parts, defaultAlias)
	}
	if hasNS {
		parts = append(parts, "* as "+nsAlias)
	}
	if len(named) > 0 {
		parts = append(parts, "{"+braced+"}")
	}
	if len(parts) == 0 {
		// the group held only side-effect imports
		return "import " + moduleText + ";"
	}
	return "import " + strings.Join(parts, ", ") + " from " + moduleText + ";"
}

func renderNamed(named []binding) string {
	parts := make([]string, 0, len(named))
	for _, bnd := range named {
		s := bnd.source
		if bnd.typeOnly {
			s = "type " + s
		}
		if bnd.alias != bnd.source {
			s += " as " + bnd.alias
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

// deletionSpan widens a statement span to its whole line when the statement
// sits alone on it, so the delete does not leave a blank line behind.
func deletionSpan(ctx *Context, sp source.Span) source.Span {
	content := ctx.File.Content
	start := int(sp.Start)
	end := int(sp.End)

	lineStart := start
	for lineStart > 0 && content[lineStart-1] != '\n' {
		lineStart--
	}
	if !whitespaceOnly(string(content[lineStart:start])) {
		return sp
	}

	e := end
	for e < len(content) && (content[e] == ' ' || content[e] == '\t' || content[e] == '\r') {
		e++
	}
	if e < len(content) && content[e] == '\n' {
		e++
	} else if e != len(content) {
		return sp
	}
	return source.Span{File: sp.File, Start: uint32(lineStart), End: uint32(e)}
}
