package rules

import (
	"strconv"
	"strings"

	"restyle/internal/ast"
	"restyle/internal/diag"
	"restyle/internal/source"
)

// classHelper rewrites a className template literal with interpolations into
// a call of the canonical class-combining helper, inserting the helper's
// import when the file lacks it.
type classHelper struct {
	settings Settings

	helperImported bool
	hasImports     bool
	lastImportEnd  uint32
	fileStart      uint32
	seenItem       bool
	importPlanned  bool
}

func newClassHelper(s Settings) *classHelper { return &classHelper{settings: s} }

func (*classHelper) Code() diag.Code { return diag.StyleTemplateClassName }
func (*classHelper) Name() string    { return "prefer-class-helper" }

func (r *classHelper) CheckItem(ctx *Context, id ast.ItemID, item *ast.Item) {
	if !r.seenItem {
		r.seenItem = true
		r.fileStart = item.Span.Start
	}
	ref, ok := ctx.Arenas.Items.ModuleRef(id)
	if !ok || ref.IsExport {
		return
	}
	r.hasImports = true
	r.lastImportEnd = item.Span.End
	if ctx.Name(ref.Module) != r.settings.ClassHelperSource {
		return
	}
	for _, spec := range ref.Specs {
		if ctx.Name(spec.Alias) == r.settings.ClassHelper {
			r.helperImported = true
		}
	}
}

func (r *classHelper) Finish(*Context) {}

func (r *classHelper) CheckElement(ctx *Context, id ast.NodeID, el *ast.Element) {
	for _, attrID := range el.Attrs {
		attr := ctx.Arenas.Nodes.Attr(attrID)
		if attr == nil || attr.Kind != ast.AttrValueExpr {
			continue
		}
		if ctx.Name(attr.Name) != "className" {
			continue
		}
		tpl, ok := ctx.Arenas.Exprs.Template(attr.Value)
		if !ok || tpl.ExprCount() == 0 {
			continue
		}
		r.report(ctx, attr, tpl)
	}
}

func (r *classHelper) report(ctx *Context, attr *ast.Attr, tpl *ast.TemplateExpr) {
	args := make([]string, 0, len(tpl.Chunks))
	for _, chunk := range tpl.Chunks {
		text := ctx.Text(chunk.Span)
		switch chunk.Kind {
		case ast.ChunkLiteral:
			lit := strings.TrimSpace(text)
			if lit == "" {
				continue
			}
			args = append(args, strconv.Quote(lit))
		case ast.ChunkExpr:
			args = append(args, strings.TrimSpace(text))
		}
	}

	call := r.settings.ClassHelper + "(" + strings.Join(args, ", ") + ")"
	edits := []diag.TextEdit{{
		Span:    attr.ValueSpan,
		NewText: "{" + call + "}",
		OldText: ctx.Text(attr.ValueSpan),
	}}

	if !r.helperImported && !r.importPlanned {
		r.importPlanned = true
		edits = append(edits, r.importEdit(ctx))
	}

	diag.ReportWarning(ctx.Reporter, r.Code(), attr.ValueSpan,
		"template className should use "+r.settings.ClassHelper+"(...)").
		WithFix("rewrite with "+r.settings.ClassHelper, edits...).
		Emit()
}

// importEdit inserts the helper import after the last top-level import, or
// before the first statement when there are none.
func (r *classHelper) importEdit(ctx *Context) diag.TextEdit {
	line := "import {" + r.settings.ClassHelper + "} from " +
		strconv.Quote(r.settings.ClassHelperSource) + ";"

	if r.hasImports {
		at := r.lastImportEnd
		return diag.TextEdit{
			Span:    source.Span{File: ctx.File.ID, Start: at, End: at},
			NewText: "\n" + line,
		}
	}
	at := r.fileStart
	return diag.TextEdit{
		Span:    source.Span{File: ctx.File.ID, Start: at, End: at},
		NewText: line + "\n\n",
	}
}
