package rules

import (
	"strings"

	"restyle/internal/ast"
	"restyle/internal/diag"
)

// expressionArrow rewrites an arrow whose block body holds exactly one bare
// expression statement into the expression-bodied form.
type expressionArrow struct {
	settings Settings
}

func newExpressionArrow(s Settings) *expressionArrow { return &expressionArrow{settings: s} }

func (*expressionArrow) Code() diag.Code { return diag.StyleVerboseArrowBody }
func (*expressionArrow) Name() string    { return "prefer-expression-arrow" }

func (r *expressionArrow) CheckArrow(ctx *Context, id ast.ExprID, arrow *ast.ArrowExpr) {
	if arrow.BodyKind != ast.ArrowBodyBlock || len(arrow.BlockStmts) != 1 {
		return
	}
	stmt := arrow.BlockStmts[0]
	if !stmt.BareExpr || stmt.ExprSpan.Empty() {
		return
	}

	expr := ctx.Arenas.Exprs.Get(id)
	if expr == nil {
		return
	}
	rendered := renderParams(ctx, arrow) + " => " + ctx.Text(stmt.ExprSpan)
	if arrow.Async {
		rendered = "async " + rendered
	}

	diag.ReportWarning(ctx.Reporter, r.Code(), arrow.BodySpan,
		"single-statement body can be an expression body").
		WithFix("use an expression body", diag.TextEdit{
			Span:    expr.Span,
			NewText: rendered,
			OldText: ctx.Text(expr.Span),
		}).
		Emit()
}

// renderParams renders the parameter list: () for zero parameters, a bare
// identifier for a single untyped one, a parenthesized comma list otherwise.
func renderParams(ctx *Context, arrow *ast.ArrowExpr) string {
	switch {
	case len(arrow.Params) == 0:
		return "()"
	case len(arrow.Params) == 1 && !arrow.Params[0].Typed:
		return ctx.Text(arrow.Params[0].NameSpan)
	default:
		parts := make([]string, 0, len(arrow.Params))
		for _, param := range arrow.Params {
			parts = append(parts, ctx.Text(param.Span))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
}
