package ast

import (
	"restyle/internal/source"
)

// ExprKind classifies expressions the parser models precisely. Everything
// else is ExprRaw: a balanced span re-emitted verbatim by rewrites.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprRaw
	ExprString
	ExprNumber
	ExprBool
	ExprTemplate
	ExprArrow
	// ExprElement wraps a markup tree in expression position.
	ExprElement
)

func (k ExprKind) String() string {
	switch k {
	case ExprRaw:
		return "Raw"
	case ExprString:
		return "String"
	case ExprNumber:
		return "Number"
	case ExprBool:
		return "Bool"
	case ExprTemplate:
		return "Template"
	case ExprArrow:
		return "Arrow"
	case ExprElement:
		return "Element"
	}
	return "Invalid"
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// TemplateChunkKind tags template-literal parts.
type TemplateChunkKind uint8

const (
	// ChunkLiteral is a raw text part between interpolations.
	ChunkLiteral TemplateChunkKind = iota
	// ChunkExpr is the inside of one ${...} (braces excluded).
	ChunkExpr
)

// TemplateChunk is one part of a template literal, in source order.
type TemplateChunk struct {
	Kind TemplateChunkKind
	Span source.Span
}

// TemplateExpr is the payload of an ExprTemplate.
type TemplateExpr struct {
	Chunks []TemplateChunk
}

// ExprCount returns the number of interpolation chunks.
func (t *TemplateExpr) ExprCount() int {
	n := 0
	for _, c := range t.Chunks {
		if c.Kind == ChunkExpr {
			n++
		}
	}
	return n
}

// ArrowParam is one parameter of an arrow function.
type ArrowParam struct {
	Span     source.Span // full parameter including annotation and default
	NameSpan source.Span
	Typed    bool // carries a `:` type annotation
}

// ArrowBodyKind tags arrow function bodies.
type ArrowBodyKind uint8

const (
	// ArrowBodyExpr is `=> expr`.
	ArrowBodyExpr ArrowBodyKind = iota
	// ArrowBodyBlock is `=> { ... }`.
	ArrowBodyBlock
)

// ArrowStmt is one statement inside an arrow block body.
type ArrowStmt struct {
	Span source.Span
	// BareExpr is true for a plain expression statement: no keyword, no
	// declaration, optionally terminated by `;`.
	BareExpr bool
	// ExprSpan is the statement text without the trailing terminator.
	ExprSpan source.Span
}

// ArrowExpr is the payload of an ExprArrow.
type ArrowExpr struct {
	Async bool
	// Parenthesized is true when the parameter list was written in parens.
	Parenthesized bool
	Params        []ArrowParam
	ParamsSpan    source.Span
	BodyKind      ArrowBodyKind
	BodySpan      source.Span
	// BlockStmts holds the block body's statements (ArrowBodyBlock only).
	BlockStmts []ArrowStmt
}

type Exprs struct {
	Arena     *Arena[Expr]
	Templates *Arena[TemplateExpr]
	Arrows    *Arena[ArrowExpr]
	// ElementNodes maps ExprElement payloads to markup node IDs.
	ElementNodes *Arena[NodeID]
}

func NewExprs(capHint uint) *Exprs {
	return &Exprs{
		Arena:        NewArena[Expr](capHint),
		Templates:    NewArena[TemplateExpr](capHint / 4),
		Arrows:       NewArena[ArrowExpr](capHint / 4),
		ElementNodes: NewArena[NodeID](capHint / 4),
	}
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewSimple allocates an expression without a payload (raw, literals).
func (e *Exprs) NewSimple(kind ExprKind, sp source.Span) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: sp}))
}

// NewTemplate allocates an ExprTemplate.
func (e *Exprs) NewTemplate(sp source.Span, chunks []TemplateChunk) ExprID {
	payload := e.Templates.Allocate(TemplateExpr{Chunks: append([]TemplateChunk(nil), chunks...)})
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprTemplate, Span: sp, Payload: PayloadID(payload)}))
}

// NewArrow allocates an ExprArrow.
func (e *Exprs) NewArrow(sp source.Span, arrow ArrowExpr) ExprID {
	arrow.Params = append([]ArrowParam(nil), arrow.Params...)
	arrow.BlockStmts = append([]ArrowStmt(nil), arrow.BlockStmts...)
	payload := e.Arrows.Allocate(arrow)
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprArrow, Span: sp, Payload: PayloadID(payload)}))
}

// NewElement allocates an ExprElement wrapping node.
func (e *Exprs) NewElement(sp source.Span, node NodeID) ExprID {
	payload := e.ElementNodes.Allocate(node)
	return ExprID(e.Arena.Allocate(Expr{Kind: ExprElement, Span: sp, Payload: PayloadID(payload)}))
}

// Template returns the TemplateExpr payload, or nil/false.
func (e *Exprs) Template(id ExprID) (*TemplateExpr, bool) {
	expr := e.Arena.Get(uint32(id))
	if expr == nil || expr.Kind != ExprTemplate {
		return nil, false
	}
	return e.Templates.Get(uint32(expr.Payload)), true
}

// Arrow returns the ArrowExpr payload, or nil/false.
func (e *Exprs) Arrow(id ExprID) (*ArrowExpr, bool) {
	expr := e.Arena.Get(uint32(id))
	if expr == nil || expr.Kind != ExprArrow {
		return nil, false
	}
	return e.Arrows.Get(uint32(expr.Payload)), true
}

// ElementNode returns the markup node of an ExprElement, or NoNodeID/false.
func (e *Exprs) ElementNode(id ExprID) (NodeID, bool) {
	expr := e.Arena.Get(uint32(id))
	if expr == nil || expr.Kind != ExprElement {
		return NoNodeID, false
	}
	node := e.ElementNodes.Get(uint32(expr.Payload))
	if node == nil {
		return NoNodeID, false
	}
	return *node, true
}
