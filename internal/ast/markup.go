package ast

import (
	"restyle/internal/source"
)

// NodeKind classifies markup-tree nodes.
type NodeKind uint8

const (
	NodeInvalid NodeKind = iota
	// NodeElement is a tag-like node, including fragments.
	NodeElement
	// NodeText is a raw text run between markup children.
	NodeText
	// NodeExprContainer is `{ expr }` in child position.
	NodeExprContainer
)

func (k NodeKind) String() string {
	switch k {
	case NodeElement:
		return "Element"
	case NodeText:
		return "Text"
	case NodeExprContainer:
		return "ExprContainer"
	}
	return "Invalid"
}

// Node is one markup-tree node. Span covers the node's full source extent.
type Node struct {
	Kind    NodeKind
	Span    source.Span
	Payload PayloadID
}

// Element is the payload of a NodeElement.
type Element struct {
	Name        source.StringID // NoStringID for fragments (<>...</>)
	NameSpan    source.Span
	Attrs       []AttrID
	Children    []NodeID
	SelfClosing bool
	// OpenSpan covers the opening tag, CloseSpan the closing tag.
	// For self-closing elements CloseSpan equals OpenSpan.
	OpenSpan  source.Span
	CloseSpan source.Span
}

// Fragment reports whether the element is an unnamed fragment.
func (e *Element) Fragment() bool { return e.Name == source.NoStringID }

// ExprContainer is the payload of a NodeExprContainer.
// Expr is NoExprID when the braces hold nothing significant (empty or a
// comment), which makes the container whitespace-insignificant for the
// spacing predicates.
type ExprContainer struct {
	Body ExprID
	// Roots lists markup elements found inside a raw Body (for example the
	// element in `{cond && <Badge />}`), so tree rules still reach them.
	Roots []NodeID
}

// AttrValueKind classifies attribute values.
type AttrValueKind uint8

const (
	// AttrValueNone is a bare attribute: `disabled`.
	AttrValueNone AttrValueKind = iota
	// AttrValueString is `name="literal"`.
	AttrValueString
	// AttrValueExpr is `name={expr}`.
	AttrValueExpr
	// AttrValueSpread is `{...expr}` in attribute position.
	AttrValueSpread
)

// Attr is one attribute of an element.
// Span covers the whole attribute including its value.
type Attr struct {
	Name     source.StringID // NoStringID for spreads
	NameSpan source.Span
	Span     source.Span
	Kind     AttrValueKind
	// StrSpan is the string literal span (quotes included) for
	// AttrValueString.
	StrSpan source.Span
	// Value is the contained expression for AttrValueExpr/AttrValueSpread.
	Value ExprID
	// ValueSpan covers `{...}` or the string literal.
	ValueSpan source.Span
}

type Nodes struct {
	Arena      *Arena[Node]
	Elements   *Arena[Element]
	Containers *Arena[ExprContainer]
	Attrs      *Arena[Attr]
}

func NewNodes(capHint uint) *Nodes {
	return &Nodes{
		Arena:      NewArena[Node](capHint),
		Elements:   NewArena[Element](capHint / 2),
		Containers: NewArena[ExprContainer](capHint / 2),
		Attrs:      NewArena[Attr](capHint),
	}
}

func (n *Nodes) Get(id NodeID) *Node {
	return n.Arena.Get(uint32(id))
}

// NewElement allocates a NodeElement and returns its ID.
func (n *Nodes) NewElement(sp source.Span, el Element) NodeID {
	el.Attrs = append([]AttrID(nil), el.Attrs...)
	el.Children = append([]NodeID(nil), el.Children...)
	payload := n.Elements.Allocate(el)
	return NodeID(n.Arena.Allocate(Node{Kind: NodeElement, Span: sp, Payload: PayloadID(payload)}))
}

// NewText allocates a NodeText spanning sp.
func (n *Nodes) NewText(sp source.Span) NodeID {
	return NodeID(n.Arena.Allocate(Node{Kind: NodeText, Span: sp}))
}

// NewExprContainer allocates a NodeExprContainer.
func (n *Nodes) NewExprContainer(sp source.Span, body ExprID, roots []NodeID) NodeID {
	payload := n.Containers.Allocate(ExprContainer{
		Body:  body,
		Roots: append([]NodeID(nil), roots...),
	})
	return NodeID(n.Arena.Allocate(Node{Kind: NodeExprContainer, Span: sp, Payload: PayloadID(payload)}))
}

// NewAttr allocates an attribute and returns its ID.
func (n *Nodes) NewAttr(a Attr) AttrID {
	return AttrID(n.Attrs.Allocate(a))
}

// Element returns the Element payload for id, or nil/false.
func (n *Nodes) Element(id NodeID) (*Element, bool) {
	node := n.Arena.Get(uint32(id))
	if node == nil || node.Kind != NodeElement {
		return nil, false
	}
	return n.Elements.Get(uint32(node.Payload)), true
}

// Container returns the ExprContainer payload for id, or nil/false.
func (n *Nodes) Container(id NodeID) (*ExprContainer, bool) {
	node := n.Arena.Get(uint32(id))
	if node == nil || node.Kind != NodeExprContainer {
		return nil, false
	}
	return n.Containers.Get(uint32(node.Payload)), true
}

// Attr returns the attribute for id, or nil.
func (n *Nodes) Attr(id AttrID) *Attr {
	return n.Attrs.Get(uint32(id))
}
