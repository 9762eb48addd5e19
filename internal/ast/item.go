package ast

import (
	"restyle/internal/source"
)

// ItemKind classifies top-level items.
type ItemKind uint8

const (
	ItemInvalid ItemKind = iota
	// ItemModuleRef is an import declaration or a re-export declaration
	// with a module clause.
	ItemModuleRef
	// ItemStmt is any other top-level statement, scanned as a balanced
	// raw span. Markup trees found inside are parsed precisely and
	// recorded as roots on the payload.
	ItemStmt
)

func (k ItemKind) String() string {
	switch k {
	case ItemModuleRef:
		return "ModuleRef"
	case ItemStmt:
		return "Stmt"
	}
	return "Invalid"
}

// Item is one top-level declaration or statement.
// Span covers the full statement including its trailing terminator.
type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

// RawStmt is the payload of an ItemStmt.
type RawStmt struct {
	// MarkupRoots lists top-level markup elements found inside the
	// statement, in document order.
	MarkupRoots []NodeID
	// Exprs lists structured expressions (arrows, templates) found at any
	// depth inside the statement, in document order.
	Exprs []ExprID
}

type Items struct {
	Arena      *Arena[Item]
	ModuleRefs *Arena[ModuleRefItem]
	Stmts      *Arena[RawStmt]
}

func NewItems(capHint uint) *Items {
	return &Items{
		Arena:      NewArena[Item](capHint),
		ModuleRefs: NewArena[ModuleRefItem](capHint / 4),
		Stmts:      NewArena[RawStmt](capHint),
	}
}

func (i *Items) New(kind ItemKind, sp source.Span, payload PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{Kind: kind, Span: sp, Payload: payload}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

// NewStmt creates a raw-statement item.
func (i *Items) NewStmt(sp source.Span, roots []NodeID, exprs []ExprID) ItemID {
	payload := i.Stmts.Allocate(RawStmt{
		MarkupRoots: append([]NodeID(nil), roots...),
		Exprs:       append([]ExprID(nil), exprs...),
	})
	return i.New(ItemStmt, sp, PayloadID(payload))
}

// Stmt returns the RawStmt payload for id, or nil/false for other kinds.
func (i *Items) Stmt(id ItemID) (*RawStmt, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemStmt {
		return nil, false
	}
	return i.Stmts.Get(uint32(item.Payload)), true
}
