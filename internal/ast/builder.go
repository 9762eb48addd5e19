package ast

import (
	"restyle/internal/source"
)

type Hints struct{ Files, Items, Nodes, Exprs uint }

// Builder owns the arenas and the string interner for one parse.
type Builder struct {
	Files   *Files
	Items   *Items
	Nodes   *Nodes
	Exprs   *Exprs
	Strings *source.Interner
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Items == 0 {
		hints.Items = 1 << 6
	}
	if hints.Nodes == 0 {
		hints.Nodes = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 7
	}
	return &Builder{
		Files:   NewFiles(hints.Files),
		Items:   NewItems(hints.Items),
		Nodes:   NewNodes(hints.Nodes),
		Exprs:   NewExprs(hints.Exprs),
		Strings: source.NewInterner(),
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(file)
	f.Items = append(f.Items, item)
}

// Name resolves an interned string ID.
func (b *Builder) Name(id source.StringID) string {
	return b.Strings.MustLookup(id)
}
