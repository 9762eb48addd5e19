package source

import (
	"golang.org/x/text/unicode/norm"
)

type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates identifier and attribute-name strings so AST nodes
// carry compact IDs instead of slices into file buffers.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""}, // NoStringID -> empty string
		index: map[string]StringID{"": 0},
	}
}

// Intern inserts the string and returns its ID; existing strings return
// their previous ID. Identifier text is NFC-normalized so visually identical
// names compare equal.
func (i *Interner) Intern(s string) StringID {
	s = norm.NFC.String(s)
	if id, ok := i.index[s]; ok {
		return id
	}

	// own copy so we do not pin the source buffer
	cpy := string([]byte(s))
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// InternBytes interns the byte slice as a string.
func (i *Interner) InternBytes(b []byte) StringID {
	return i.Intern(string(b))
}

// Lookup returns the string for id, or "" and false for invalid IDs.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup returns the string for id, or "" for invalid IDs.
func (i *Interner) MustLookup(id StringID) string {
	s, _ := i.Lookup(id)
	return s
}

// Has reports whether id is a valid interned ID.
func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len returns the number of interned strings, including the empty sentinel.
func (i *Interner) Len() int {
	return len(i.byID)
}
