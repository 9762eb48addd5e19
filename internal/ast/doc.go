// Package ast holds the arena-backed syntax tree for one analyzed file.
//
// Nodes live in typed arenas owned by a Builder; IDs are 1-based indexes
// with 0 reserved as the invalid ID. The tree is built once by the parser
// and is read-only for the duration of a file's analysis: rules hold only
// transient IDs, never pointers that outlive the traversal.
package ast
