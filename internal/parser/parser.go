package parser

import (
	"restyle/internal/ast"
	"restyle/internal/diag"
	"restyle/internal/lexer"
	"restyle/internal/source"
	"restyle/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is exhausted.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
}

// Parser holds single-file parse state.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	fs       *source.FileSet
	src      *source.File
	opts     Options
	lastSpan source.Span
}

// ParseFile is the entry point for one file. It requires an already
// constructed lexer over the file.
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.Files.New(lx.EmptySpan()),
		fs:       fs,
		src:      lx.File(),
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseItems()

	f := arenas.Files.Get(p.file)
	f.Span = source.Span{File: p.src.ID, Start: 0, End: uint32(len(p.src.Content))}

	return Result{File: p.file}
}

func (p *Parser) parseItems() {
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			return
		case token.KwImport:
			if id, ok := p.parseImportDecl(); ok {
				p.arenas.PushItem(p.file, id)
				continue
			}
			p.recoverStatement(tok.Span.Start)
		case token.KwExport:
			if id, ok := p.parseReExportDecl(); ok {
				p.arenas.PushItem(p.file, id)
				continue
			}
			// plain export statement (export const, export default, ...)
			p.lx.Rewind(tok.Span.Start)
			p.arenas.PushItem(p.file, p.parseRawStmt())
		case token.Semicolon:
			// stray terminator
			p.lx.Next()
		default:
			p.arenas.PushItem(p.file, p.parseRawStmt())
		}
	}
}

// parseRawStmt scans one top-level statement as a balanced raw span,
// recording markup roots and structured expressions found inside.
func (p *Parser) parseRawStmt() ast.ItemID {
	col := newCollector()
	span := p.scanRaw(rawOpts{
		consumeSemicolon:  true,
		stopAtStmtKeyword: true,
		stopAfterBlock:    true,
	}, col)
	return p.arenas.Items.NewStmt(span, col.roots, col.exprs)
}

// recoverStatement skips to the next plausible statement boundary after a
// malformed declaration.
func (p *Parser) recoverStatement(from uint32) {
	p.lx.Rewind(from)
	col := newCollector()
	span := p.scanRaw(rawOpts{
		consumeSemicolon:  true,
		stopAfterBlock:    true,
		noStructure:       true,
		forceFirstConsume: true,
	}, col)
	p.arenas.PushItem(p.file, p.arenas.Items.NewStmt(span, nil, nil))
}

// ===== token helpers =====

func (p *Parser) next() token.Token {
	t := p.lx.Next()
	if t.Kind != token.EOF {
		p.lastSpan = t.Span
	}
	return t
}

func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) err(code diag.Code, sp source.Span, msg string) {
	if p.opts.Enough() {
		return
	}
	p.opts.CurrentErrors++
	if p.opts.Reporter != nil {
		diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
	}
}

// spanText returns the source slice for sp.
func (p *Parser) spanText(sp source.Span) string {
	return p.src.Text(sp)
}
