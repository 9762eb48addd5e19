package parser

import (
	"restyle/internal/ast"
	"restyle/internal/source"
	"restyle/internal/token"
)

// templateFromToken splits an already-lexed template literal into chunks:
// literal runs and the insides of ${...} interpolations. Chunk spans are
// absolute byte offsets into the file.
func (p *Parser) templateFromToken(tok token.Token) ast.ExprID {
	content := p.src.Content
	var chunks []ast.TemplateChunk

	// skip the opening backtick; the closing one may be missing at EOF
	i := tok.Span.Start + 1
	end := tok.Span.End
	if end > i && content[end-1] == '`' {
		end--
	}

	litStart := i
	for i < end {
		b := content[i]
		if b == '\\' && i+1 < end {
			i += 2
			continue
		}
		if b == '$' && i+1 < end && content[i+1] == '{' {
			if i > litStart {
				chunks = append(chunks, ast.TemplateChunk{
					Kind: ast.ChunkLiteral,
					Span: source.Span{File: p.src.ID, Start: litStart, End: i},
				})
			}
			exprStart := i + 2
			exprEnd := skipInterpolationBody(content, exprStart, end)
			chunks = append(chunks, ast.TemplateChunk{
				Kind: ast.ChunkExpr,
				Span: source.Span{File: p.src.ID, Start: exprStart, End: exprEnd},
			})
			i = exprEnd
			if i < end && content[i] == '}' {
				i++
			}
			litStart = i
			continue
		}
		i++
	}
	if i > litStart {
		chunks = append(chunks, ast.TemplateChunk{
			Kind: ast.ChunkLiteral,
			Span: source.Span{File: p.src.ID, Start: litStart, End: i},
		})
	}

	return p.arenas.Exprs.NewTemplate(tok.Span, chunks)
}

// skipInterpolationBody scans from just after `${` to the matching `}`,
// honoring nested braces, quoted strings, and nested templates. Returns the
// offset of the closing brace (or end when unterminated).
func skipInterpolationBody(content []byte, from, end uint32) uint32 {
	depth := 0
	i := from
	for i < end {
		switch content[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return i
			}
			depth--
		case '\'', '"':
			i = skipQuotedRun(content, i, end)
			continue
		case '`':
			i = skipNestedTemplateRun(content, i, end)
			continue
		}
		i++
	}
	return end
}

func skipQuotedRun(content []byte, from, end uint32) uint32 {
	quote := content[from]
	i := from + 1
	for i < end {
		switch content[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		case '\n':
			return i
		}
		i++
	}
	return end
}

func skipNestedTemplateRun(content []byte, from, end uint32) uint32 {
	i := from + 1
	for i < end {
		switch content[i] {
		case '\\':
			i++
		case '`':
			return i + 1
		case '$':
			if i+1 < end && content[i+1] == '{' {
				i = skipInterpolationBody(content, i+2, end)
				continue
			}
		}
		i++
	}
	return end
}
