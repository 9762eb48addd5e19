package driver

import (
	"fmt"

	"fortio.org/safecast"

	"restyle/internal/ast"
	"restyle/internal/diag"
	"restyle/internal/fix"
	"restyle/internal/lexer"
	"restyle/internal/parser"
	"restyle/internal/rules"
	"restyle/internal/source"
)

// DefaultMaxDiagnostics bounds the per-file bag when the caller passes 0.
const DefaultMaxDiagnostics = 256

// Options control a driver run over a file or a tree.
type Options struct {
	MaxDiagnostics int
	Jobs           int
	Settings       rules.Settings
	Cache          *DiskCache
	// Events receives per-file progress when non-nil.
	Events chan<- Event
}

func (o *Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// FileResult is the outcome of analyzing one source file.
type FileResult struct {
	Path      string
	FileID    source.FileID
	Bag       *diag.Bag
	FromCache bool
}

// lexReporter adapts the lexer's raw error callback into diagnostics.
type lexReporter struct {
	bag *diag.Bag
}

var lexCodes = map[string]diag.Code{
	"unterminated-string":        diag.LexUnterminatedString,
	"unterminated-block-comment": diag.LexUnterminatedBlockComment,
	"unterminated-template":      diag.LexUnterminatedTemplate,
}

func (r lexReporter) Report(kind string, sp source.Span, msg string) {
	code, ok := lexCodes[kind]
	if !ok {
		code = diag.LexInfo
	}
	r.bag.Add(diag.New(diag.SevError, code, sp, msg))
}

// AnalyzeFile runs the full pipeline over one already loaded file: lex,
// parse, rule pass. The returned bag is deduplicated and sorted.
func AnalyzeFile(fileSet *source.FileSet, id source.FileID, settings rules.Settings, maxDiagnostics int) *diag.Bag {
	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}
	file := fileSet.Get(id)
	bag := diag.NewBag(maxDiagnostics)

	builder := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(file, lexer.Options{Reporter: lexReporter{bag: bag}})

	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		panic(fmt.Errorf("maxDiagnostics overflow: %w", err))
	}
	res := parser.ParseFile(fileSet, lx, builder, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})

	ctx := &rules.Context{
		File:     file,
		Arenas:   builder,
		Reporter: diag.BagReporter{Bag: bag},
		Settings: settings,
	}
	rules.Run(ctx, res.File, rules.All(settings))

	bag.Dedup()
	bag.Sort()
	return bag
}

// AnalyzeContent analyzes an in-memory buffer under a virtual file name.
// Spans in the returned diagnostics refer to a throwaway FileSet, so only
// their offsets are meaningful to the caller.
func AnalyzeContent(name string, content []byte, settings rules.Settings, maxDiagnostics int) ([]diag.Diagnostic, error) {
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual(name, content)
	bag := AnalyzeFile(fileSet, id, settings, maxDiagnostics)
	return bag.Items(), nil
}

// Analyzer binds settings into a fix.AnalyzeFunc for the fixed-point loop.
func Analyzer(settings rules.Settings, maxDiagnostics int) fix.AnalyzeFunc {
	return func(path string, content []byte) ([]diag.Diagnostic, error) {
		return AnalyzeContent(path, content, settings, maxDiagnostics)
	}
}
