package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"restyle/internal/ast"
	"restyle/internal/diag"
	"restyle/internal/diagfmt"
	"restyle/internal/lexer"
	"restyle/internal/parser"
	"restyle/internal/source"
	"restyle/internal/token"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] <file.tsx>",
	Short: "Dump the token stream or parsed structure of one file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().Bool("tokens", false, "dump the token stream instead of the tree")
}

func runInspect(cmd *cobra.Command, args []string) error {
	dumpTokens, err := cmd.Flags().GetBool("tokens")
	if err != nil {
		return err
	}

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(args[0])
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	file := fileSet.Get(id)

	if dumpTokens {
		lx := lexer.New(file, lexer.Options{})
		for {
			tok := lx.Next()
			fmt.Fprintf(os.Stdout, "%5d..%-5d %-14s %q\n",
				tok.Span.Start, tok.Span.End, tok.Kind.String(), tok.Text)
			if tok.Kind == token.EOF {
				return nil
			}
		}
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	useColor, err := resolveColor(cmd)
	if err != nil {
		return err
	}

	builder := ast.NewBuilder(ast.Hints{})
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{})
	res := parser.ParseFile(fileSet, lx, builder, parser.Options{
		Reporter: diag.BagReporter{Bag: bag},
	})

	d := dumper{builder: builder, file: file}
	for _, itemID := range builder.Files.Get(res.File).Items {
		d.item(itemID)
	}

	if bag.Len() > 0 {
		bag.Sort()
		fmt.Fprintln(os.Stdout)
		diagfmt.Pretty(os.Stdout, bag, fileSet, diagfmt.PrettyOpts{Color: useColor})
	}
	return nil
}

type dumper struct {
	builder *ast.Builder
	file    *source.File
}

func (d *dumper) name(id source.StringID) string {
	if id == source.NoStringID {
		return ""
	}
	return d.builder.Strings.MustLookup(id)
}

func (d *dumper) item(id ast.ItemID) {
	item := d.builder.Items.Get(id)
	if item == nil {
		return
	}

	if ref, ok := d.builder.Items.ModuleRef(id); ok {
		label := "import"
		if ref.IsExport {
			label = "re-export"
		}
		fmt.Fprintf(os.Stdout, "%s %s", label, ref.ModuleText)
		switch {
		case ref.SideEffect:
			fmt.Fprint(os.Stdout, " (side effect)")
		case ref.HasStar:
			fmt.Fprint(os.Stdout, " (star)")
		}
		fmt.Fprintln(os.Stdout)
		for _, spec := range ref.Specs {
			line := "  " + spec.Kind.String()
			if name := d.name(spec.Name); name != "" {
				line += " " + name
			}
			if spec.Alias != spec.Name {
				line += " as " + d.name(spec.Alias)
			}
			if spec.TypeOnly {
				line += " (type)"
			}
			fmt.Fprintln(os.Stdout, line)
		}
		return
	}

	stmt, ok := d.builder.Items.Stmt(id)
	if !ok {
		return
	}
	head := firstLine(d.file.Text(item.Span))
	fmt.Fprintf(os.Stdout, "stmt %d..%d  %s\n", item.Span.Start, item.Span.End, head)
	for _, root := range stmt.MarkupRoots {
		d.node(root, 1)
	}
	for _, exprID := range stmt.Exprs {
		d.expr(exprID, 1)
	}
}

func (d *dumper) node(id ast.NodeID, depth int) {
	node := d.builder.Nodes.Get(id)
	if node == nil {
		return
	}
	pad := strings.Repeat("  ", depth)

	switch node.Kind {
	case ast.NodeElement:
		el, ok := d.builder.Nodes.Element(id)
		if !ok {
			return
		}
		name := d.name(el.Name)
		if el.Fragment() {
			name = "<>"
		}
		fmt.Fprintf(os.Stdout, "%selement %s (%d attrs)\n", pad, name, len(el.Attrs))
		for _, child := range el.Children {
			d.node(child, depth+1)
		}
	case ast.NodeText:
		text := strings.TrimSpace(d.file.Text(node.Span))
		if text != "" {
			fmt.Fprintf(os.Stdout, "%stext %q\n", pad, text)
		}
	case ast.NodeExprContainer:
		cont, ok := d.builder.Nodes.Container(id)
		if !ok {
			return
		}
		fmt.Fprintf(os.Stdout, "%scontainer %s\n", pad, firstLine(d.file.Text(node.Span)))
		for _, root := range cont.Roots {
			d.node(root, depth+1)
		}
	}
}

func (d *dumper) expr(id ast.ExprID, depth int) {
	expr := d.builder.Exprs.Get(id)
	if expr == nil {
		return
	}
	pad := strings.Repeat("  ", depth)

	switch expr.Kind {
	case ast.ExprArrow:
		arrow, _ := d.builder.Exprs.Arrow(id)
		body := "expr"
		if arrow.BodyKind == ast.ArrowBodyBlock {
			body = fmt.Sprintf("block, %d stmt(s)", len(arrow.BlockStmts))
		}
		async := ""
		if arrow.Async {
			async = "async "
		}
		fmt.Fprintf(os.Stdout, "%s%sarrow (%d params, %s)\n", pad, async, len(arrow.Params), body)
	case ast.ExprTemplate:
		tpl, _ := d.builder.Exprs.Template(id)
		fmt.Fprintf(os.Stdout, "%stemplate (%d interpolations)\n", pad, tpl.ExprCount())
	default:
		fmt.Fprintf(os.Stdout, "%s%s %s\n", pad,
			strings.ToLower(expr.Kind.String()), firstLine(d.file.Text(expr.Span)))
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + " ..."
	}
	if len(s) > 72 {
		s = s[:72] + "..."
	}
	return s
}
