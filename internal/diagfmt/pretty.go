package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"restyle/internal/diag"
	"restyle/internal/source"
)

// Pretty renders diagnostics for humans. It walks bag.Items() in order, so
// callers sort the bag first. Each diagnostic prints as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a ^~~~ underline, then notes and fix
// titles when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := prettyPrinter{w: w, fs: fs, opts: opts}
	for _, d := range bag.Items() {
		p.printDiagnostic(d)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p *prettyPrinter) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.opts.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func (p *prettyPrinter) sevColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.paint(color.FgRed, color.Bold)
	case diag.SevWarning:
		return p.paint(color.FgYellow, color.Bold)
	default:
		return p.paint(color.FgCyan, color.Bold)
	}
}

func (p *prettyPrinter) printDiagnostic(d diag.Diagnostic) {
	p.printHeader(d.Severity, d.Code, d.Primary, d.Message)
	p.printUnderline(d.Primary, d.Severity)

	if p.opts.ShowNotes {
		for _, note := range d.Notes {
			p.printHeader(diag.SevInfo, 0, note.Span, note.Msg)
			p.printUnderline(note.Span, diag.SevInfo)
		}
	}
	if p.opts.ShowFixes {
		for _, f := range d.Fixes {
			label := f.Title
			if f.ID != "" {
				label += " [" + f.ID + "]"
			}
			fmt.Fprintf(p.w, "  %s %s\n", p.paint(color.FgGreen).Sprint("fix:"), label)
		}
	}
}

func (p *prettyPrinter) printHeader(sev diag.Severity, code diag.Code, sp source.Span, msg string) {
	start, _ := p.fs.Resolve(sp)
	loc := fmt.Sprintf("%s:%d:%d:", p.formatPath(sp.File), start.Line, start.Col)

	if code == 0 {
		// notes carry no code of their own
		fmt.Fprintf(p.w, "%s %s %s\n",
			p.paint(color.Bold).Sprint(loc),
			p.sevColor(sev).Sprint("note:"),
			msg)
		return
	}
	fmt.Fprintf(p.w, "%s %s %s: %s\n",
		p.paint(color.Bold).Sprint(loc),
		p.sevColor(sev).Sprint(sev.String()),
		code.ID(),
		msg)
}

// printUnderline shows the start line of the span with a caret marker. Spans
// reaching past the line end are clamped to it.
func (p *prettyPrinter) printUnderline(sp source.Span, sev diag.Severity) {
	if sp.Start >= sp.End {
		return
	}
	file := p.fs.Get(sp.File)
	start, end := p.fs.Resolve(sp)
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}

	fmt.Fprintf(p.w, "  %s\n", line)

	col := int(start.Col) - 1
	if col < 0 || col > len(line) {
		col = 0
	}
	endCol := len(line)
	if end.Line == start.Line && int(end.Col)-1 <= len(line) {
		endCol = int(end.Col) - 1
	}
	if endCol < col {
		endCol = col
	}

	pad := strings.Repeat(" ", runewidth.StringWidth(line[:col]))
	width := runewidth.StringWidth(line[col:endCol])
	marker := "^"
	if width > 1 {
		marker += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(p.w, "  %s%s\n", pad, p.sevColor(sev).Sprint(marker))
}

func (p *prettyPrinter) formatPath(id source.FileID) string {
	f := p.fs.Get(id)
	switch p.opts.PathMode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", p.fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
