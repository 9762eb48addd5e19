package lexer_test

import (
	"testing"

	"restyle/internal/lexer"
	"restyle/internal/source"
	"restyle/internal/token"
)

type recordedReport struct {
	kind string
	span source.Span
	msg  string
}

type testReporter struct {
	reports []recordedReport
}

func (r *testReporter) Report(kind string, span source.Span, msg string) {
	r.reports = append(r.reports, recordedReport{kind: kind, span: span, msg: msg})
}

func makeLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.tsx", []byte(input))
	rep := &testReporter{}
	return lexer.New(fs.Get(id), lexer.Options{Reporter: rep}), rep
}

func collect(lx *lexer.Lexer) []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tok)
	}
}

func expectKinds(t *testing.T, input string, want []token.Kind) {
	t.Helper()
	lx, rep := makeLexer(input)
	got := collect(lx)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d\ninput: %q\nreports: %v", len(got), len(want), input, rep.reports)
	}
	for i, tok := range got {
		if tok.Kind != want[i] {
			t.Errorf("token %d: kind = %v, want %v (text %q)", i, tok.Kind, want[i], tok.Text)
		}
	}
}

func TestKeywordsAndIdents(t *testing.T) {
	expectKinds(t, "import foo from", []token.Kind{token.KwImport, token.Ident, token.KwFrom})
	expectKinds(t, "export default async", []token.Kind{token.KwExport, token.KwDefault, token.KwAsync})
	expectKinds(t, "const let var function return", []token.Kind{
		token.KwConst, token.KwLet, token.KwVar, token.KwFunction, token.KwReturn,
	})
	// contextual keywords still lex as keyword kinds; the parser treats them
	// as ident-like where the grammar allows
	expectKinds(t, "type as", []token.Kind{token.KwType, token.KwAs})
}

func TestOperators(t *testing.T) {
	cases := []struct {
		input string
		want  []token.Kind
	}{
		{"=>", []token.Kind{token.Arrow}},
		{"= ==", []token.Kind{token.Assign, token.EqEq}},
		{"=== !==", []token.Kind{token.EqEqEq, token.BangEqEq}},
		{"</ />", []token.Kind{token.LtSlash, token.SlashGt}},
		{"?? ?.", []token.Kind{token.Coalesce, token.OptionalDot}},
		{"...", []token.Kind{token.Ellipsis}},
		{"<=>", []token.Kind{token.LtEq, token.Gt}},
	}
	for _, tc := range cases {
		expectKinds(t, tc.input, tc.want)
	}
}

func TestStringsAndNumbers(t *testing.T) {
	lx, rep := makeLexer(`"a\"b" 'c' 42 4.2 0x2a .5`)
	got := collect(lx)
	want := []token.Kind{
		token.StringLit, token.StringLit,
		token.NumberLit, token.NumberLit, token.NumberLit, token.NumberLit,
	}
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i].Kind != want[i] {
			t.Errorf("token %d: kind = %v, want %v", i, got[i].Kind, want[i])
		}
	}
	if got[0].Text != `"a\"b"` {
		t.Errorf("escaped string text = %q", got[0].Text)
	}
	if len(rep.reports) != 0 {
		t.Fatalf("unexpected reports: %v", rep.reports)
	}
}

func TestTemplateIsOneToken(t *testing.T) {
	lx, rep := makeLexer("`a ${x ? `${y}` : \"}\"} b` rest")
	tok := lx.Next()
	if tok.Kind != token.TemplateLit {
		t.Fatalf("kind = %v, want TemplateLit", tok.Kind)
	}
	if tok.Text != "`a ${x ? `${y}` : \"}\"} b`" {
		t.Fatalf("template text = %q", tok.Text)
	}
	if next := lx.Next(); next.Kind != token.Ident || next.Text != "rest" {
		t.Fatalf("token after template = %v %q", next.Kind, next.Text)
	}
	if len(rep.reports) != 0 {
		t.Fatalf("unexpected reports: %v", rep.reports)
	}
}

func TestUnterminatedReports(t *testing.T) {
	cases := []struct {
		input string
		kind  string
	}{
		{`"abc`, "unterminated-string"},
		{"`abc", "unterminated-template"},
		{"`a ${b", "unterminated-template"},
		{"/* abc", "unterminated-block-comment"},
	}
	for _, tc := range cases {
		lx, rep := makeLexer(tc.input)
		collect(lx)
		if len(rep.reports) != 1 {
			t.Fatalf("%q: reports = %v, want one %s", tc.input, rep.reports, tc.kind)
		}
		if rep.reports[0].kind != tc.kind {
			t.Errorf("%q: report kind = %q, want %q", tc.input, rep.reports[0].kind, tc.kind)
		}
	}
}

func TestLeadingTrivia(t *testing.T) {
	lx, _ := makeLexer("// header\n\n  /* block */ const x")
	tok := lx.Next()
	if tok.Kind != token.KwConst {
		t.Fatalf("kind = %v, want const", tok.Kind)
	}
	kinds := make([]token.TriviaKind, 0, len(tok.Leading))
	for _, tr := range tok.Leading {
		kinds = append(kinds, tr.Kind)
	}
	want := []token.TriviaKind{
		token.TriviaLineComment,
		token.TriviaNewline,
		token.TriviaSpace,
		token.TriviaBlockComment,
		token.TriviaSpace,
	}
	if len(kinds) != len(want) {
		t.Fatalf("trivia kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("trivia %d: %v, want %v", i, kinds[i], want[i])
		}
	}
	// the run of two newlines coalesces
	if tok.Leading[1].Text != "\n\n" {
		t.Errorf("newline trivia text = %q", tok.Leading[1].Text)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeLexer("import x")
	p := lx.Peek()
	n := lx.Next()
	if p.Kind != n.Kind || p.Span != n.Span {
		t.Fatalf("Peek = %v, Next = %v", p, n)
	}
	if lx.Next().Kind != token.Ident {
		t.Fatal("Peek consumed a token")
	}
}

func TestMarkupTextMode(t *testing.T) {
	src := "<div>Hello & stop {x}</div>"
	lx, _ := makeLexer(src)
	// reposition past "<div>" the way the parser does after the open tag
	tok := lx.MarkupText(5)
	if tok.Kind != token.MarkupText {
		t.Fatalf("kind = %v, want MarkupText", tok.Kind)
	}
	if tok.Text != "Hello & stop " {
		t.Fatalf("markup text = %q", tok.Text)
	}
	if tok.Span.End != 18 {
		t.Fatalf("markup end = %d, want 18", tok.Span.End)
	}
}

func TestRewind(t *testing.T) {
	lx, _ := makeLexer("a < b")
	first := lx.Next()
	lx.Next() // <
	lx.Rewind(first.Span.End)
	if tok := lx.Next(); tok.Kind != token.Lt {
		t.Fatalf("after rewind kind = %v, want <", tok.Kind)
	}
	if tok := lx.Next(); tok.Kind != token.Ident || tok.Text != "b" {
		t.Fatalf("after rewind next = %v %q", tok.Kind, tok.Text)
	}
}
