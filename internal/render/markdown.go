package render

import (
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Span is a run of fragment text with inline styling resolved. The
// terminal renderers map Code/Emph/Strong onto their own styles.
type Span struct {
	Text   string
	Code   bool
	Emph   bool
	Strong bool
}

// Fragment markup is markdown; the parser configuration never changes,
// so one shared instance is enough (parsing allocates per-call state).
var (
	fragmentParser     goldmark.Markdown
	fragmentParserOnce sync.Once
)

func getFragmentParser() goldmark.Markdown {
	fragmentParserOnce.Do(func() {
		fragmentParser = goldmark.New()
	})
	return fragmentParser
}

// Flatten parses a descriptor fragment and returns its inline content
// as styled spans. Fragments are one-line impl headers; block structure
// beyond a single paragraph is flattened in document order.
func Flatten(fragment string) []Span {
	if fragment == "" {
		return nil
	}
	source := []byte(fragment)
	doc := getFragmentParser().Parser().Parse(text.NewReader(source))

	var spans []Span
	var emph, strong int
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Emphasis:
			delta := 1
			if !entering {
				delta = -1
			}
			if node.Level >= 2 {
				strong += delta
			} else {
				emph += delta
			}
		case *ast.CodeSpan:
			if entering {
				var code []byte
				for c := node.FirstChild(); c != nil; c = c.NextSibling() {
					if t, ok := c.(*ast.Text); ok {
						code = append(code, t.Segment.Value(source)...)
					}
				}
				spans = append(spans, Span{Text: string(code), Code: true, Emph: emph > 0, Strong: strong > 0})
			}
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			if entering {
				spans = append(spans, Span{
					Text:   string(node.Segment.Value(source)),
					Emph:   emph > 0,
					Strong: strong > 0,
				})
				if node.SoftLineBreak() || node.HardLineBreak() {
					spans = append(spans, Span{Text: " "})
				}
			}
		}
		return ast.WalkContinue, nil
	})
	return spans
}

// PlainText joins the flattened spans without styling.
func PlainText(fragment string) string {
	var out []byte
	for _, s := range Flatten(fragment) {
		out = append(out, s.Text...)
	}
	return string(out)
}
