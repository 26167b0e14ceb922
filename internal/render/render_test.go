package render

import (
	"strings"
	"testing"

	"implex/internal/descriptor"
)

func TestFlatten(t *testing.T) {
	spans := Flatten("impl `Iterator` for `Deque`")
	var code []string
	for _, s := range spans {
		if s.Code {
			code = append(code, s.Text)
		}
	}
	if len(code) != 2 || code[0] != "Iterator" || code[1] != "Deque" {
		t.Fatalf("code spans = %v", code)
	}
	if got := PlainText("impl `Iterator` for `Deque`"); got != "impl Iterator for Deque" {
		t.Fatalf("PlainText = %q", got)
	}
}

func TestFlattenEmphasis(t *testing.T) {
	spans := Flatten("impl *unsafe* **Send** for X")
	var emph, strong string
	for _, s := range spans {
		if s.Emph {
			emph += s.Text
		}
		if s.Strong {
			strong += s.Text
		}
	}
	if emph != "unsafe" {
		t.Fatalf("emphasized text = %q", emph)
	}
	if strong != "Send" {
		t.Fatalf("strong text = %q", strong)
	}
}

func TestFlattenEmpty(t *testing.T) {
	if spans := Flatten(""); spans != nil {
		t.Fatalf("Flatten(\"\") = %v", spans)
	}
}

func testMap() descriptor.Map {
	return descriptor.Map{
		"zeta": {
			{Fragment: "impl `Ord` for `Z`", TypePath: []string{"zeta", "Z"}},
		},
		"alpha": {
			{Fragment: "impl `Eq` for `A`", TypePath: []string{"alpha", "A"}},
			{Fragment: "impl `Clone` for `A`", Synthetic: true, TypePath: []string{"alpha", "A"}},
		},
	}
}

func TestSortedModules(t *testing.T) {
	got := SortedModules(testMap())
	if len(got) != 2 || got[0] != "alpha" || got[1] != "zeta" {
		t.Fatalf("SortedModules = %v", got)
	}
}

func TestListPlain(t *testing.T) {
	var b strings.Builder
	List(&b, testMap(), Options{ShowSynthetic: true})
	out := b.String()

	alphaAt := strings.Index(out, "alpha (2)")
	zetaAt := strings.Index(out, "zeta (1)")
	if alphaAt < 0 || zetaAt < 0 || alphaAt > zetaAt {
		t.Fatalf("module sections wrong:\n%s", out)
	}
	// Descriptor order inside a module follows registration order.
	eqAt := strings.Index(out, "impl Eq for A")
	cloneAt := strings.Index(out, "impl Clone for A")
	if eqAt < 0 || cloneAt < 0 || eqAt > cloneAt {
		t.Fatalf("descriptor order wrong:\n%s", out)
	}
	if !strings.Contains(out, "[synthetic]") {
		t.Fatalf("synthetic tag missing:\n%s", out)
	}
}

func TestListHidesSynthetic(t *testing.T) {
	var b strings.Builder
	List(&b, testMap(), Options{ShowSynthetic: false})
	out := b.String()
	if strings.Contains(out, "Clone") {
		t.Fatalf("synthetic impl leaked:\n%s", out)
	}
	if !strings.Contains(out, "alpha (1)") {
		t.Fatalf("count not adjusted for hidden impls:\n%s", out)
	}
}

func TestListTruncates(t *testing.T) {
	m := descriptor.Map{
		"m": {{Fragment: "impl `SomethingVeryLongIndeed` for `AnEvenLongerTypeName`", TypePath: []string{"m", "T"}}},
	}
	var b strings.Builder
	List(&b, m, Options{ShowSynthetic: true, Width: 16})
	out := b.String()
	if !strings.Contains(out, "…") {
		t.Fatalf("no ellipsis in truncated output:\n%s", out)
	}
}
