// Package htmlexport writes a static HTML index of every module's
// implementors, for hosting next to the generated documentation.
package htmlexport

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/yuin/goldmark"

	"implex/internal/descriptor"
	"implex/internal/render"
)

var pageTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
h2 { border-bottom: 1px solid #ddd; padding-bottom: .2rem; }
li.synthetic { opacity: .6; }
li.synthetic::after { content: " (synthetic)"; font-size: .8em; }
code { background: #f4f4f4; padding: 0 .2em; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Modules}}<h2 id="{{.Name}}">{{.Name}}</h2>
<ul>
{{range .Impls}}<li{{if .Synthetic}} class="synthetic"{{end}} title="{{.Path}}">{{.Fragment}}</li>
{{end}}</ul>
{{end}}</body>
</html>
`))

type pageData struct {
	Title   string
	Modules []moduleData
}

type moduleData struct {
	Name  string
	Impls []implData
}

type implData struct {
	// Fragment HTML comes from goldmark over our own pipeline's
	// markdown, not from arbitrary user input.
	Fragment  template.HTML
	Path      string
	Synthetic bool
}

// Write renders the index page for m to w. Modules appear in display
// order; implementors keep their registered order.
func Write(w io.Writer, title string, m descriptor.Map) error {
	data := pageData{Title: title}
	for _, name := range render.SortedModules(m) {
		mod := moduleData{Name: name}
		for _, d := range m[name] {
			var buf bytes.Buffer
			if err := goldmark.Convert([]byte(d.Fragment), &buf); err != nil {
				return fmt.Errorf("module %q, type %s: %w", name, d.Path(), err)
			}
			mod.Impls = append(mod.Impls, implData{
				Fragment:  template.HTML(buf.String()),
				Path:      d.Path(),
				Synthetic: d.Synthetic,
			})
		}
		data.Modules = append(data.Modules, mod)
	}
	return pageTemplate.Execute(w, data)
}

// WriteFile renders the index page to path.
func WriteFile(path, title string, m descriptor.Map) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, title, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
