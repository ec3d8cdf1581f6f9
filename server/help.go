package server

import (
	"bytes"
	_ "embed"
	"fmt"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/sambeau/rechner/pkg/rechner/units"
)

//go:embed help.md
var helpMarkdown string

const helpPageTemplate = `<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<title>rechner</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 46rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; }
code { background: #f4f4f4; padding: 0 .25rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ddd; padding: .25rem .5rem; text-align: left; }
</style>
</head>
<body>
%s</body>
</html>
`

// renderHelpPage turns the embedded Markdown plus the unit table into HTML.
func renderHelpPage(tbl *units.Table) ([]byte, error) {
	source := strings.Replace(helpMarkdown, "{{units}}", unitTableMarkdown(tbl), 1)

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	var body bytes.Buffer
	if err := md.Convert([]byte(source), &body); err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf(helpPageTemplate, body.String())), nil
}

func unitTableMarkdown(tbl *units.Table) string {
	var b strings.Builder
	b.WriteString("| Kategorie | Einheiten |\n|---|---|\n")
	for _, c := range tbl.Categories() {
		symbols := make([]string, len(c.Units))
		for i, u := range c.Units {
			symbols[i] = "`" + u.Symbol + "`"
		}
		fmt.Fprintf(&b, "| %s | %s |\n", c.Name, strings.Join(symbols, ", "))
	}
	b.WriteString("| Temperatur | `c` ↔ `f`, `c` ↔ `k` |\n")
	return b.String()
}

func (s *Server) serveHelp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(s.helpPage)
}
