package templates

import (
	"bytes"
	"encoding/json"
	"html/template"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// HighlightJSON renders a structured evidence blob as syntax-highlighted
// HTML for the dispute detail page. Falls back to a plain <pre> block when
// highlighting fails - the evidence must always be visible to the moderator.
func HighlightJSON(raw json.RawMessage) template.HTML {
	if len(raw) == 0 {
		return ""
	}

	// pretty-print first so the moderator sees one key per line
	var indented bytes.Buffer
	source := string(raw)
	if err := json.Indent(&indented, raw, "", "  "); err == nil {
		source = indented.String()
	}

	lexer := lexers.Get("json")
	if lexer == nil {
		return plainPre(source)
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return plainPre(source)
	}

	formatter := html.New(html.WithClasses(false))
	style := styles.Get("friendly")

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return plainPre(source)
	}

	// chroma escapes the source while formatting
	return template.HTML(buf.String()) // #nosec G203
}

func plainPre(source string) template.HTML {
	var buf bytes.Buffer
	buf.WriteString("<pre>")
	template.HTMLEscape(&buf, []byte(source))
	buf.WriteString("</pre>")
	return template.HTML(buf.String()) // #nosec G203
}
