// Package templates renders the UI pages and HTMX fragments from the
// embedded template files under web/templates.
//
// Pages are parsed together with layout.html; fragments are standalone
// snippets swapped into the page by HTMX.
package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	webembed "github.com/dualcaster-deals/dualcaster/app/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	pages     map[string]*template.Template
	fragments *template.Template
}

var pricePrinter = message.NewPrinter(language.AmericanEnglish)

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"formatPrice": func(v float64) string {
			return pricePrinter.Sprintf("$%v", number.Decimal(v, number.Scale(2)))
		},
		"formatChange": func(v float64) string {
			if v > 0 {
				return pricePrinter.Sprintf("+%v%%", number.Decimal(v, number.Scale(1)))
			}
			return pricePrinter.Sprintf("%v%%", number.Decimal(v, number.Scale(1)))
		},
		"changeClass": func(v float64) string {
			switch {
			case v > 0:
				return "change-up"
			case v < 0:
				return "change-down"
			default:
				return "change-flat"
			}
		},
		"formatConfidence": func(v float64) string {
			return pricePrinter.Sprintf("%v%%", number.Decimal(v*100, number.Scale(0)))
		},
		"formatDateTime": FormatDateTime,
		"statusName": func(status string) string {
			switch status {
			case "pending":
				return "Pending"
			case "upheld":
				return "Upheld"
			case "reduced":
				return "Reduced"
			case "overturned":
				return "Overturned"
			case "open":
				return "Open"
			case "evidence_requested":
				return "Evidence requested"
			case "resolved":
				return "Resolved"
			default:
				return strings.ReplaceAll(status, "_", " ")
			}
		},
		"conditionName": func(condition string) string {
			switch condition {
			case "mint":
				return "Mint"
			case "near_mint":
				return "Near mint"
			case "lightly_played":
				return "Lightly played"
			case "moderately_played":
				return "Moderately played"
			case "heavily_played":
				return "Heavily played"
			case "damaged":
				return "Damaged"
			default:
				return condition
			}
		},
		"highlightJSON": HighlightJSON,
	}
}

// FormatDateTime converts an RFC3339 datetime string to YYYY-MM-DD HH:MM
func FormatDateTime(dateString string) string {
	t, err := time.Parse(time.RFC3339, dateString)
	if err != nil {
		return dateString
	}
	return t.Format("2006-01-02 15:04")
}

// Load parses all page templates with the layout plus the fragment snippets.
func Load() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pageFiles, err := fs.Glob(tfs, "pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("globbing page templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, file := range pageFiles {
		name := strings.TrimSuffix(strings.TrimPrefix(file, "pages/"), ".html")

		tmpl, err := template.New("layout.html").Funcs(FuncMap()).Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for page %s: %w", name, err)
		}

		pageBytes, err := fs.ReadFile(tfs, file)
		if err != nil {
			return nil, fmt.Errorf("reading page template %s: %w", file, err)
		}

		if _, err := tmpl.Parse(string(pageBytes)); err != nil {
			return nil, fmt.Errorf("parsing page template %s: %w", file, err)
		}

		// pages can inline fragments (e.g. pre-rendered search results)
		if _, err := tmpl.ParseFS(tfs, "fragments/*.html"); err != nil {
			return nil, fmt.Errorf("parsing fragments for page %s: %w", name, err)
		}

		pages[name] = tmpl
	}

	fragments, err := template.New("fragments").Funcs(FuncMap()).ParseFS(tfs, "fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing fragment templates: %w", err)
	}

	return &Templates{pages: pages, fragments: fragments}, nil
}

// RenderPage executes a page template into a buffer first so a template error
// never produces a half-written response.
func (t *Templates) RenderPage(w io.Writer, name string, data any) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("unknown page template: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing page template %s: %w", name, err)
	}

	_, err := buf.WriteTo(w)
	return err
}

// RenderFragment executes an HTMX fragment template.
func (t *Templates) RenderFragment(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := t.fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("executing fragment template %s: %w", name, err)
	}

	_, err := buf.WriteTo(w)
	return err
}
