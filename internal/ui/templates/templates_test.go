package templates

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestLoadParsesAllTemplates(t *testing.T) {
	tmpl, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// every page the handlers render must be present
	wantPages := []string{
		"login", "register", "dashboard", "inventory", "search",
		"card_detail", "moderation", "appeals", "disputes",
		"dispute_detail", "quotes", "directory", "settings",
		"access_denied",
	}
	for _, name := range wantPages {
		if _, ok := tmpl.pages[name]; !ok {
			t.Errorf("page template %q not loaded", name)
		}
	}
}

func TestRenderPageUnknownName(t *testing.T) {
	tmpl, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var sb strings.Builder
	if err := tmpl.RenderPage(&sb, "no-such-page", nil); err == nil {
		t.Error("RenderPage() accepted an unknown template name")
	}
}

func TestRenderFragmentErrorAlert(t *testing.T) {
	tmpl, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var sb strings.Builder
	err = tmpl.RenderFragment(&sb, "error_alert.html", map[string]any{
		"Message":   "The request timed out.",
		"Retryable": true,
		"RetryURL":  "/ui-api/refresh-stats",
	})
	if err != nil {
		t.Fatalf("RenderFragment() error = %v", err)
	}
	if !strings.Contains(sb.String(), "The request timed out.") {
		t.Errorf("fragment output missing message: %s", sb.String())
	}
}

func TestFormatDateTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-08-01T14:30:00Z", "2026-08-01 14:30"},
		{"not-a-date", "not-a-date"}, // passthrough on parse failure
	}
	for _, tt := range tests {
		if got := FormatDateTime(tt.in); got != tt.want {
			t.Errorf("FormatDateTime(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHighlightJSONEscapesContent(t *testing.T) {
	out := HighlightJSON(json.RawMessage(`{"note":"<script>alert(1)</script>"}`))
	if strings.Contains(string(out), "<script>") {
		t.Error("highlighted output contains unescaped script tag")
	}
	if out == "" {
		t.Error("highlighted output is empty")
	}
}

func TestHighlightJSONEmptyInput(t *testing.T) {
	if out := HighlightJSON(nil); out != "" {
		t.Errorf("HighlightJSON(nil) = %q, want empty", out)
	}
}

func TestFormatPriceFuncMap(t *testing.T) {
	fm := FuncMap()
	format := fm["formatPrice"].(func(float64) string)

	if got := format(1234.5); got != "$1,234.50" {
		t.Errorf("formatPrice(1234.5) = %q, want $1,234.50", got)
	}
}
