package projects

import (
	"testing"

	"github.com/boardhub/boardhub/internal/domain/models"
)

func TestExtractReportInputs(t *testing.T) {
	items := []models.GraphItem{
		{Type: models.ItemTypeText, Data: models.ItemData{Title: "A"}},
		{Type: models.ItemTypePix, Data: models.ItemData{URL: "http://x"}},
		{Type: models.ItemTypeText, Data: models.ItemData{Content: "body text", Memo: "note"}},
	}

	prompt, urls := extractReportInputs(items)
	if prompt != "A, body text, note" {
		t.Errorf("prompt: got %q, want %q", prompt, "A, body text, note")
	}
	if len(urls) != 1 || urls[0] != "http://x" {
		t.Errorf("urls: got %v, want [http://x]", urls)
	}
}

func TestExtractReportInputs_StripsMarkup(t *testing.T) {
	items := []models.GraphItem{
		{Type: models.ItemTypeText, Data: models.ItemData{Title: "<b>bold</b> claim"}},
		{Type: models.ItemTypeText, Data: models.ItemData{Content: "<script>alert(1)</script>"}},
	}

	prompt, _ := extractReportInputs(items)
	if prompt != "bold claim" {
		t.Errorf("prompt: got %q, want %q", prompt, "bold claim")
	}
}

func TestExtractReportInputs_Empty(t *testing.T) {
	prompt, urls := extractReportInputs(nil)
	if prompt != "" {
		t.Errorf("prompt: got %q, want empty", prompt)
	}
	// The response contract wants [] rather than null.
	if urls == nil || len(urls) != 0 {
		t.Errorf("urls: got %v, want empty non-nil slice", urls)
	}
}

func TestCleanReportText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"newlines removed", "line one\nline two\n", "line oneline two"},
		{"quotes unescaped", `say "hi"`, `say "hi"`},
		{"backslashes dropped", `path\to\file`, "pathtofile"},
		{"tabs dropped", "a\tb", "atb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanReportText(tt.in); got != tt.want {
				t.Errorf("cleanReportText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
