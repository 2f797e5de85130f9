package textnorm

import (
	"strings"
	"testing"
)

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \n\t ", ""},
		{"plain text", "just plain text", "just plain text"},
		{"tags removed", "<p>first</p><p>second</p>", "first second"},
		{"nested markup", "<div>Breaking <b>news</b> update</div>", "Breaking news update"},
		{"whitespace collapsed", "<p>too   many\n\nspaces</p>", "too many spaces"},
		{"script dropped", "<p>visible</p><script>var x = 1;</script>", "visible"},
		{"style dropped", "<style>p { color: red }</style><p>text</p>", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripMarkup(tt.input)
			if got != tt.expected {
				t.Errorf("StripMarkup(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCanonicalDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2024-05-26 13:41:00", "2024-05-26"},
		{"2024-05-26T13:41:00Z", "2024-05-26"},
		{"May 26, 2024", "2024-05-26"},
		{"26 May 2024 10:00:00 GMT", "2024-05-26"},
		{"2024-05-26", "2024-05-26"},
		{"", ""},
		{"not a date at all", ""},
	}

	for _, tt := range tests {
		got := CanonicalDate(tt.input)
		if got != tt.expected {
			t.Errorf("CanonicalDate(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestCanonicalDateIdempotent(t *testing.T) {
	first := CanonicalDate("Mon, 03 Jul 2023 10:00:00 GMT")
	if first == "" {
		t.Fatal("Expected first parse to succeed")
	}

	second := CanonicalDate(first)
	if second != first {
		t.Errorf("Expected idempotent result %q, got %q", first, second)
	}
}

func TestSnippetShortTextUnchanged(t *testing.T) {
	text := "short enough"
	if got := Snippet(text, 250); got != text {
		t.Errorf("Expected unchanged text %q, got %q", text, got)
	}
}

func TestSnippetTruncatesAtWordBoundary(t *testing.T) {
	text := "military forces report heavy fighting near the border region today"
	got := Snippet(text, 30)

	if !strings.HasSuffix(got, "...") {
		t.Errorf("Expected ellipsis suffix, got %q", got)
	}

	trimmed := strings.TrimSuffix(got, "...")
	if len(trimmed) > 30 {
		t.Errorf("Expected at most 30 characters before ellipsis, got %d", len(trimmed))
	}

	// The truncated prefix must end on a complete word from the input
	words := strings.Fields(trimmed)
	last := words[len(words)-1]
	if !strings.Contains(text, last+" ") && !strings.HasSuffix(text, last) {
		t.Errorf("Snippet split inside a word: %q", last)
	}
}

func TestSnippetNoWhitespaceHardCut(t *testing.T) {
	text := strings.Repeat("x", 40)
	got := Snippet(text, 10)

	expected := strings.Repeat("x", 10) + "..."
	if got != expected {
		t.Errorf("Expected hard cut %q, got %q", expected, got)
	}
}
