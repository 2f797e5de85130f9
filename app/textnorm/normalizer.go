package textnorm

import (
	"strings"

	"github.com/araddon/dateparse"
	"golang.org/x/net/html"
)

const ellipsis = "..."

// StripMarkup removes HTML tags from raw text and collapses whitespace,
// joining the text fragments with single spaces. Empty input yields an empty
// string; input that cannot be parsed is returned as-is.
func StripMarkup(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return raw
	}

	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.Join(strings.Fields(n.Data), " "); text != "" {
				parts = append(parts, text)
			}
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(parts, " ")
}

// CanonicalDate parses a loosely formatted date string best-effort and
// returns it as YYYY-MM-DD. Time-of-day information is discarded. Returns an
// empty string when the input cannot be parsed.
func CanonicalDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return ""
	}

	return t.Format("2006-01-02")
}

// Snippet bounds text to maxLen characters. Overlong text is cut at the last
// whitespace boundary before the limit so no word is split, with an ellipsis
// marker appended; if the prefix contains no whitespace the cut is hard.
func Snippet(text string, maxLen int) string {
	text = strings.TrimSpace(text)

	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	cut := string(runes[:maxLen])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		return cut[:idx] + ellipsis
	}
	return cut + ellipsis
}
