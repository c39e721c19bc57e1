// Package sanitize normalizes user supplied content before it is persisted.
package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags removes every markup element from s and returns the remaining text.
// Script and style bodies are dropped together with their tags. Entities are left
// encoded so stored text never turns back into markup when rendered.
//
// Elements such as textarea, title or plaintext hand their body back as a single
// text token with any nested markup intact, so passes repeat until the text is stable.
func StripTags(s string) string {
	out := strings.TrimSpace(s)
	for strings.ContainsRune(out, '<') {
		next := stripOnce(out)
		if next == out {
			break
		}
		out = next
	}
	return out
}

func stripOnce(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF, or a tokenizer error on malformed input: keep what was read
			return strings.TrimSpace(b.String())
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Raw())
			}
		case html.StartTagToken:
			if isRawBody(z) {
				skip++
			}
		case html.EndTagToken:
			if isRawBody(z) && skip > 0 {
				skip--
			}
		}
	}
}

func isRawBody(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}
