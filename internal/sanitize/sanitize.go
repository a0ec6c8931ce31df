// Package sanitize neutralises markup in user-supplied text before it is
// stored. Text escapes free-text fields in a single pass; Document cleans the
// string values of admin-edited site content with an HTML policy.
package sanitize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// entities are the only sequences Text emits for special characters. An '&'
// that already starts one of them is copied verbatim, which keeps Text
// idempotent.
var entities = [...]string{"&amp;", "&lt;", "&gt;", "&quot;", "&#39;"}

const special = `<>&"'`

// Text returns s with HTML-significant characters replaced by entities.
// Text(Text(s)) == Text(s).
func Text(s string) string {
	if !strings.ContainsAny(s, special) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#39;")
		case '&':
			if ent := entityAt(s[i:]); ent != "" {
				b.WriteString(ent)
				i += len(ent) - 1
				continue
			}
			b.WriteString("&amp;")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func entityAt(s string) string {
	for _, e := range entities {
		if strings.HasPrefix(s, e) {
			return e
		}
	}
	return ""
}

// policy allows the simple formatting an editor may put in site content and
// strips scripts, event handlers and unsafe URLs.
var policy = bluemonday.UGCPolicy()

// Markup cleans a fragment of HTML.
func Markup(s string) string {
	return policy.Sanitize(s)
}

// Field cleans one site-content value. Values are rendered as text and
// as attributes by the front end, so plain text is returned unchanged and
// markup loses only what the policy forbids, without entity-escaping the
// remaining apostrophes and ampersands. When unescaping would bring back
// markup the policy strips (an encoded <script>, say), the escaped form is
// kept.
func Field(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	out := policy.Sanitize(s)
	if plain := html.UnescapeString(out); policy.Sanitize(plain) == out {
		return plain
	}
	return out
}

// Document walks a JSON document and cleans every string value with
// Field. Object keys, numbers and booleans are kept as they are.
func Document(raw []byte) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	out, err := json.Marshal(clean(v))
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return out, nil
}

func clean(v any) any {
	switch t := v.(type) {
	case string:
		return Field(t)
	case []any:
		for i := range t {
			t[i] = clean(t[i])
		}
		return t
	case map[string]any:
		for k, val := range t {
			t[k] = clean(val)
		}
		return t
	default:
		return v
	}
}
