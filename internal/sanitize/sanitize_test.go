package sanitize

import (
	"encoding/json"
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	cases := map[string]string{
		"":                               "",
		"plain text":                     "plain text",
		"<script>alert('x')</script>":    "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;",
		`<img src=x onerror="alert(1)">`: "&lt;img src=x onerror=&quot;alert(1)&quot;&gt;",
		"Tom & Jerry":                    "Tom &amp; Jerry",
		"déjà vu <b>":                    "déjà vu &lt;b&gt;",
		"&amp; already":                  "&amp; already",
		"&copy; 2026":                    "&amp;copy; 2026",
		"a&&b":                           "a&amp;&amp;b",
	}
	for in, want := range cases {
		assert.Equal(t, want, Text(in), "Text(%q)", in)
	}
}

func TestText_NoLiveMarkup(t *testing.T) {
	out := Text("XSS Test <script>alert('xss')</script> <img src=x onerror=alert('xss')>")
	assert.NotContains(t, out, "<")
	assert.NotContains(t, out, ">")
	assert.NotContains(t, out, "'")
}

func TestText_Idempotent(t *testing.T) {
	samples := []string{
		"<b>bold</b> & 'quoted' \"double\"",
		"&amp;amp; &lt;",
		"&&&;;;",
		"&#39;&#39",
	}
	for _, s := range samples {
		once := Text(s)
		assert.Equal(t, once, Text(once), "Text not idempotent for %q", s)
	}
}

// Escaping twice must never introduce &amp;amp; beyond the occurrences the
// raw text already had.
func TestText_IdempotentProperty(t *testing.T) {
	const alphabet = "a&;#39ampltgquo<>\"' "
	gen := func(args []reflect.Value, r *rand.Rand) {
		b := make([]byte, r.Intn(40))
		for i := range b {
			b[i] = alphabet[r.Intn(len(alphabet))]
		}
		args[0] = reflect.ValueOf(string(b))
	}
	prop := func(s string) bool {
		once := Text(s)
		twice := Text(once)
		return once == twice &&
			strings.Count(twice, "&amp;amp;") <= strings.Count(s, "&amp;amp;") &&
			!strings.ContainsAny(twice, "<>'\"")
	}
	require.NoError(t, quick.Check(prop, &quick.Config{MaxCount: 5000, Values: gen}))
}

func TestMarkup(t *testing.T) {
	out := Markup(`<p onclick="x()">Hello <script>alert(1)</script><a href="javascript:alert(1)">link</a></p>`)
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "<p>Hello")
}

func TestDocument(t *testing.T) {
	raw := []byte(`{"title":"<b>Créez</b><script>x()</script>","stats":[{"number":"50+","label":"Sites"}],"count":3,"visible":true}`)
	out, err := Document(raw)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "<b>Créez</b>", got["title"])
	assert.Equal(t, float64(3), got["count"])
	assert.Equal(t, true, got["visible"])

	stats := got["stats"].([]any)
	require.Len(t, stats, 1)
	assert.Equal(t, "50+", stats[0].(map[string]any)["number"])
}

func TestDocument_Invalid(t *testing.T) {
	_, err := Document([]byte(`{"title":`))
	assert.Error(t, err)
}

func TestField(t *testing.T) {
	cases := []struct{ in, want string }{
		{"L'agence Dupont & Fils", "L'agence Dupont & Fils"},
		{"https://images.unsplash.com/photo?w=800&q=80", "https://images.unsplash.com/photo?w=800&q=80"},
		{`Site "vitrine" d'architecte`, `Site "vitrine" d'architecte`},
		{"&lt;script&gt; reste du texte", "&lt;script&gt; reste du texte"},
		{"<b>L'expérience</b> & le <script>x()</script>style", "<b>L'expérience</b> & le style"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Field(tc.in), "Field(%q)", tc.in)
	}
}

func TestField_EncodedMarkupStaysEscaped(t *testing.T) {
	out := Field("<b>x</b> &lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "<b>x</b>")
}

func TestDocument_PlainTextUnchanged(t *testing.T) {
	raw := []byte(`{"title":"L'agence Dupont & Fils","image":"https://x/p?w=800&q=80"}`)
	out, err := Document(raw)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "L'agence Dupont & Fils", got["title"])
	assert.Equal(t, "https://x/p?w=800&q=80", got["image"])
}
