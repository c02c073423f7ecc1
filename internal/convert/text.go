package convert

import "strings"

// htmlEscaper escapes the five characters with special meaning in HTML.
// A single-pass Replacer never re-scans its own output, so entities are not
// double-escaped.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML neutralizes raw text for embedding in an HTML fragment.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// RenderText renders plain text as a preformatted block. Escaping aside,
// the content is untouched.
func RenderText(text string) string {
	return `<pre class="txt">` + EscapeHTML(text) + `</pre>`
}
