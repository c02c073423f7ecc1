package convert

import (
	"regexp"
	"strings"
)

// The markdown renderer is a fixed chain of line-oriented substitutions, not a
// real parser. The order below is a compatibility contract: headings are tried
// from h6 down to h1 so a run of six hashes is not consumed by the single-hash
// rule, and bold runs before italic so a ** span is not split by the * rule.
// Nested lists, code blocks, tables and block quotes are out of scope; the
// output for overlapping markup is whatever the ordered substitutions produce.
var (
	mdHeadings = []struct {
		re   *regexp.Regexp
		open string
		end  string
	}{
		{regexp.MustCompile(`(?m)^######\s?(.*)$`), "<h6>", "</h6>"},
		{regexp.MustCompile(`(?m)^#####\s?(.*)$`), "<h5>", "</h5>"},
		{regexp.MustCompile(`(?m)^####\s?(.*)$`), "<h4>", "</h4>"},
		{regexp.MustCompile(`(?m)^###\s?(.*)$`), "<h3>", "</h3>"},
		{regexp.MustCompile(`(?m)^##\s?(.*)$`), "<h2>", "</h2>"},
		{regexp.MustCompile(`(?m)^#\s?(.*)$`), "<h1>", "</h1>"},
	}

	mdBold   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	mdItalic = regexp.MustCompile(`\*(.+?)\*`)

	// Only http/https URLs become anchors; anything else (javascript:, data:,
	// relative paths) stays literal text.
	mdLink = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\s)]+)\)`)

	mdListItem = regexp.MustCompile(`(?m)^\s*-\s+(.*)$`)
	mdListRun  = regexp.MustCompile(`(?:<li>.*</li>\n?)+`)

	mdBlockSep = regexp.MustCompile(`\n{2,}`)
)

// RenderMarkdown converts a restricted markdown dialect to an HTML fragment
// wrapped in a container tagged md. The source is HTML-escaped before any
// rule runs, so a literal < in the input can never open a tag.
func RenderMarkdown(md string) string {
	s := EscapeHTML(md)

	for _, h := range mdHeadings {
		s = h.re.ReplaceAllString(s, h.open+"${1}"+h.end)
	}

	s = mdBold.ReplaceAllString(s, "<strong>${1}</strong>")
	s = mdItalic.ReplaceAllString(s, "<em>${1}</em>")

	s = mdLink.ReplaceAllString(s, `<a href="${2}" target="_blank" rel="noopener">${1}</a>`)

	s = mdListItem.ReplaceAllString(s, "<li>${1}</li>")
	s = mdListRun.ReplaceAllStringFunc(s, func(run string) string {
		return "<ul>" + run + "</ul>"
	})

	blocks := mdBlockSep.Split(s, -1)
	rendered := make([]string, 0, len(blocks))
	for _, b := range blocks {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		if strings.HasPrefix(b, "<h") || strings.HasPrefix(b, "<ul>") {
			rendered = append(rendered, b)
			continue
		}
		rendered = append(rendered, "<p>"+strings.ReplaceAll(b, "\n", "<br>")+"</p>")
	}

	return `<div class="md">` + strings.Join(rendered, "\n") + `</div>`
}
