package convert

import "github.com/microcosm-cc/bluemonday"

// Sanitizer neutralizes unsafe HTML before a stored fragment is displayed.
// Pipeline output passes through it unchanged; anything executable that
// arrived via the raw create API gets stripped here.
//
// Safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer builds the display policy: user-generated-content rules, plus
// data-URI images (PDF pages embed their rasters that way), class attributes
// (the md/txt/docx/pdf containers and pdf-page wrappers carry styling hooks),
// and the target/rel pair the markdown renderer puts on external links.
func NewSanitizer() *Sanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowDataURIImages()
	policy.AllowAttrs("class").Globally()
	policy.AllowAttrs("target", "rel").OnElements("a")
	return &Sanitizer{policy: policy}
}

// Sanitize returns html with scripts, event handlers and unsafe URLs removed.
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
