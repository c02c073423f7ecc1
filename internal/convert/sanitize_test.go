package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizer(t *testing.T) {
	san := NewSanitizer()

	t.Run("strips script tags", func(t *testing.T) {
		got := san.Sanitize(`<div class="md"><script>steal()</script><p>hi</p></div>`)
		assert.NotContains(t, got, "<script")
		assert.NotContains(t, got, "steal()")
		assert.Contains(t, got, "<p>hi</p>")
	})

	t.Run("strips event handlers", func(t *testing.T) {
		got := san.Sanitize(`<p onclick="evil()">click</p>`)
		assert.NotContains(t, got, "onclick")
		assert.Contains(t, got, "click")
	})

	t.Run("keeps class attributes", func(t *testing.T) {
		got := san.Sanitize(`<div class="md"><pre class="txt">x</pre></div>`)
		assert.Contains(t, got, `class="md"`)
		assert.Contains(t, got, `class="txt"`)
	})

	t.Run("keeps data uri page images", func(t *testing.T) {
		got := san.Sanitize(`<img class="pdf-page-img" src="data:image/png;base64,iVBORw0KGgo=" alt="Page 1"/>`)
		assert.Contains(t, got, "data:image/png;base64,iVBORw0KGgo=")
	})

	t.Run("keeps safe external links with target", func(t *testing.T) {
		got := san.Sanitize(`<a href="https://example.com" target="_blank" rel="noopener">site</a>`)
		assert.Contains(t, got, `href="https://example.com"`)
		assert.Contains(t, got, `target="_blank"`)
	})

	t.Run("strips javascript urls", func(t *testing.T) {
		got := san.Sanitize(`<a href="javascript:alert(1)">x</a>`)
		assert.NotContains(t, got, "javascript:")
	})
}
