package goquery_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/profilescan"
	"github.com/fwojciec/profilescan/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizer_Sanitize(t *testing.T) {
	t.Parallel()

	t.Run("removes scripts and navigation chrome", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><style>body{color:red}</style></head><body>
<header>Site header</header>
<nav>Home | Jobs</nav>
<script>track("visit")</script>
<p>Hello world</p>
<footer>Copyright</footer>
</body></html>`

		got, err := goquery.NewSanitizer().Sanitize(html)

		require.NoError(t, err)
		assert.Equal(t, "Hello world", got)
	})

	t.Run("prefers the main region over other content", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<aside>Sponsored links</aside>
<main><h1>Jane Doe</h1><p>Go developer</p></main>
<section>Other section</section>
</body></html>`

		got, err := goquery.NewSanitizer().Sanitize(html)

		require.NoError(t, err)
		assert.Equal(t, "Jane Doe Go developer", got)
	})

	t.Run("falls back to body when no region matches", func(t *testing.T) {
		t.Parallel()

		got, err := goquery.NewSanitizer().Sanitize(`<html><body><div>Just <b>text</b></div></body></html>`)

		require.NoError(t, err)
		assert.Equal(t, "Just text", got)
	})

	t.Run("falls back to body when the region is empty", func(t *testing.T) {
		t.Parallel()

		got, err := goquery.NewSanitizer().Sanitize(`<html><body><main><script>x()</script></main><p>Visible</p></body></html>`)

		require.NoError(t, err)
		assert.Equal(t, "Visible", got)
	})

	t.Run("strips disallowed symbols", func(t *testing.T) {
		t.Parallel()

		got, err := goquery.NewSanitizer().Sanitize(`<html><body><main>Rate: $40/hr ★★★ <3</main></body></html>`)

		require.NoError(t, err)
		assert.Equal(t, "Rate: $40/hr 3", got)
	})

	t.Run("bounds the output", func(t *testing.T) {
		t.Parallel()

		html := "<html><body><main>" + strings.Repeat("élan vital ", 1000) + "</main></body></html>"

		got, err := goquery.NewSanitizer().Sanitize(html)

		require.NoError(t, err)
		assert.LessOrEqual(t, len(got), profilescan.MaxRawContent)
		assert.True(t, utf8.ValidString(got))
	})

	t.Run("returns empty for an empty document", func(t *testing.T) {
		t.Parallel()

		got, err := goquery.NewSanitizer().Sanitize("")

		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
