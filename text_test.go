package profilescan_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/profilescan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	t.Parallel()

	t.Run("collapses whitespace and trims", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Logo design by Jane", profilescan.CleanText("  Logo\n\n design\t by   Jane  "))
	})

	t.Run("strips symbols and control characters", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Rated 4.9 (120 reviews) - $40/hr", profilescan.CleanText("Rated ★ 4.9 (120 reviews) \x00- $40/hr ✨"))
	})

	t.Run("keeps non-ASCII letters", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Diseñadora gráfica", profilescan.CleanText("Diseñadora gráfica"))
	})

	t.Run("truncates to the byte budget on a rune boundary", func(t *testing.T) {
		t.Parallel()

		got := profilescan.CleanText(strings.Repeat("é", profilescan.MaxRawContent))

		assert.LessOrEqual(t, len(got), profilescan.MaxRawContent)
		assert.True(t, utf8.ValidString(got))
	})

	t.Run("drops invalid UTF-8", func(t *testing.T) {
		t.Parallel()

		got := profilescan.CleanText("abc\xffdef")

		assert.Equal(t, "abcdef", got)
	})
}

func TestBuildProfileFromText(t *testing.T) {
	t.Parallel()

	t.Run("extracts title, description and pricing", func(t *testing.T) {
		t.Parallel()

		p, err := profilescan.BuildProfileFromText(profilescan.PlatformUpwork, "Jane Doe\nSenior React Developer, $40 budget mentioned")

		require.NoError(t, err)
		assert.Equal(t, profilescan.PlatformUpwork, p.Platform)
		assert.Equal(t, "Jane Doe", p.Title)
		assert.Equal(t, "Senior React Developer, $40 budget mentioned", p.Description)
		assert.Equal(t, "$40", p.Pricing)
		assert.Equal(t, []string{"react"}, p.Skills)
		assert.NotNil(t, p.Tags)
		assert.Empty(t, p.Experience)
		assert.Empty(t, p.Rating)
		assert.Empty(t, p.Reviews)
		require.NoError(t, p.Validate())
	})

	t.Run("matches tag vocabulary", func(t *testing.T) {
		t.Parallel()

		p, err := profilescan.BuildProfileFromText(profilescan.PlatformFiverr, "Jane Doe\nWeb development and SEO for small shops")

		require.NoError(t, err)
		assert.Equal(t, []string{"web", "development", "seo"}, p.Tags)
	})

	t.Run("caps keyword matches at five", func(t *testing.T) {
		t.Parallel()

		p, err := profilescan.BuildProfileFromText(profilescan.PlatformFiverr, "javascript react node python html css php wordpress")

		require.NoError(t, err)
		assert.Equal(t, []string{"javascript", "react", "node", "python", "html"}, p.Skills)
	})

	t.Run("uses placeholders for missing description and pricing", func(t *testing.T) {
		t.Parallel()

		p, err := profilescan.BuildProfileFromText(profilescan.PlatformLinkedIn, "Jane Doe")

		require.NoError(t, err)
		assert.Equal(t, profilescan.TextDescriptionPlaceholder, p.Description)
		assert.Equal(t, profilescan.TextPricingPlaceholder, p.Pricing)
	})

	t.Run("joins only the second and third lines into the description", func(t *testing.T) {
		t.Parallel()

		p, err := profilescan.BuildProfileFromText(profilescan.PlatformFreelancer, "Title\nLine two\r\nLine three\nLine four")

		require.NoError(t, err)
		assert.Equal(t, "Line two Line three", p.Description)
	})

	t.Run("truncates long titles", func(t *testing.T) {
		t.Parallel()

		p, err := profilescan.BuildProfileFromText(profilescan.PlatformFiverr, strings.Repeat("x", 150))

		require.NoError(t, err)
		assert.Len(t, p.Title, 100)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		t.Parallel()

		_, err := profilescan.BuildProfileFromText(profilescan.PlatformFiverr, "  \n ")

		require.Error(t, err)
		assert.Equal(t, profilescan.EINVALID, profilescan.ErrorCode(err))
	})

	t.Run("rejects unknown platforms", func(t *testing.T) {
		t.Parallel()

		_, err := profilescan.BuildProfileFromText("behance", "Jane Doe")

		require.Error(t, err)
		assert.Equal(t, profilescan.EUNSUPPORTED, profilescan.ErrorCode(err))
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		a, err := profilescan.BuildProfileFromText(profilescan.PlatformUpwork, "Jane\nReact and node")
		require.NoError(t, err)
		b, err := profilescan.BuildProfileFromText(profilescan.PlatformUpwork, "Jane\nReact and node")
		require.NoError(t, err)

		assert.Equal(t, a, b)
		assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	})
}
