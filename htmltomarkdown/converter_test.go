package htmltomarkdown_test

import (
	"testing"

	"demonchart"
	"demonchart/htmltomarkdown"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements demonchart.Converter at compile time.
var _ demonchart.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		html := `<p>One of the hardest levels ever verified.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "One of the hardest levels ever verified.")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		html := `<p>See the <a href="https://youtube.com/watch?v=abc">showcase</a> here.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[showcase](https://youtube.com/watch?v=abc)")
	})

	t.Run("converts bold and italic", func(t *testing.T) {
		t.Parallel()

		html := `<p><strong>Brutal</strong> wave section with <em>tight</em> timings.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "**Brutal**")
		assert.Contains(t, md, "*tight*")
	})

	t.Run("converts footnote list with explicit values", func(t *testing.T) {
		t.Parallel()

		html := `<p>Disputed placement.<sup>3</sup></p><ol><li value="3">See the verification thread.</li></ol>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Disputed placement.")
		assert.Contains(t, md, "See the verification thread.")
	})

	t.Run("converts blockquotes", func(t *testing.T) {
		t.Parallel()

		html := `<blockquote><p>Quote from the verifier.</p></blockquote>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "> Quote from the verifier.")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("")

		require.Error(t, err)
		assert.Equal(t, demonchart.EINVALID, demonchart.ErrorCode(err))
	})
}

func TestConverter_ConvertRecord(t *testing.T) {
	t.Parallel()

	t.Run("renders metadata and commentary", func(t *testing.T) {
		t.Parallel()

		rec := &demonchart.Record{
			Position:         2,
			Name:             "Silent Circles",
			Author:           "Sonic Wave",
			Value:            87.5,
			PrimaryLinkURL:   "https://youtube.com/watch?v=xyz",
			SecondaryLinkURL: "https://gdbrowser.com/123",
			CommentaryHTML:   `<p>A <strong>famous</strong> troll level.</p>`,
		}

		conv := htmltomarkdown.NewConverter()
		md, err := conv.ConvertRecord(rec)

		require.NoError(t, err)
		assert.Contains(t, md, "# 3. Silent Circles")
		assert.Contains(t, md, "- Author: Sonic Wave")
		assert.Contains(t, md, "- Value: 87.5")
		assert.Contains(t, md, "- Video: https://youtube.com/watch?v=xyz")
		assert.Contains(t, md, "- Browser: https://gdbrowser.com/123")
		assert.Contains(t, md, "**famous** troll level")
	})

	t.Run("trims trailing zeros from whole values", func(t *testing.T) {
		t.Parallel()

		rec := &demonchart.Record{Name: "Bloodbath", Value: 100}

		conv := htmltomarkdown.NewConverter()
		md, err := conv.ConvertRecord(rec)

		require.NoError(t, err)
		assert.Contains(t, md, "- Value: 100\n")
	})

	t.Run("omits missing fields", func(t *testing.T) {
		t.Parallel()

		rec := &demonchart.Record{Name: "Nameless", Value: 12}

		conv := htmltomarkdown.NewConverter()
		md, err := conv.ConvertRecord(rec)

		require.NoError(t, err)
		assert.NotContains(t, md, "Author:")
		assert.NotContains(t, md, "Video:")
		assert.NotContains(t, md, "Browser:")
	})

	t.Run("returns error for nil record", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.ConvertRecord(nil)

		require.Error(t, err)
		assert.Equal(t, demonchart.EINVALID, demonchart.ErrorCode(err))
	})
}
