// Package htmltomarkdown renders record commentary as Markdown for
// terminal display and file export.
package htmltomarkdown

import (
	"fmt"
	"strings"

	"demonchart"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// Ensure Converter implements demonchart.Converter at compile time.
var _ demonchart.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert commentary HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", demonchart.Errorf(demonchart.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}

// ConvertRecord renders a full record as a Markdown document: a heading
// with the level name, a metadata list, and the converted commentary.
// Records without commentary render metadata only.
func (c *Converter) ConvertRecord(rec *demonchart.Record) (string, error) {
	if rec == nil {
		return "", demonchart.Errorf(demonchart.EINVALID, "record is required")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %d. %s\n\n", rec.Position+1, rec.Name)
	if rec.Author != "" {
		fmt.Fprintf(&b, "- Author: %s\n", rec.Author)
	}
	fmt.Fprintf(&b, "- Value: %s\n", strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", rec.Value), "0"), "."))
	if rec.PrimaryLinkURL != "" {
		fmt.Fprintf(&b, "- Video: %s\n", rec.PrimaryLinkURL)
	}
	if rec.SecondaryLinkURL != "" {
		fmt.Fprintf(&b, "- Browser: %s\n", rec.SecondaryLinkURL)
	}

	if strings.TrimSpace(rec.CommentaryHTML) != "" {
		md, err := c.Convert(rec.CommentaryHTML)
		if err != nil {
			return "", err
		}
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(md))
		b.WriteString("\n")
	}

	return b.String(), nil
}
