// Package trafilatura wraps go-trafilatura to isolate the article body of
// the source post, keeping template boilerplate out of the section scan.
package trafilatura

import (
	"bytes"
	"strings"

	"demonchart"

	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Cleaner implements demonchart.Cleaner at compile time.
var _ demonchart.Cleaner = (*Cleaner)(nil)

// Cleaner extracts main content from HTML using go-trafilatura.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean processes raw HTML and returns the article content.
// Links and images are preserved: the record extractor classifies category
// links and keeps image-only commentary elements, so stripping them here
// would corrupt extraction downstream.
func (c *Cleaner) Clean(rawHTML string) (*demonchart.CleanResult, error) {
	if rawHTML == "" {
		return nil, demonchart.Errorf(demonchart.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		IncludeLinks:   true,
		IncludeImages:  true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &demonchart.CleanResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
