// Package goquery provides the CSS-selector based record extractor.
// It turns the source post's heading-delimited sections into ordered
// demonchart records.
package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"demonchart"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Ensure Extractor implements demonchart.RecordExtractor at compile time.
var _ demonchart.RecordExtractor = (*Extractor)(nil)

// headingSelector marks section boundaries: an h3 opens a section, and any
// heading closes the one before it.
const headingSelector = "h1, h2, h3, h4, h5, h6"

var (
	// difficultyRe matches the labeled numeric field, e.g.
	// "Difficulty value: 1,234.5". Thousands separators are stripped
	// before parsing.
	difficultyRe = regexp.MustCompile(`(?i)difficulty\s+value:\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)

	// attributionRe splits "<title> by <attribution>" or
	// "<title> - <attribution>" headings.
	attributionRe = regexp.MustCompile(`(?i)^(.+?)\s+(?:by|-)\s+(.+)$`)
)

// Link category markers, matched case-insensitively against both the link
// URL and its text.
var (
	primaryMarkers   = []string{"youtube.com", "youtu.be", "youtube"}
	secondaryMarkers = []string{"gdbrowser.com", "gdbrowser"}
)

// Option configures an Extractor.
type Option func(*Extractor)

// WithFootnoteContainers overrides the selectors used to locate the
// document-level footnote container. The first selector with a match wins.
func WithFootnoteContainers(selectors ...string) Option {
	return func(e *Extractor) {
		e.footnoteContainers = selectors
	}
}

// WithBackrefMatchers overrides the selectors identifying back-reference
// anchors inside footnote bodies (links pointing back to the main text).
// Document generators have marked these several ways over the years, so the
// set is configurable rather than hard-coded.
func WithBackrefMatchers(selectors ...string) Option {
	return func(e *Extractor) {
		e.backrefMatchers = selectors
	}
}

// Extractor parses the source post into records.
type Extractor struct {
	footnoteContainers []string
	backrefMatchers    []string
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		footnoteContainers: defaultFootnoteContainers,
		backrefMatchers:    defaultBackrefMatchers,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses rawHTML and returns one record per h3 section that carries
// a difficulty value, in heading order. Malformed sections are skipped, not
// reported; only an unparseable input is an error.
func (e *Extractor) Extract(rawHTML string) ([]*demonchart.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, demonchart.Errorf(demonchart.EINVALID, "failed to parse HTML: %v", err)
	}

	notes := e.collectFootnotes(doc)

	var records []*demonchart.Record
	doc.Find("h3").Each(func(_ int, heading *goquery.Selection) {
		rec := e.extractSection(heading, notes)
		if rec == nil {
			return
		}
		rec.Position = len(records)
		records = append(records, rec)
	})

	return records, nil
}

// extractSection parses one heading-delimited section. Returns nil when the
// section has no difficulty line or no usable name.
func (e *Extractor) extractSection(heading *goquery.Selection, notes *footnoteIndex) *demonchart.Record {
	name, author := splitHeading(heading.Text())
	if name == "" {
		return nil
	}

	content := heading.NextUntil(headingSelector)

	valueIdx := -1
	var value float64
	content.EachWithBreak(func(i int, sel *goquery.Selection) bool {
		v, ok := parseDifficulty(sel.Text())
		if !ok {
			return true
		}
		valueIdx, value = i, v
		return false
	})
	if valueIdx < 0 {
		return nil
	}

	links := scanLinks(content, valueIdx)

	return &demonchart.Record{
		Name:             name,
		Author:           author,
		Value:            value,
		PrimaryLinkURL:   links.primary,
		SecondaryLinkURL: links.secondary,
		CommentaryHTML:   e.buildCommentary(content, valueIdx, links, notes),
	}
}

// splitHeading separates "<title> by <attribution>" or
// "<title> - <attribution>". With no separator the whole heading is the name.
func splitHeading(text string) (name, author string) {
	text = strings.TrimSpace(text)
	if m := attributionRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return text, ""
}

// parseDifficulty extracts the labeled numeric value from element text.
func parseDifficulty(text string) (float64, bool) {
	m := difficultyRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

type linkCategory int

const (
	linkNone linkCategory = iota
	linkPrimary
	linkSecondary
)

// classifyLink categorizes a hyperlink by URL or text markers.
// Primary markers are checked first, so a link matching both is primary.
func classifyLink(href, text string) linkCategory {
	href, text = strings.ToLower(href), strings.ToLower(text)
	for _, marker := range primaryMarkers {
		if strings.Contains(href, marker) || strings.Contains(text, marker) {
			return linkPrimary
		}
	}
	for _, marker := range secondaryMarkers {
		if strings.Contains(href, marker) || strings.Contains(text, marker) {
			return linkSecondary
		}
	}
	return linkNone
}

// sectionLinks holds the outcome of the section link scan.
type sectionLinks struct {
	primary   string
	secondary string

	// elemIdx is the content index of the element that yielded the first
	// recognized category link; -1 when no category link was found.
	elemIdx int
	found   bool

	// excluded holds URLs of category links that shared an element with the
	// difficulty line; those anchors are removed from commentary clones.
	excluded map[string]bool
}

// scanLinks classifies section hyperlinks by category, first occurrence per
// category winning. The scan stops after the first element that yields any
// category link, so a category link in a later element is never seen even if
// its category is still unfilled.
func scanLinks(content *goquery.Selection, valueIdx int) sectionLinks {
	links := sectionLinks{elemIdx: -1, excluded: make(map[string]bool)}
	content.EachWithBreak(func(i int, sel *goquery.Selection) bool {
		foundHere := false
		sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			cat := classifyLink(href, a.Text())
			if cat == linkNone {
				return
			}
			foundHere = true
			if i == valueIdx {
				links.excluded[href] = true
			}
			switch cat {
			case linkPrimary:
				if links.primary == "" {
					links.primary = href
				}
			case linkSecondary:
				if links.secondary == "" {
					links.secondary = href
				}
			}
		})
		if foundHere {
			links.found = true
			links.elemIdx = i
			return false
		}
		return true
	})
	return links
}

// buildCommentary assembles the sanitized commentary fragment: section
// content after the difficulty line (and past the category-link element when
// that sits at or after it), with excluded anchors removed, footnote
// references unlinked, and the referenced footnotes appended as an ordered
// list. The document-level footnote container is skipped even when it falls
// inside the section's content range, as it does after the last heading.
func (e *Extractor) buildCommentary(content *goquery.Selection, valueIdx int, links sectionLinks, notes *footnoteIndex) string {
	start := valueIdx + 1
	if links.found && links.elemIdx >= valueIdx {
		start = links.elemIdx + 1
	}

	var kept []*html.Node
	var refs []string
	seen := make(map[string]bool)

	n := content.Length()
	for i := start; i < n; i++ {
		sel := content.Eq(i)
		if notes.owns(sel.Get(0)) {
			continue
		}
		if difficultyRe.MatchString(strings.TrimSpace(sel.Text())) {
			continue
		}

		clone := cloneTree(sel.Get(0))
		cdoc := goquery.NewDocumentFromNode(clone)
		cdoc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			node := a.Get(0)
			if links.excluded[href] {
				removeNode(node)
				return
			}
			if id, ok := notes.resolve(href); ok {
				unlink(node)
				if !seen[id] {
					seen[id] = true
					refs = append(refs, id)
				}
			}
		})

		if hasContent(clone, cdoc) {
			kept = append(kept, clone)
		}
	}

	if len(refs) > 0 {
		kept = append(kept, notes.buildList(refs))
	}

	var b strings.Builder
	for _, node := range kept {
		// Render only fails on unrenderable node shapes, which cloned
		// element subtrees never are.
		_ = html.Render(&b, node)
	}
	return b.String()
}

// hasContent reports whether a commentary clone still says something after
// sanitizing: non-whitespace text, or an image, blockquote, or list.
func hasContent(clone *html.Node, cdoc *goquery.Document) bool {
	if strings.TrimSpace(cdoc.Text()) != "" {
		return true
	}
	switch clone.Data {
	case "img", "blockquote", "ul", "ol":
		return true
	}
	return cdoc.Find("img, blockquote, ul, ol").Length() > 0
}
