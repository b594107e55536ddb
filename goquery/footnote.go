package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Defaults cover the footnote markup of the generators seen so far:
// PHP Markdown Extra / goldmark ("footnote-backref", "#fnref" targets) and
// pandoc ("footnote-back").
var (
	defaultFootnoteContainers = []string{
		"div.footnotes",
		"section.footnotes",
		"ol.footnotes",
		"div#footnotes",
	}
	defaultBackrefMatchers = []string{
		"a.footnote-backref",
		"a.footnote-back",
		`a[href^="#fnref"]`,
	}
)

// footnoteOrdinalRe pulls the trailing integer out of a footnote identifier
// ("fn:12" or "fn12" yield 12).
var footnoteOrdinalRe = regexp.MustCompile(`([0-9]+)$`)

type footnote struct {
	id      string
	ordinal int        // trailing integer in the identifier, 0 if none
	body    *html.Node // clone of the footnote item, back-references stripped
}

// footnoteIndex is the document-level footnote lookup shared by all sections.
type footnoteIndex struct {
	byID map[string]*footnote

	// container is the matched footnote container element. Commentary
	// assembly skips it so raw footnote markup never leaks into a section.
	container *html.Node
}

// collectFootnotes builds the footnote index from the first matching
// container. Each footnote item is cloned with its back-reference anchors
// removed, so resolved bodies never link back into the main text.
func (e *Extractor) collectFootnotes(doc *goquery.Document) *footnoteIndex {
	idx := &footnoteIndex{byID: make(map[string]*footnote)}

	var container *goquery.Selection
	for _, sel := range e.footnoteContainers {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			container = s
			break
		}
	}
	if container == nil {
		return idx
	}
	idx.container = container.Get(0)

	container.Find("li[id]").Each(func(_ int, item *goquery.Selection) {
		id, _ := item.Attr("id")
		if id == "" || idx.byID[id] != nil {
			return
		}

		clone := cloneTree(item.Get(0))
		cdoc := goquery.NewDocumentFromNode(clone)
		for _, m := range e.backrefMatchers {
			cdoc.Find(m).Remove()
		}

		fn := &footnote{id: id, body: clone}
		if m := footnoteOrdinalRe.FindStringSubmatch(id); m != nil {
			fn.ordinal, _ = strconv.Atoi(m[1])
		}
		idx.byID[id] = fn
	})

	return idx
}

// owns reports whether n is the footnote container or an ancestor of it.
func (idx *footnoteIndex) owns(n *html.Node) bool {
	for c := idx.container; c != nil; c = c.Parent {
		if c == n {
			return true
		}
	}
	return false
}

// resolve maps a local fragment href to a known footnote identifier.
func (idx *footnoteIndex) resolve(href string) (string, bool) {
	if !strings.HasPrefix(href, "#") {
		return "", false
	}
	id := strings.TrimPrefix(href, "#")
	if _, ok := idx.byID[id]; !ok {
		return "", false
	}
	return id, true
}

// buildList assembles the ordered list appended after commentary, one item
// per referenced footnote in first-reference order. Items carry an explicit
// value attribute so numbering matches the source document's footnote
// identifiers whenever those end in a parseable integer.
func (idx *footnoteIndex) buildList(refs []string) *html.Node {
	ol := &html.Node{Type: html.ElementNode, DataAtom: atom.Ol, Data: "ol"}
	for _, id := range refs {
		fn := idx.byID[id]
		li := &html.Node{Type: html.ElementNode, DataAtom: atom.Li, Data: "li"}
		if fn.ordinal > 0 {
			li.Attr = []html.Attribute{{Key: "value", Val: strconv.Itoa(fn.ordinal)}}
		}
		for c := fn.body.FirstChild; c != nil; c = c.NextSibling {
			li.AppendChild(cloneTree(c))
		}
		ol.AppendChild(li)
	}
	return ol
}
