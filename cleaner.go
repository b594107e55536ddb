package demonchart

// CleanResult holds the isolated article content from a full page.
type CleanResult struct {
	// Title is the post title extracted from metadata.
	Title string

	// ContentHTML is the article body as HTML with boilerplate
	// (nav, sidebar, comments) removed.
	ContentHTML string
}

// Cleaner isolates the main article content from a full HTML page.
// Blog templates surround the post with navigation and widgets that can
// carry stray headings; cleaning before extraction keeps those out of the
// section scan. Links and images inside the article must be preserved.
type Cleaner interface {
	Clean(html string) (*CleanResult, error)
}
