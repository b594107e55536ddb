package demonchart

// Converter transforms an HTML fragment into Markdown.
// Used to render record commentary for terminal display and file export.
type Converter interface {
	Convert(html string) (string, error)

	// ConvertRecord renders a full record, metadata plus commentary,
	// as a standalone Markdown document.
	ConvertRecord(rec *Record) (string, error)
}
