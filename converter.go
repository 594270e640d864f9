package fictionfetch

// Converter converts sanitized chapter HTML to Markdown for exports.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from a Sanitizer).
	Convert(html string) (string, error)
}
