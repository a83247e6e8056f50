package ingest

import (
	"strings"

	"jaytaylor.com/html2text"
)

// looksLikeHTML sniffs content the same way a browser would have to:
// extension first, document markers second.
func looksLikeHTML(url, content string) bool {
	if strings.HasSuffix(url, ".html") || strings.HasSuffix(url, ".htm") {
		return true
	}
	return strings.Contains(content, "<!DOCTYPE html") ||
		strings.Contains(content, "<!doctype html") ||
		strings.Contains(content, "<html")
}

// NormalizeContent converts HTML to plain text and leaves everything else
// untouched. Conversion failures fall back to the raw content rather than
// dropping the document.
func NormalizeContent(url, content string) string {
	if !looksLikeHTML(url, content) {
		return content
	}
	text, err := html2text.FromString(content, html2text.Options{TextOnly: true})
	if err != nil {
		return content
	}
	return text
}
