package query

import "strings"

var stopwords = map[string]bool{
	"what": true, "which": true, "where": true, "when": true,
	"how": true, "that": true, "this": true, "with": true,
	"from": true, "have": true, "your": true,
}

// FallbackKeywords extracts search tokens from a raw query for the
// degraded path: lowercase, split on whitespace, drop short words and
// stopwords.
func FallbackKeywords(queryText string) []string {
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(queryText)) {
		if len(word) > 3 && !stopwords[word] {
			keywords = append(keywords, word)
		}
	}
	return keywords
}
