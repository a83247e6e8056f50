package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"wide-toebox-be/internal/pkg/apperr"
)

// URLEntry is one page listed in a sitemap.
type URLEntry struct {
	URL     string
	LastMod string
}

var httpClient = &http.Client{Timeout: 60 * time.Second}

// FetchURL fetches a URL body as a string. Non-200 responses fail with a
// SourceUnavailableError so callers can skip the item and continue.
func FetchURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &apperr.SourceUnavailableError{Source: url, Err: err}
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return "", &apperr.SourceUnavailableError{Source: url, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", &apperr.SourceUnavailableError{
			Source: url,
			Err:    fmt.Errorf("unexpected status %d", res.StatusCode),
		}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &apperr.SourceUnavailableError{Source: url, Err: err}
	}
	return string(body), nil
}

var (
	urlBlockRegex = regexp.MustCompile(`(?s)<url>(.*?)</url>`)
	locRegex      = regexp.MustCompile(`<loc>(.*?)</loc>`)
	lastmodRegex  = regexp.MustCompile(`<lastmod>(.*?)</lastmod>`)
)

// ParseSitemap extracts (url, lastmod) pairs from sitemap XML with plain
// regex matching. Sitemaps in the wild are too inconsistent for strict
// XML parsing to be worth the failure modes.
func ParseSitemap(content string) []URLEntry {
	var entries []URLEntry
	for _, block := range urlBlockRegex.FindAllStringSubmatch(content, -1) {
		locMatch := locRegex.FindStringSubmatch(block[1])
		if locMatch == nil {
			continue
		}
		entry := URLEntry{URL: strings.TrimSpace(locMatch[1])}
		if lastmodMatch := lastmodRegex.FindStringSubmatch(block[1]); lastmodMatch != nil {
			entry.LastMod = strings.TrimSpace(lastmodMatch[1])
		}
		entries = append(entries, entry)
	}
	return entries
}

// IsSitemapIndex reports whether the fetched body is a sitemap-of-sitemaps.
func IsSitemapIndex(content string) bool {
	return strings.Contains(content, "<sitemapindex")
}

// ParseSitemapIndex extracts the child sitemap URLs from an index.
func ParseSitemapIndex(content string) []string {
	var urls []string
	for _, match := range locRegex.FindAllStringSubmatch(content, -1) {
		urls = append(urls, strings.TrimSpace(match[1]))
	}
	return urls
}
