package ingest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wide-toebox-be/internal/pkg/apperr"
)

const sampleSitemap = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url>
    <loc>https://example.com/reviews/altra-lone-peak</loc>
    <lastmod>2024-05-01</lastmod>
  </url>
  <url>
    <loc> https://example.com/reviews/topo-phantom </loc>
  </url>
</urlset>`

const sampleIndex = `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>https://example.com/sitemap-posts.xml</loc></sitemap>
  <sitemap><loc>https://example.com/sitemap-pages.xml</loc></sitemap>
</sitemapindex>`

func TestParseSitemap(t *testing.T) {
	entries := ParseSitemap(sampleSitemap)
	require.Len(t, entries, 2)

	assert.Equal(t, "https://example.com/reviews/altra-lone-peak", entries[0].URL)
	assert.Equal(t, "2024-05-01", entries[0].LastMod)

	assert.Equal(t, "https://example.com/reviews/topo-phantom", entries[1].URL, "loc values are trimmed")
	assert.Empty(t, entries[1].LastMod)
}

func TestParseSitemapNoEntries(t *testing.T) {
	assert.Empty(t, ParseSitemap("<urlset></urlset>"))
	assert.Empty(t, ParseSitemap("not xml at all"))
}

func TestIsSitemapIndex(t *testing.T) {
	assert.True(t, IsSitemapIndex(sampleIndex))
	assert.False(t, IsSitemapIndex(sampleSitemap))
}

func TestParseSitemapIndex(t *testing.T) {
	urls := ParseSitemapIndex(sampleIndex)
	assert.Equal(t, []string{
		"https://example.com/sitemap-posts.xml",
		"https://example.com/sitemap-pages.xml",
	}, urls)
}

func TestFetchURL(t *testing.T) {
	t.Run("returns the body on 200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("page body"))
		}))
		defer srv.Close()

		body, err := FetchURL(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "page body", body)
	})

	t.Run("non-200 is a source error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := FetchURL(context.Background(), srv.URL)
		var srcErr *apperr.SourceUnavailableError
		require.True(t, errors.As(err, &srcErr))
		assert.Equal(t, srv.URL, srcErr.Source)
	})

	t.Run("unreachable host is a source error", func(t *testing.T) {
		_, err := FetchURL(context.Background(), "http://127.0.0.1:1/sitemap.xml")
		var srcErr *apperr.SourceUnavailableError
		assert.True(t, errors.As(err, &srcErr))
	})
}

func TestURLContentHash(t *testing.T) {
	withMod := URLContentHash("https://example.com/a", "2024-05-01")
	withoutMod := URLContentHash("https://example.com/a", "")
	otherMod := URLContentHash("https://example.com/a", "2024-06-01")

	assert.NotEqual(t, withMod, withoutMod, "lastmod is part of the identity")
	assert.NotEqual(t, withMod, otherMod, "a new lastmod invalidates the old hash")
	assert.Equal(t, withMod, URLContentHash("https://example.com/a", "2024-05-01"), "deterministic")
	assert.Len(t, withMod, 32)
}

func TestBytesContentHash(t *testing.T) {
	a := BytesContentHash([]byte("review text"))
	b := BytesContentHash([]byte("review text"))
	c := BytesContentHash([]byte("different"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestNormalizeContent(t *testing.T) {
	t.Run("html becomes plain text", func(t *testing.T) {
		html := `<!DOCTYPE html><html><body><h1>Lone Peak</h1><p>Great trail shoe.</p></body></html>`
		text := NormalizeContent("https://example.com/review", html)
		assert.NotContains(t, text, "<p>")
		assert.Contains(t, text, "Great trail shoe.")
	})

	t.Run("plain text passes through", func(t *testing.T) {
		content := "just some markdown-ish text"
		assert.Equal(t, content, NormalizeContent("https://example.com/notes.txt", content))
	})

	t.Run("html extension forces conversion", func(t *testing.T) {
		text := NormalizeContent("https://example.com/page.html", "<b>bold</b> words")
		assert.NotContains(t, text, "<b>")
	})
}
