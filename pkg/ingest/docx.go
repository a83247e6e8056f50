package ingest

import (
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"wide-toebox-be/internal/pkg/apperr"
)

var (
	paragraphCloseRegex = regexp.MustCompile(`</w:p>`)
	xmlTagRegex         = regexp.MustCompile(`<[^>]+>`)
)

// LoadDocxText extracts plain text from a word-processor document.
// Paragraph boundaries become newlines so chunking can break on them.
func LoadDocxText(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", &apperr.SourceUnavailableError{Source: path, Err: err}
	}

	reader, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", &apperr.SourceUnavailableError{Source: path, Err: err}
	}
	defer reader.Close()

	content := reader.Editable().GetContent()
	content = paragraphCloseRegex.ReplaceAllString(content, "\n")
	content = xmlTagRegex.ReplaceAllString(content, "")
	return strings.TrimSpace(html.UnescapeString(content)), nil
}

// supportedExtensions lists the local document formats the pipeline can
// extract text from.
var supportedExtensions = map[string]bool{
	".docx": true,
}

// ExpandDocumentPaths resolves a mixed list of files and directories into
// the supported files they contain. Missing paths and unsupported files
// are reported through the skip callback, never as an error.
func ExpandDocumentPaths(paths []string, skip func(path string, reason string)) []string {
	var files []string
	for _, docPath := range paths {
		info, err := os.Stat(docPath)
		if err != nil {
			skip(docPath, "path does not exist")
			continue
		}

		if !info.IsDir() {
			if !supportedExtensions[strings.ToLower(filepath.Ext(docPath))] {
				skip(docPath, "unsupported file type")
				continue
			}
			files = append(files, docPath)
			continue
		}

		entries, err := os.ReadDir(docPath)
		if err != nil {
			skip(docPath, "directory unreadable")
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if !supportedExtensions[strings.ToLower(filepath.Ext(name))] {
				continue
			}
			files = append(files, filepath.Join(docPath, name))
		}
	}
	return files
}
