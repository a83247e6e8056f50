package ingest

import "strings"

// Chunk sizing is fixed at this layer. Sized so chunks stay well inside
// embedding-call limits while the overlap preserves cross-chunk context.
const (
	ChunkSize    = 1000
	ChunkOverlap = 200
)

// SplitText splits normalized text into overlapping windows. Break points
// prefer paragraph, then line, then word boundaries inside the tail of
// each window so chunks do not cut words mid-way when avoidable.
func SplitText(text string, chunkSize, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + chunkSize
		if end >= len(runes) {
			chunks = append(chunks, strings.TrimSpace(string(runes[start:])))
			break
		}

		cut := findBreak(runes, start, end)
		chunk := strings.TrimSpace(string(runes[start:cut]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := cut - overlap
		if next <= start {
			next = cut
		}
		start = next
	}
	return chunks
}

// findBreak searches backwards from end for a natural boundary, but never
// further back than half a chunk so pathological input still advances.
func findBreak(runes []rune, start, end int) int {
	limit := start + (end-start)/2
	for _, sep := range []string{"\n\n", "\n", " "} {
		for i := end; i > limit; i-- {
			if matchesAt(runes, i-len([]rune(sep)), sep) {
				return i
			}
		}
	}
	return end
}

func matchesAt(runes []rune, pos int, sep string) bool {
	sepRunes := []rune(sep)
	if pos < 0 || pos+len(sepRunes) > len(runes) {
		return false
	}
	for i, r := range sepRunes {
		if runes[pos+i] != r {
			return false
		}
	}
	return true
}
