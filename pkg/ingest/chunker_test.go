package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitText(t *testing.T) {
	t.Run("empty input yields no chunks", func(t *testing.T) {
		assert.Nil(t, SplitText("", ChunkSize, ChunkOverlap))
		assert.Nil(t, SplitText("   \n  ", ChunkSize, ChunkOverlap))
	})

	t.Run("short text is a single chunk", func(t *testing.T) {
		chunks := SplitText("zero drop shoes rule", ChunkSize, ChunkOverlap)
		require.Len(t, chunks, 1)
		assert.Equal(t, "zero drop shoes rule", chunks[0])
	})

	t.Run("text at exactly the chunk size stays whole", func(t *testing.T) {
		text := strings.Repeat("a", ChunkSize)
		chunks := SplitText(text, ChunkSize, ChunkOverlap)
		assert.Len(t, chunks, 1)
	})

	t.Run("long text produces multiple chunks within the size limit", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < 300; i++ {
			b.WriteString("the altra lone peak has a wide toe box ")
		}
		chunks := SplitText(b.String(), ChunkSize, ChunkOverlap)
		require.Greater(t, len(chunks), 1)
		for _, chunk := range chunks {
			assert.LessOrEqual(t, len([]rune(chunk)), ChunkSize)
			assert.NotEmpty(t, chunk)
		}
	})

	t.Run("consecutive chunks overlap", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < 300; i++ {
			b.WriteString("word ")
		}
		chunks := SplitText(b.String(), 100, 20)
		require.Greater(t, len(chunks), 1)

		// the tail of one chunk reappears at the head of the next
		tail := chunks[0][len(chunks[0])-10:]
		assert.Contains(t, chunks[1][:40], strings.TrimSpace(tail))
	})

	t.Run("prefers paragraph breaks", func(t *testing.T) {
		para := strings.Repeat("x", 80)
		text := para + "\n\n" + para + "\n\n" + para
		chunks := SplitText(text, 100, 10)
		require.Greater(t, len(chunks), 1)
		assert.Equal(t, para, chunks[0])
	})

	t.Run("unbreakable text still advances", func(t *testing.T) {
		text := strings.Repeat("a", 5000)
		chunks := SplitText(text, 1000, 200)
		assert.Greater(t, len(chunks), 1)
		total := 0
		for _, chunk := range chunks {
			total += len(chunk)
		}
		assert.GreaterOrEqual(t, total, 5000)
	})
}
