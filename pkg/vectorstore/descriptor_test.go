package vectorstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDescriptor(t *testing.T) {
	id := newStoreIdentity("openai/text-embedding-3-small", []string{"https://a.com/s.xml"}, nil)

	t.Run("missing descriptor is not a change", func(t *testing.T) {
		dir := t.TempDir()
		assert.False(t, checkDescriptor(dir, id))
	})

	t.Run("matching descriptor is not a change", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, writeDescriptor(dir, id))
		assert.False(t, checkDescriptor(dir, id))
	})

	t.Run("different sitemaps are a change", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, writeDescriptor(dir, id))

		other := newStoreIdentity("openai/text-embedding-3-small", []string{"https://b.com/s.xml"}, nil)
		assert.True(t, checkDescriptor(dir, other))
	})

	t.Run("different embedding model is a change", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, writeDescriptor(dir, id))

		other := newStoreIdentity("ollama/nomic-embed-text", []string{"https://a.com/s.xml"}, nil)
		assert.True(t, checkDescriptor(dir, other))
	})

	t.Run("corrupt descriptor is a change", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, descriptorFileName), []byte("{not json"), 0o644))
		assert.True(t, checkDescriptor(dir, id))
	})
}

func TestWriteDescriptorRecordsCreated(t *testing.T) {
	dir := t.TempDir()
	id := newStoreIdentity("m", nil, []string{"docs/reviews"})
	require.NoError(t, writeDescriptor(dir, id))

	raw, err := os.ReadFile(filepath.Join(dir, descriptorFileName))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"created"`)
	assert.Contains(t, string(raw), `"documentPaths"`)
}
