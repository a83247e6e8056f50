package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wide-toebox-be/internal/entity"
	"wide-toebox-be/pkg/llm"
	"wide-toebox-be/pkg/vectorstore"
)

func TestMessagesAccumulate(t *testing.T) {
	st := &ConversationState{}

	st.AppendMessages(llm.Message{Role: "user", Content: "first"})
	st.AppendMessages(
		llm.Message{Role: "assistant", Content: "second"},
		llm.Message{Role: "user", Content: "third"},
	)

	assert.Len(t, st.Messages, 3)
	last, ok := st.LastMessage()
	assert.True(t, ok)
	assert.Equal(t, "third", last.Content)
}

func TestLastMessageEmpty(t *testing.T) {
	st := &ConversationState{}
	_, ok := st.LastMessage()
	assert.False(t, ok)
	assert.False(t, st.LastIsUser())
}

func TestLastIsUser(t *testing.T) {
	st := &ConversationState{}
	st.AppendMessages(llm.Message{Role: "user", Content: "hi"})
	assert.True(t, st.LastIsUser())

	st.AppendMessages(llm.Message{Role: "assistant", Content: "hello"})
	assert.False(t, st.LastIsUser())
}

func TestQueriesAccumulate(t *testing.T) {
	st := &ConversationState{}

	_, ok := st.LastQuery()
	assert.False(t, ok)

	st.AppendQueries("zero drop reviews")
	st.AppendQueries("lone peak durability")

	assert.Len(t, st.Queries, 2)
	last, ok := st.LastQuery()
	assert.True(t, ok)
	assert.Equal(t, "lone peak durability", last)
}

func TestShoesAndDocsReplace(t *testing.T) {
	st := &ConversationState{}

	st.ReplaceShoes([]*entity.Shoe{{Brand: "Altra"}, {Brand: "Topo"}})
	st.ReplaceShoes([]*entity.Shoe{{Brand: "Xero"}})
	assert.Len(t, st.RelevantShoes, 1)
	assert.Equal(t, "Xero", st.RelevantShoes[0].Brand)

	st.ReplaceDocs([]vectorstore.ScoredDocument{{Score: 0.9}})
	st.ReplaceDocs(nil)
	assert.Empty(t, st.RetrievedDocs)
}
