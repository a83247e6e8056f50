package state

import (
	"wide-toebox-be/internal/entity"
	"wide-toebox-be/pkg/llm"
	"wide-toebox-be/pkg/vectorstore"
)

// ConversationState is the shared state the pipeline nodes communicate
// through. Messages and Queries accumulate append-only; RelevantShoes
// and RetrievedDocs are replaced on each run.
type ConversationState struct {
	Messages      []llm.Message
	Queries       []string
	RelevantShoes []*entity.Shoe
	RetrievedDocs []vectorstore.ScoredDocument
}

// AppendMessages concatenates new turns onto the history.
func (s *ConversationState) AppendMessages(msgs ...llm.Message) {
	s.Messages = append(s.Messages, msgs...)
}

// AppendQueries adds generated search queries, single or batch.
func (s *ConversationState) AppendQueries(queries ...string) {
	s.Queries = append(s.Queries, queries...)
}

// ReplaceShoes swaps in the latest structured-filter result set.
func (s *ConversationState) ReplaceShoes(shoes []*entity.Shoe) {
	s.RelevantShoes = shoes
}

// ReplaceDocs swaps in the latest similarity-search result set.
func (s *ConversationState) ReplaceDocs(docs []vectorstore.ScoredDocument) {
	s.RetrievedDocs = docs
}

// LastMessage returns the newest turn, or a zero Message when empty.
func (s *ConversationState) LastMessage() (llm.Message, bool) {
	if len(s.Messages) == 0 {
		return llm.Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

// LastIsUser reports whether the newest turn is user-authored. Routing
// only attempts structured filtering on user turns.
func (s *ConversationState) LastIsUser() bool {
	last, ok := s.LastMessage()
	return ok && last.Role == "user"
}

// LastQuery returns the newest generated search query.
func (s *ConversationState) LastQuery() (string, bool) {
	if len(s.Queries) == 0 {
		return "", false
	}
	return s.Queries[len(s.Queries)-1], true
}
