// Package graph wires the conversation pipeline: classify the turn,
// fetch shoe data, generate a document query, retrieve reviews, and
// compose the final answer.
package graph

import (
	"context"
	"strings"
	"time"

	"wide-toebox-be/internal/pkg/logger"
	"wide-toebox-be/pkg/embedding"
	"wide-toebox-be/pkg/llm"
	"wide-toebox-be/pkg/rag"
	"wide-toebox-be/pkg/rag/prompt"
	"wide-toebox-be/pkg/rag/query"
	"wide-toebox-be/pkg/rag/retriever"
	"wide-toebox-be/pkg/rag/state"
	"wide-toebox-be/pkg/vectorstore"
)

type node int

const (
	nodeFetchShoeData node = iota
	nodeGenerateQuery
	nodeRespond
)

// Graph runs a single conversation turn end to end over the shared
// ConversationState.
type Graph struct {
	cfg      rag.Options
	searcher *query.Searcher
	response llm.Provider
	querier  llm.Provider
	openCfg  vectorstore.OpenConfig
	embedder embedding.Provider
	log      logger.ILogger
}

func NewGraph(
	cfg rag.Options,
	searcher *query.Searcher,
	responseProvider llm.Provider,
	queryProvider llm.Provider,
	openCfg vectorstore.OpenConfig,
	embedder embedding.Provider,
	log logger.ILogger,
) *Graph {
	return &Graph{
		cfg:      cfg,
		searcher: searcher,
		response: responseProvider,
		querier:  queryProvider,
		openCfg:  openCfg,
		embedder: embedder,
		log:      log,
	}
}

// Run executes the pipeline for the current state and appends exactly
// one assistant message on success.
func (g *Graph) Run(ctx context.Context, st *state.ConversationState) error {
	next := g.routeInitial(ctx, st)

	if next == nodeFetchShoeData {
		if err := g.FetchShoeData(ctx, st); err != nil {
			return err
		}
		next = g.routeAfterShoeData(ctx, st)
	}

	if next == nodeGenerateQuery {
		if err := g.GenerateQuery(ctx, st); err != nil {
			return err
		}
		if err := g.Retrieve(ctx, st); err != nil {
			return err
		}
	}

	return g.Respond(ctx, st)
}

// routeInitial decides whether the turn warrants a database lookup.
// Non-user turns and classifier failures skip straight to query
// generation.
func (g *Graph) routeInitial(ctx context.Context, st *state.ConversationState) node {
	if !st.LastIsUser() {
		return nodeGenerateQuery
	}
	last, _ := st.LastMessage()

	if g.classify(ctx, prompt.ShouldLookupShoePrompt, last.Content) {
		return nodeFetchShoeData
	}
	return nodeGenerateQuery
}

// routeAfterShoeData decides whether review documents are still needed
// once shoe data is in hand. Non-user turns and classifier failures go
// straight to the response.
func (g *Graph) routeAfterShoeData(ctx context.Context, st *state.ConversationState) node {
	if !st.LastIsUser() {
		return nodeRespond
	}
	last, _ := st.LastMessage()

	system := strings.ReplaceAll(prompt.ShouldRetrieveDocsPrompt, "{shoes}", prompt.FormatShoeData(st.RelevantShoes))
	if g.classify(ctx, system, last.Content) {
		return nodeGenerateQuery
	}
	return nodeRespond
}

func (g *Graph) classify(ctx context.Context, systemPrompt, userText string) bool {
	answer, err := g.querier.Chat(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userText},
	}, llm.WithTemperature(0))
	if err != nil {
		g.log.Warn("graph", "classification failed, taking default route", map[string]interface{}{
			"error": err.Error(),
		})
		return false
	}
	return strings.Contains(strings.ToUpper(answer), "YES")
}

// FetchShoeData translates the latest user message into a structured
// shoe search and stores the results on the state.
func (g *Graph) FetchShoeData(ctx context.Context, st *state.ConversationState) error {
	text := lastUserContent(st)
	if text == "" {
		st.ReplaceShoes(nil)
		return nil
	}

	shoes, err := g.searcher.Search(ctx, text)
	if err != nil {
		return err
	}
	st.ReplaceShoes(shoes)
	g.log.Info("graph", "shoe data fetched", map[string]interface{}{
		"results": len(shoes),
	})
	return nil
}

// searchQuery is the structured output of the query generation node.
type searchQuery struct {
	Query string `json:"query" validate:"required"`
}

// GenerateQuery produces the next document search query. The very
// first human turn is used verbatim; later turns ask the model for a
// refinement informed by prior queries and the shoe data.
func (g *Graph) GenerateQuery(ctx context.Context, st *state.ConversationState) error {
	if len(st.Messages) == 1 {
		if last, ok := st.LastMessage(); ok {
			st.AppendQueries(last.Content)
			return nil
		}
	}

	system := strings.NewReplacer(
		"{queries}", formatQueries(st.Queries),
		"{shoes}", prompt.FormatShoeData(st.RelevantShoes),
		"{systemTime}", systemTime(),
	).Replace(g.cfg.QueryPromptTemplate)

	var out searchQuery
	input := system + "\n\nUser question: " + lastUserContent(st)
	if err := llm.GenerateStructured(ctx, g.querier, input, &out, llm.WithTemperature(0)); err != nil {
		return err
	}
	st.AppendQueries(out.Query)
	return nil
}

// Retrieve runs the latest query against the persisted vector store.
// A missing or empty store is surfaced as is so the caller can tell
// indexing has not happened yet; a failed search degrades to an
// answer without documents.
func (g *Graph) Retrieve(ctx context.Context, st *state.ConversationState) error {
	store, err := vectorstore.OpenExisting(ctx, g.openCfg, g.embedder)
	if err != nil {
		return err
	}

	q, ok := st.LastQuery()
	if !ok {
		st.ReplaceDocs(nil)
		return nil
	}

	docs, err := retriever.Retrieve(ctx, store, q, g.cfg.RecencyWeight)
	if err != nil {
		g.log.Warn("graph", "document retrieval failed, answering without documents", map[string]interface{}{
			"query": q,
			"error": err.Error(),
		})
		st.ReplaceDocs(nil)
		return nil
	}
	st.ReplaceDocs(docs)
	g.log.Info("graph", "documents retrieved", map[string]interface{}{
		"query":   q,
		"results": len(docs),
	})
	return nil
}

// Respond composes the final answer from the shoe data, retrieved
// documents, and conversation history, appending it as an assistant
// turn.
func (g *Graph) Respond(ctx context.Context, st *state.ConversationState) error {
	system := strings.NewReplacer(
		"{retrievedDocs}", prompt.FormatDocs(st.RetrievedDocs),
		"{shoes}", prompt.FormatShoeData(st.RelevantShoes),
		"{systemTime}", systemTime(),
	).Replace(g.cfg.ResponsePromptTemplate)

	history := make([]llm.Message, 0, len(st.Messages)+1)
	history = append(history, llm.Message{Role: "system", Content: system})
	history = append(history, st.Messages...)

	answer, err := g.response.Chat(ctx, history)
	if err != nil {
		return err
	}
	st.AppendMessages(llm.Message{Role: "assistant", Content: answer})
	return nil
}

func lastUserContent(st *state.ConversationState) string {
	for i := len(st.Messages) - 1; i >= 0; i-- {
		if st.Messages[i].Role == "user" {
			return st.Messages[i].Content
		}
	}
	return ""
}

func formatQueries(queries []string) string {
	if len(queries) == 0 {
		return "(none)"
	}
	return "- " + strings.Join(queries, "\n- ")
}

func systemTime() string {
	return time.Now().UTC().Format(time.RFC3339)
}
