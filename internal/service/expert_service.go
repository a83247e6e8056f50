package service

import (
	"context"
	"errors"

	"wide-toebox-be/internal/dto"
	"wide-toebox-be/internal/pkg/logger"
	"wide-toebox-be/pkg/embedding"
	"wide-toebox-be/pkg/llm"
	"wide-toebox-be/pkg/rag"
	"wide-toebox-be/pkg/rag/graph"
	"wide-toebox-be/pkg/rag/query"
	"wide-toebox-be/pkg/rag/state"
	"wide-toebox-be/pkg/vectorstore"
)

type IExpertService interface {
	Ask(ctx context.Context, req *dto.AskExpertRequest) (*dto.AskExpertResponse, error)
}

type expertService struct {
	baseOptions rag.Options
	openCfg     vectorstore.OpenConfig
	searcher    *query.Searcher
	response    llm.Provider
	querier     llm.Provider
	embedder    embedding.Provider
	log         logger.ILogger
}

func NewExpertService(
	baseOptions rag.Options,
	openCfg vectorstore.OpenConfig,
	searcher *query.Searcher,
	responseProvider llm.Provider,
	queryProvider llm.Provider,
	embedder embedding.Provider,
	log logger.ILogger,
) IExpertService {
	return &expertService{
		baseOptions: baseOptions,
		openCfg:     openCfg,
		searcher:    searcher,
		response:    responseProvider,
		querier:     queryProvider,
		embedder:    embedder,
		log:         log,
	}
}

func (s *expertService) Ask(ctx context.Context, req *dto.AskExpertRequest) (*dto.AskExpertResponse, error) {
	options := s.baseOptions
	if req.UserID != "" {
		options.UserID = req.UserID
	}
	if req.RecencyWeight != nil {
		options.RecencyWeight = *req.RecencyWeight
		options.RecencyWeightZero = *req.RecencyWeight == 0
	}
	options = rag.EnsureConfiguration(options)

	openCfg := s.openCfg
	openCfg.UserID = options.UserID

	st := &state.ConversationState{}
	for _, msg := range req.Messages {
		st.AppendMessages(llm.Message{Role: msg.Role, Content: msg.Content})
	}

	g := graph.NewGraph(options, s.searcher, s.response, s.querier, openCfg, s.embedder, s.log)
	if err := g.Run(ctx, st); err != nil {
		return nil, err
	}

	last, ok := st.LastMessage()
	if !ok || last.Role != "assistant" {
		return nil, errors.New("pipeline produced no answer")
	}

	res := &dto.AskExpertResponse{
		Answer:  last.Content,
		Queries: st.Queries,
		Shoes:   ToShoeResponses(st.RelevantShoes),
	}
	for _, doc := range st.RetrievedDocs {
		res.Documents = append(res.Documents, dto.RetrievedDocumentResponse{
			Source:       doc.Metadata.Source,
			Title:        doc.Metadata.Title,
			LastModified: doc.Metadata.LastModified,
			Score:        doc.Score,
			Content:      doc.PageContent,
		})
	}
	return res, nil
}
