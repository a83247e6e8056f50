package query

import (
	"context"
	"sort"

	"wide-toebox-be/internal/entity"
	"wide-toebox-be/internal/pkg/logger"
	"wide-toebox-be/internal/repository/contract"
	"wide-toebox-be/internal/repository/specification"
	"wide-toebox-be/pkg/llm"
)

// Searcher executes natural language shoe searches: translate to typed
// conditions, build filter specifications, run the query, post-sort.
type Searcher struct {
	repo contract.ShoeRepository
	llm  llm.Provider
	log  logger.ILogger
}

func NewSearcher(repo contract.ShoeRepository, provider llm.Provider, log logger.ILogger) *Searcher {
	return &Searcher{
		repo: repo,
		llm:  provider,
		log:  log,
	}
}

// Search answers a free-text shoe question with matching records.
// Translation failures degrade to keyword extraction rather than
// surfacing an error.
func (s *Searcher) Search(ctx context.Context, queryText string) ([]*entity.Shoe, error) {
	conditions, err := Translate(ctx, s.llm, queryText)
	if err != nil {
		s.log.Warn("query", "translation failed, falling back to keyword search", map[string]interface{}{
			"error": err.Error(),
		})
		return s.fallbackSearch(ctx, queryText)
	}
	return s.Execute(ctx, conditions)
}

// Execute runs typed conditions against the store. An empty condition
// set returns an empty result set, never the whole catalog.
func (s *Searcher) Execute(ctx context.Context, conditions *ShoeSearchConditions) ([]*entity.Shoe, error) {
	specs := BuildSpecifications(conditions)
	if len(specs) == 0 {
		return []*entity.Shoe{}, nil
	}

	specs = append(specs, buildSort(conditions)...)
	specs = append(specs, specification.Limit{N: conditions.EffectiveLimit()})

	shoes, err := s.repo.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	applyDropSort(conditions, shoes)
	return shoes, nil
}

func (s *Searcher) fallbackSearch(ctx context.Context, queryText string) ([]*entity.Shoe, error) {
	keywords := FallbackKeywords(queryText)
	if len(keywords) == 0 {
		return []*entity.Shoe{}, nil
	}

	shoes, err := s.repo.FindAll(ctx,
		specification.AnyKeyword{Keywords: keywords},
		specification.Limit{N: MaxResults},
	)
	if err != nil {
		return nil, err
	}
	s.log.Info("query", "keyword fallback search completed", map[string]interface{}{
		"keywords": keywords,
		"results":  len(shoes),
	})
	return shoes, nil
}

// BuildSpecifications converts conditions into filter predicates. Sort
// directives are handled separately so callers can see whether any
// actual filter exists.
func BuildSpecifications(conditions *ShoeSearchConditions) []specification.Specification {
	var specs []specification.Specification

	for _, keyword := range conditions.Keywords {
		specs = append(specs, specification.ByKeyword{Keyword: keyword})
	}

	if stack := conditions.StackHeightMm.Spec; stack.hasBounds() {
		specs = append(specs, specification.StackHeightRange{Min: stack.Min, Max: stack.Max})
	}

	if drop := conditions.Drop.Spec; drop.hasBounds() {
		specs = append(specs, specification.DropRange{Min: drop.Min, Max: drop.Max})
	}

	if width := conditions.Width.Value(); width != "" {
		specs = append(specs, specification.ByWidth{Width: width})
	}
	if use := conditions.IntendedUse.Value(); use != "" {
		specs = append(specs, specification.ByIntendedUse{IntendedUse: use})
	}
	if gender := conditions.Gender.Value(); gender != "" {
		specs = append(specs, specification.ByGender{Gender: gender})
	}

	return specs
}

// buildSort emits store-side sort directives. Drop sorting is not
// delegated to the store, see applyDropSort.
func buildSort(conditions *ShoeSearchConditions) []specification.Specification {
	var specs []specification.Specification
	if stack := conditions.StackHeightMm.Spec; stack != nil && stack.Sort != "" {
		specs = append(specs, specification.OrderByStackHeight{Desc: stack.Sort == "desc"})
	}
	return specs
}

// applyDropSort re-orders results in memory by the computed drop value
// when the conditions request it. Shoes with no derivable drop sink to
// the end.
func applyDropSort(conditions *ShoeSearchConditions, shoes []*entity.Shoe) {
	drop := conditions.Drop.Spec
	if drop == nil || drop.Sort == "" || len(shoes) == 0 {
		return
	}

	desc := drop.Sort == "desc"
	sort.SliceStable(shoes, func(i, j int) bool {
		a, b := shoes[i].Drop(), shoes[j].Drop()
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		if desc {
			return *a > *b
		}
		return *a < *b
	})
}
