// Package retriever runs similarity searches with a score threshold,
// adaptive breadth, and optional recency-biased re-ranking.
package retriever

import (
	"context"
	"sort"

	"wide-toebox-be/pkg/vectorstore"
)

const (
	// MinSimilarityScore is the floor a candidate must clear to be
	// returned at all.
	MinSimilarityScore = 0.3

	// KIncrement is how much the candidate count widens per pass when
	// too few results clear the threshold.
	KIncrement = 2

	// MaxK caps the candidate count regardless of how little qualifies.
	MaxK = 4
)

// Retrieve searches the store, excludes results under the similarity
// threshold, and widens the candidate count in fixed increments until
// enough qualifying documents are found or the ceiling is reached.
// When recencyWeight is positive the survivors are re-ranked by a blend
// of similarity and normalized recency.
func Retrieve(ctx context.Context, store vectorstore.Store, query string, recencyWeight float64) ([]vectorstore.ScoredDocument, error) {
	var qualified []vectorstore.ScoredDocument

	for k := KIncrement; ; k += KIncrement {
		if k > MaxK {
			k = MaxK
		}

		candidates, err := store.SimilaritySearch(ctx, query, k)
		if err != nil {
			return nil, err
		}

		qualified = qualified[:0]
		for _, doc := range candidates {
			if doc.Score >= MinSimilarityScore {
				qualified = append(qualified, doc)
			}
		}

		// Stop once the ceiling's worth of results qualify, the store
		// has no more candidates to widen into, or k hit the ceiling.
		if len(qualified) >= MaxK || len(candidates) < k || k >= MaxK {
			break
		}
	}

	return applyRecencyBias(qualified, recencyWeight), nil
}

// applyRecencyBias re-ranks documents by blending similarity with a
// recency score normalized across the span of the dated documents.
// Documents without a timestamp count as the oldest (recency zero)
// without stretching the span. A zero span leaves the original order
// untouched.
func applyRecencyBias(docs []vectorstore.ScoredDocument, recencyWeight float64) []vectorstore.ScoredDocument {
	if recencyWeight <= 0 || len(docs) <= 1 {
		return docs
	}

	var haveDated bool
	var minTs, maxTs int64
	timestamps := make([]*int64, len(docs))
	for i, doc := range docs {
		t, ok := doc.Metadata.ParseTime()
		if !ok {
			continue
		}
		ts := t.Unix()
		timestamps[i] = &ts
		if !haveDated {
			minTs, maxTs = ts, ts
			haveDated = true
			continue
		}
		if ts < minTs {
			minTs = ts
		}
		if ts > maxTs {
			maxTs = ts
		}
	}
	if maxTs <= minTs {
		return docs
	}

	type ranked struct {
		doc      vectorstore.ScoredDocument
		combined float64
	}
	rankedDocs := make([]ranked, len(docs))
	span := float64(maxTs - minTs)
	for i, doc := range docs {
		recency := 0.0
		if timestamps[i] != nil {
			recency = float64(*timestamps[i]-minTs) / span
		}
		rankedDocs[i] = ranked{
			doc:      doc,
			combined: doc.Score*(1-recencyWeight) + recency*recencyWeight,
		}
	}

	sort.SliceStable(rankedDocs, func(i, j int) bool {
		return rankedDocs[i].combined > rankedDocs[j].combined
	})

	result := make([]vectorstore.ScoredDocument, len(docs))
	for i, r := range rankedDocs {
		result[i] = r.doc
	}
	return result
}
