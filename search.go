package knowdex

import (
	"context"
	"fmt"
)

// SearchResult pairs a matched document with its squared Euclidean distance
// from the query. Distances are not normalized; callers interpret the scale
// against their own cutoffs.
type SearchResult struct {
	Document *Document
	Distance float64
}

// SimilaritySearch embeds the query texts in one batched call and returns the
// k nearest documents per query, sorted ascending by distance.
func (kb *KnowledgeBase) SimilaritySearch(ctx context.Context, queries []string, k int) ([][]SearchResult, error) {
	if len(queries) == 0 {
		return nil, nil
	}

	res, err := kb.embedder.BatchEmbed(ctx, queries)
	if err != nil {
		return nil, fmt.Errorf("knowdex: embed queries: %w", err)
	}

	return kb.searchVectors(ctx, res.Embeddings, k)
}

// SimilaritySearchByVector returns the k nearest documents to a single query
// vector, sorted ascending by distance.
func (kb *KnowledgeBase) SimilaritySearchByVector(ctx context.Context, query []float32, k int) ([]SearchResult, error) {
	groups, err := kb.searchVectors(ctx, [][]float32{query}, k)
	if err != nil {
		return nil, err
	}
	return groups[0], nil
}

func (kb *KnowledgeBase) searchVectors(ctx context.Context, queries [][]float32, k int) ([][]SearchResult, error) {
	idx, err := kb.vectorIndex(ctx)
	if err != nil {
		return nil, err
	}

	dists, ids, err := idx.Search(queries, k)
	if err != nil {
		return nil, fmt.Errorf("knowdex: search index: %w", err)
	}

	out := make([][]SearchResult, len(ids))
	for i := range ids {
		out[i] = make([]SearchResult, len(ids[i]))
		for j, id := range ids[i] {
			out[i][j] = SearchResult{Document: kb.docs[id], Distance: dists[i][j]}
		}
	}
	return out, nil
}
