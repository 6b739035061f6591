package knowdex

import "context"

// RandomDocument returns one document drawn uniformly from the collection
// via the knowledge base's random source. Consecutive calls draw successive
// values; the source is never reset.
func (kb *KnowledgeBase) RandomDocument() *Document {
	return kb.docs[kb.rng.IntN(len(kb.docs))]
}

// RandomDocumentGroup draws one random seed embedding, retrieves its
// ContextNeighbors nearest documents and keeps only those strictly closer
// than the similarity threshold.
//
// The group may be empty, and may omit the seed document itself when its
// self-distance fails the threshold test.
func (kb *KnowledgeBase) RandomDocumentGroup(ctx context.Context) ([]*Document, error) {
	embs, err := kb.Embeddings(ctx)
	if err != nil {
		return nil, err
	}

	seed := embs[kb.rng.IntN(len(embs))]
	results, err := kb.SimilaritySearchByVector(ctx, seed, kb.contextNeighbors)
	if err != nil {
		return nil, err
	}

	var group []*Document
	for _, r := range results {
		if r.Distance < kb.contextSimilarityThreshold {
			group = append(group, r.Document)
		}
	}
	return group, nil
}
