package embcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/knowdex/internal/db"
	"github.com/kailas-cloud/knowdex/internal/domain"
)

// fakeEmbedder fills every requested vector with the same value and
// charges tokensPerText per input, counting batch calls.
type fakeEmbedder struct {
	fill          float32
	tokensPerText int
	batchErr      error
	batchResult   *domain.BatchEmbeddingResult
	calls         int
}

func (f *fakeEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	f.calls++
	if f.batchErr != nil {
		return domain.BatchEmbeddingResult{}, f.batchErr
	}
	if f.batchResult != nil {
		return *f.batchResult, nil
	}

	out := domain.BatchEmbeddingResult{
		Embeddings:   make([][]float32, len(texts)),
		PromptTokens: f.tokensPerText * len(texts),
		TotalTokens:  f.tokensPerText * len(texts),
	}
	for i := range texts {
		out.Embeddings[i] = []float32{f.fill}
	}
	return out, nil
}

// memStore is an in-memory stand-in for the Redis store with
// injectable failures. TTL arguments are recorded per call.
type memStore struct {
	entries map[string][]byte
	getErr  error
	setErr  error
	sets    int
	ttls    []time.Duration
}

func newMemStore() *memStore {
	return &memStore{entries: map[string][]byte{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if v, ok := m.entries[key]; ok {
		return v, nil
	}
	return nil, db.ErrKeyNotFound
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.entries[key] = value
	return nil
}

func (m *memStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.ttls = append(m.ttls, ttl)
	return m.Set(ctx, key, value)
}

// seed plants a cached vector under the key the embedder would derive.
func (m *memStore) seed(c *CachedEmbedder, text string, vec []float32) {
	m.entries[c.cacheKey(text)] = encodeVector(vec)
}

func newCacheUnderTest(t *testing.T, inner domain.BatchEmbedder, ttl time.Duration) (*CachedEmbedder, *memStore) {
	t.Helper()
	st := newMemStore()
	return New(inner, st, "embed-test", ttl, nil, zap.NewNop()), st
}
