package knowdex

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	"go.uber.org/zap"

	"github.com/kailas-cloud/knowdex/internal/cluster"
	"github.com/kailas-cloud/knowdex/internal/index"
	"github.com/kailas-cloud/knowdex/internal/language"
	"github.com/kailas-cloud/knowdex/internal/transport/openai"
)

// KnowledgeBase holds an immutable document collection and serves similarity
// search, topic discovery and random sampling over it.
//
// Embeddings, the vector index and topics are computed lazily on first use
// and cached for the lifetime of the instance. Lazy initialization is not
// synchronized: callers needing concurrent access must materialize each
// artifact once, single-threaded, before fanning out.
type KnowledgeBase struct {
	docs     []*Document
	language string
	rng      *rand.Rand

	embedder   Embedder
	completer  Completer
	clusterer  Clusterer
	buildIndex IndexBuilder

	contextNeighbors           int
	contextSimilarityThreshold float64

	logger *zap.Logger

	embeddings [][]float32
	idx        VectorIndex
	topics     map[int]string
}

// New builds a KnowledgeBase from the given corpus records. Records become
// documents in order; index i is the document's stable identity.
//
// The dominant language of the corpus is detected at construction; detector
// failures propagate. An empty corpus yields ErrEmptyCorpus.
func New(records []Record, opts ...Option) (*KnowledgeBase, error) {
	cfg := &kbConfig{
		contextNeighbors:           DefaultContextNeighbors,
		contextSimilarityThreshold: DefaultContextSimilarityThreshold,
		minTopicSize:               DefaultMinTopicSize,
		embeddingModel:             DefaultEmbeddingModel,
		completionModel:            DefaultCompletionModel,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("knowdex: %w", ErrEmptyCorpus)
	}

	docs := make([]*Document, len(records))
	for i, rec := range records {
		docs[i] = newDocument(i, rec, cfg.columns)
	}

	detector := cfg.detector
	if detector == nil {
		detector = language.NewTrigram()
	}
	lang, err := detectDominantLanguage(docs, detector)
	if err != nil {
		return nil, fmt.Errorf("knowdex: detect corpus language: %w", err)
	}

	var rng *rand.Rand
	if cfg.seeded {
		rng = rand.New(rand.NewPCG(cfg.seed, 0))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	kb := &KnowledgeBase{
		docs:                       docs,
		language:                   lang,
		rng:                        rng,
		embedder:                   cfg.embedder,
		completer:                  cfg.completer,
		clusterer:                  cfg.clusterer,
		buildIndex:                 cfg.buildIndex,
		contextNeighbors:           cfg.contextNeighbors,
		contextSimilarityThreshold: cfg.contextSimilarityThreshold,
		logger:                     logger,
	}

	if kb.embedder == nil {
		kb.embedder = &batchEmbedderAdapter{inner: openai.NewEmbedder(&openai.EmbedderConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
			Model:   cfg.embeddingModel,
			Logger:  logger,
		})}
	}
	if kb.completer == nil {
		kb.completer = &completerAdapter{inner: openai.NewCompleter(&openai.CompleterConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
			Model:   cfg.completionModel,
			Logger:  logger,
		})}
	}
	if kb.clusterer == nil {
		kb.clusterer = cluster.NewDBSCAN(cfg.minTopicSize)
	}
	if kb.buildIndex == nil {
		builder := index.Flat
		if cfg.noIndex {
			builder = index.NotConfigured("similarity search")
		}
		kb.buildIndex = func(vectors [][]float32) (VectorIndex, error) {
			return builder(vectors)
		}
	}

	logger.Debug("knowledge base created",
		zap.Int("documents", len(docs)),
		zap.String("language", lang),
	)

	return kb, nil
}

// detectDominantLanguage picks the most frequent language across all document
// contents. Ties go to the language encountered first.
func detectDominantLanguage(docs []*Document, detector LanguageDetector) (string, error) {
	counts := make(map[string]int)
	var order []string

	for _, d := range docs {
		lang, err := detector.Detect(d.Content())
		if err != nil {
			return "", err
		}
		if _, seen := counts[lang]; !seen {
			order = append(order, lang)
		}
		counts[lang]++
	}

	best := order[0]
	for _, lang := range order[1:] {
		if counts[lang] > counts[best] {
			best = lang
		}
	}
	return best, nil
}

// Documents returns all documents in construction order.
func (kb *KnowledgeBase) Documents() []*Document { return kb.docs }

// Len returns the number of documents.
func (kb *KnowledgeBase) Len() int { return len(kb.docs) }

// Language is the ISO 639-1 code of the corpus's dominant language.
func (kb *KnowledgeBase) Language() string { return kb.language }

// Embeddings returns one vector per document, in document order. The first
// call embeds all document contents in a single batched backend call and
// caches the result; it is never recomputed. A failed call leaves the cache
// empty and is retried wholesale on the next access.
func (kb *KnowledgeBase) Embeddings(ctx context.Context) ([][]float32, error) {
	if kb.embeddings != nil {
		return kb.embeddings, nil
	}

	texts := make([]string, len(kb.docs))
	for i, d := range kb.docs {
		texts[i] = d.Content()
	}

	res, err := kb.embedder.BatchEmbed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("knowdex: embed corpus: %w", err)
	}
	if len(res.Embeddings) != len(kb.docs) {
		return nil, fmt.Errorf("knowdex: %w: got %d embeddings for %d documents",
			ErrEmbeddingProviderError, len(res.Embeddings), len(kb.docs))
	}

	kb.logger.Debug("corpus embedded",
		zap.Int("documents", len(kb.docs)),
		zap.Int("total_tokens", res.TotalTokens),
	)

	kb.embeddings = res.Embeddings
	return kb.embeddings, nil
}

// vectorIndex lazily builds the nearest-neighbor structure over the cached
// embeddings.
func (kb *KnowledgeBase) vectorIndex(ctx context.Context) (VectorIndex, error) {
	if kb.idx != nil {
		return kb.idx, nil
	}

	embs, err := kb.Embeddings(ctx)
	if err != nil {
		return nil, err
	}

	idx, err := kb.buildIndex(embs)
	if err != nil {
		return nil, fmt.Errorf("knowdex: build index: %w", err)
	}

	kb.idx = idx
	return kb.idx, nil
}
