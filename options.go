package knowdex

import (
	"go.uber.org/zap"
)

// Defaults used when the corresponding option is not given.
const (
	DefaultEmbeddingModel             = "text-embedding-ada-002"
	DefaultCompletionModel            = "gpt-4o-mini"
	DefaultContextNeighbors           = 4
	DefaultContextSimilarityThreshold = 0.2
	DefaultMinTopicSize               = 2
)

// Option configures the KnowledgeBase.
type Option interface {
	apply(*kbConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*kbConfig)

func (f optionFunc) apply(c *kbConfig) { f(c) }

type kbConfig struct {
	columns []string
	seed    uint64
	seeded  bool

	contextNeighbors           int
	contextSimilarityThreshold float64
	minTopicSize               int

	embeddingModel  string
	completionModel string

	embedder   Embedder
	completer  Completer
	detector   LanguageDetector
	clusterer  Clusterer
	buildIndex IndexBuilder
	noIndex    bool

	logger *zap.Logger
}

// WithColumns restricts and orders the record fields used to build document
// content. Fields missing from a record are skipped. By default all fields
// are used in record order.
func WithColumns(columns ...string) Option {
	return optionFunc(func(c *kbConfig) {
		c.columns = columns
	})
}

// WithSeed seeds the random source, making sampling and topic naming
// reproducible across runs. Unseeded knowledge bases draw a random seed.
func WithSeed(seed uint64) Option {
	return optionFunc(func(c *kbConfig) {
		c.seed = seed
		c.seeded = true
	})
}

// WithContextNeighbors sets how many nearest documents a contextual group
// draw retrieves. Default: 4.
func WithContextNeighbors(n int) Option {
	return optionFunc(func(c *kbConfig) {
		c.contextNeighbors = n
	})
}

// WithContextSimilarityThreshold sets the maximum squared Euclidean distance
// for a neighbor to stay in a contextual group. Default: 0.2.
func WithContextSimilarityThreshold(t float64) Option {
	return optionFunc(func(c *kbConfig) {
		c.contextSimilarityThreshold = t
	})
}

// WithMinTopicSize sets the minimum cluster size for topic discovery.
// Default: 2.
func WithMinTopicSize(n int) Option {
	return optionFunc(func(c *kbConfig) {
		c.minTopicSize = n
	})
}

// WithEmbedder sets the embedding backend. Defaults to the OpenAI embeddings
// API configured from the OPENAI_API_KEY and OPENAI_BASE_URL environment
// variables.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *kbConfig) {
		c.embedder = e
	})
}

// WithCompleter sets the completion backend used for topic naming. Defaults
// to the OpenAI chat API configured from the OPENAI_API_KEY and
// OPENAI_BASE_URL environment variables.
func WithCompleter(cp Completer) Option {
	return optionFunc(func(c *kbConfig) {
		c.completer = cp
	})
}

// WithEmbeddingModel sets the model of the default OpenAI embedding backend.
// Ignored when WithEmbedder is given. Default: text-embedding-ada-002.
func WithEmbeddingModel(model string) Option {
	return optionFunc(func(c *kbConfig) {
		c.embeddingModel = model
	})
}

// WithCompletionModel sets the model of the default OpenAI completion
// backend. Ignored when WithCompleter is given. Default: gpt-4o-mini.
func WithCompletionModel(model string) Option {
	return optionFunc(func(c *kbConfig) {
		c.completionModel = model
	})
}

// WithLanguageDetector sets the language detection backend. Defaults to the
// built-in trigram detector.
func WithLanguageDetector(d LanguageDetector) Option {
	return optionFunc(func(c *kbConfig) {
		c.detector = d
	})
}

// WithClusterer sets the clustering backend for topic discovery. Defaults to
// the built-in density-based clusterer with min cluster size MinTopicSize.
func WithClusterer(cl Clusterer) Option {
	return optionFunc(func(c *kbConfig) {
		c.clusterer = cl
	})
}

// WithIndexBuilder sets the nearest-neighbor backend. Defaults to the
// built-in exact flat index.
func WithIndexBuilder(b IndexBuilder) Option {
	return optionFunc(func(c *kbConfig) {
		c.buildIndex = b
	})
}

// WithoutVectorSearch disables the nearest-neighbor backend. Similarity
// search and contextual sampling return ErrIndexUnavailable; embeddings and
// topics keep working.
func WithoutVectorSearch() Option {
	return optionFunc(func(c *kbConfig) {
		c.noIndex = true
	})
}

// WithLogger enables structured logging of knowledge base operations.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *kbConfig) {
		c.logger = l
	})
}
