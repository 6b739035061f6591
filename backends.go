package knowdex

import (
	"context"

	"github.com/kailas-cloud/knowdex/internal/domain"
)

// Embedder converts texts to vector embeddings in a single batched call,
// order-preserving, one vector per input text.
type Embedder interface {
	BatchEmbed(ctx context.Context, texts []string) (BatchEmbeddingResult, error)
}

// BatchEmbeddingResult carries the embedding vectors and aggregate token usage.
type BatchEmbeddingResult struct {
	Embeddings   [][]float32
	PromptTokens int
	TotalTokens  int
}

// Chat message roles accepted by Completer.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one role-tagged message of a completion request.
type ChatMessage struct {
	Role    string
	Content string
}

// Completer generates a single text completion for an ordered message list.
// Used for topic naming.
type Completer interface {
	Complete(ctx context.Context, messages []ChatMessage) (CompletionResult, error)
}

// CompletionResult carries the generated message and token usage.
type CompletionResult struct {
	Message          ChatMessage
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// LanguageDetector reports the ISO 639-1 code of a text.
// It may fail on unparseable input; the error propagates to the caller.
type LanguageDetector interface {
	Detect(text string) (string, error)
}

// Clusterer partitions vectors into groups, returning one integer label per
// input vector. The label -1 is reserved for noise.
type Clusterer interface {
	Cluster(vectors [][]float32) ([]int, error)
}

// VectorIndex answers k-nearest-neighbor queries over a fixed vector set.
// Distances are squared Euclidean.
type VectorIndex interface {
	Search(queries [][]float32, k int) (distances [][]float64, ids [][]int, err error)
	Len() int
}

// IndexBuilder constructs a VectorIndex over the corpus embeddings.
type IndexBuilder func(vectors [][]float32) (VectorIndex, error)

// batchEmbedderAdapter wraps internal domain.BatchEmbedder to satisfy the
// public Embedder.
type batchEmbedderAdapter struct {
	inner domain.BatchEmbedder
}

func (a *batchEmbedderAdapter) BatchEmbed(ctx context.Context, texts []string) (BatchEmbeddingResult, error) {
	r, err := a.inner.BatchEmbed(ctx, texts)
	if err != nil {
		return BatchEmbeddingResult{}, err
	}
	return BatchEmbeddingResult{
		Embeddings:   r.Embeddings,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}

// completerAdapter wraps internal domain.Completer to satisfy the public
// Completer.
type completerAdapter struct {
	inner domain.Completer
}

func (a *completerAdapter) Complete(ctx context.Context, messages []ChatMessage) (CompletionResult, error) {
	msgs := make([]domain.ChatMessage, len(messages))
	for i, m := range messages {
		msgs[i] = domain.ChatMessage{Role: m.Role, Content: m.Content}
	}
	r, err := a.inner.Complete(ctx, msgs)
	if err != nil {
		return CompletionResult{}, err
	}
	return CompletionResult{
		Message:          ChatMessage{Role: r.Message.Role, Content: r.Message.Content},
		PromptTokens:     r.PromptTokens,
		CompletionTokens: r.CompletionTokens,
		TotalTokens:      r.TotalTokens,
	}, nil
}
