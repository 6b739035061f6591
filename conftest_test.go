package knowdex

import (
	"context"
	"testing"
)

// mockEmbedder returns scripted vectors and counts batch calls.
type mockEmbedder struct {
	embedFn    func(texts []string) ([][]float32, error)
	batchCalls int
}

func (m *mockEmbedder) BatchEmbed(_ context.Context, texts []string) (BatchEmbeddingResult, error) {
	m.batchCalls++
	if m.embedFn != nil {
		vecs, err := m.embedFn(texts)
		if err != nil {
			return BatchEmbeddingResult{}, err
		}
		return BatchEmbeddingResult{Embeddings: vecs, PromptTokens: len(texts), TotalTokens: len(texts)}, nil
	}

	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{float32(len(t))}
	}
	return BatchEmbeddingResult{Embeddings: out, PromptTokens: len(texts), TotalTokens: len(texts)}, nil
}

// vectorEmbedder scripts one fixed vector per text.
func vectorEmbedder(vectors map[string][]float32) func(texts []string) ([][]float32, error) {
	return func(texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i, t := range texts {
			out[i] = vectors[t]
		}
		return out, nil
	}
}

// mockCompleter records every request and returns scripted content.
type mockCompleter struct {
	completeFn func(messages []ChatMessage) (string, error)
	requests   [][]ChatMessage
	calls      int
}

func (m *mockCompleter) Complete(_ context.Context, messages []ChatMessage) (CompletionResult, error) {
	m.calls++
	m.requests = append(m.requests, messages)

	content := `"Mock Topic"`
	if m.completeFn != nil {
		var err error
		content, err = m.completeFn(messages)
		if err != nil {
			return CompletionResult{}, err
		}
	}
	return CompletionResult{
		Message:          ChatMessage{Role: RoleAssistant, Content: content},
		PromptTokens:     10,
		CompletionTokens: 3,
		TotalTokens:      13,
	}, nil
}

// mockDetector reports English unless scripted otherwise.
type mockDetector struct {
	detectFn func(text string) (string, error)
}

func (m *mockDetector) Detect(text string) (string, error) {
	if m.detectFn != nil {
		return m.detectFn(text)
	}
	return "en", nil
}

// mockClusterer returns fixed labels and counts calls.
type mockClusterer struct {
	labels []int
	err    error
	calls  int
}

func (m *mockClusterer) Cluster(_ [][]float32) ([]int, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.labels, nil
}

// newTestKB builds a knowledge base with mocked backends and a fixed seed.
// Later options override the mocks.
func newTestKB(t *testing.T, records []Record, opts ...Option) (*KnowledgeBase, *mockEmbedder, *mockCompleter) {
	t.Helper()

	emb := &mockEmbedder{}
	comp := &mockCompleter{}
	base := []Option{
		WithEmbedder(emb),
		WithCompleter(comp),
		WithLanguageDetector(&mockDetector{}),
		WithSeed(42),
	}

	kb, err := New(records, append(base, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return kb, emb, comp
}

// textRecords builds single-field records with the given contents.
func textRecords(contents ...string) []Record {
	records := make([]Record, len(contents))
	for i, c := range contents {
		records[i] = Record{{Name: "text", Value: c}}
	}
	return records
}
