package domain

import "errors"

var (
	// ErrEmptyCorpus signals knowledge base construction from zero records.
	ErrEmptyCorpus = errors.New("empty corpus")
	// ErrIndexUnavailable signals that no nearest-neighbor backend is configured.
	ErrIndexUnavailable = errors.New("vector index backend is not configured")
	// ErrUnknownLanguage signals text the language detector could not classify.
	ErrUnknownLanguage = errors.New("unknown language")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrCompletionProviderError signals a completion provider failure.
	ErrCompletionProviderError = errors.New("completion provider error")
)
