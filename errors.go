package knowdex

import "github.com/kailas-cloud/knowdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrEmptyCorpus             = domain.ErrEmptyCorpus
	ErrIndexUnavailable        = domain.ErrIndexUnavailable
	ErrUnknownLanguage         = domain.ErrUnknownLanguage
	ErrEmbeddingProviderError  = domain.ErrEmbeddingProviderError
	ErrCompletionProviderError = domain.ErrCompletionProviderError
)
