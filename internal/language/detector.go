// Package language detects the natural language of document text.
package language

import (
	"fmt"

	"github.com/abadojack/whatlanggo"

	"github.com/kailas-cloud/knowdex/internal/domain"
)

// Detector classifies text into an ISO 639-1 language code.
type Detector interface {
	Detect(text string) (string, error)
}

// Trigram is the default Detector, backed by whatlanggo trigram profiles.
// Stateless and safe to share.
type Trigram struct{}

// NewTrigram returns the default trigram detector.
func NewTrigram() *Trigram { return &Trigram{} }

// Detect returns the ISO 639-1 code for text. Input without script signal
// (empty, digits, punctuation only) fails with ErrUnknownLanguage.
func (*Trigram) Detect(text string) (string, error) {
	info := whatlanggo.Detect(text)
	if info.Lang < 0 {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownLanguage, snippet(text))
	}
	code := info.Lang.Iso6391()
	if code == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownLanguage, snippet(text))
	}
	return code, nil
}

func snippet(s string) string {
	const max = 32
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
