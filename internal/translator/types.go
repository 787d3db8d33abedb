// Package translator defines the translation backend contract and its
// implementations: OpenAI-compatible chat completions, Azure OpenAI, and
// Google Cloud Translation, plus the retrying Client callers go through.
package translator

import "context"

// Service translates one text into a target language. targetLanguage is a
// display name from the supported-language table; implementations map it to
// whatever their API expects.
type Service interface {
	Name() string
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
	SupportedLanguages() []string
}
