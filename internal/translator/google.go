package translator

import (
	"context"
	"fmt"
	"html"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleService translates via the Google Cloud Translation v2 API.
type GoogleService struct {
	credentials string
}

// NewGoogleService builds a Google backend. credentials is an optional path
// to a service account key file; when empty the default application
// credentials are used.
func NewGoogleService(credentials string) *GoogleService {
	return &GoogleService{credentials: credentials}
}

func (s *GoogleService) Name() string {
	return "google"
}

func (s *GoogleService) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	lang, ok := LookupLanguage(targetLanguage)
	if !ok {
		return "", fmt.Errorf("unsupported target language: %s", targetLanguage)
	}
	targetTag, err := language.Parse(lang.Tag)
	if err != nil {
		return "", fmt.Errorf("invalid target language tag %q: %w", lang.Tag, err)
	}

	opts := []option.ClientOption{}
	if s.credentials != "" {
		opts = append(opts, option.WithCredentialsFile(s.credentials))
	}

	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	translations, err := client.Translate(ctx, []string{text}, targetTag, nil)
	if err != nil {
		return "", fmt.Errorf("translation failed: %w", err)
	}
	if len(translations) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	// The v2 API returns HTML entities in text mode output.
	return html.UnescapeString(translations[0].Text), nil
}

func (s *GoogleService) SupportedLanguages() []string {
	return LanguageNames()
}
