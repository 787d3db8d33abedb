package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultAzureAPIVersion is used when no api-version is configured.
	DefaultAzureAPIVersion = "2024-02-01"
	// DefaultAzureDeployment is used when no deployment is configured.
	DefaultAzureDeployment = "gpt-4o"
)

// AzureService translates via an Azure OpenAI chat-completions deployment.
type AzureService struct {
	endpoint   string
	apiKey     string
	apiVersion string
	deployment string
	client     *http.Client
}

// NewAzureService builds an Azure OpenAI backend. Empty apiVersion and
// deployment fall back to the defaults.
func NewAzureService(endpoint, apiKey, apiVersion, deployment string) *AzureService {
	if apiVersion == "" {
		apiVersion = DefaultAzureAPIVersion
	}
	if deployment == "" {
		deployment = DefaultAzureDeployment
	}
	return &AzureService{
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiKey:     apiKey,
		apiVersion: apiVersion,
		deployment: deployment,
		client:     &http.Client{Timeout: 120 * time.Second},
	}
}

func (s *AzureService) Name() string {
	return "azure"
}

func (s *AzureService) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if s.endpoint == "" {
		return "", fmt.Errorf("Azure OpenAI endpoint required")
	}
	if s.apiKey == "" {
		return "", fmt.Errorf("Azure OpenAI API key required")
	}

	body := chatCompletionsBody(s.deployment, text, targetLanguage)
	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		s.endpoint, s.deployment, s.apiVersion)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return decodeChatCompletions(resp)
}

func (s *AzureService) SupportedLanguages() []string {
	return LanguageNames()
}
