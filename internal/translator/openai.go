package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/abner-wong/transdoc/internal/postprocess"
	"github.com/abner-wong/transdoc/internal/prompt"
)

const (
	// DefaultOpenAIBaseURL is used when no base URL is configured.
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	// DefaultOpenAIModel is used when no model is configured.
	DefaultOpenAIModel = "gpt-4"
)

// OpenAIService translates via an OpenAI-compatible chat-completions API.
type OpenAIService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewOpenAIService builds an OpenAI backend. Empty baseURL and model fall
// back to the defaults.
func NewOpenAIService(apiKey, baseURL, model string) *OpenAIService {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIService{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (s *OpenAIService) Name() string {
	return "openai"
}

func (s *OpenAIService) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key required")
	}

	body := chatCompletionsBody(s.model, text, targetLanguage)
	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST",
		s.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return decodeChatCompletions(resp)
}

func (s *OpenAIService) SupportedLanguages() []string {
	return LanguageNames()
}

// chatCompletionsBody builds the request body shared by the OpenAI and
// Azure backends.
func chatCompletionsBody(model, text, targetLanguage string) map[string]interface{} {
	lang := targetLanguage
	if l, ok := LookupLanguage(targetLanguage); ok {
		lang = l.Prompt
	}
	return map[string]interface{}{
		"model":       model,
		"messages":    prompt.Messages(text, lang),
		"temperature": 0.3,
		"max_tokens":  1500,
		"top_p":       1.0,
	}
}

// decodeChatCompletions extracts and cleans the first choice of a
// chat-completions response.
func decodeChatCompletions(resp *http.Response) (string, error) {
	if resp.StatusCode != http.StatusOK {
		var errResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)
		return "", fmt.Errorf("API returned status %d: %v", resp.StatusCode, errResp)
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	return postprocess.Clean(chatResp.Choices[0].Message.Content), nil
}
