package translator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAzureService_Name(t *testing.T) {
	svc := NewAzureService("https://example.openai.azure.com", "key", "", "")

	if svc.Name() != "azure" {
		t.Errorf("expected 'azure', got %q", svc.Name())
	}
}

func TestAzureService_Defaults(t *testing.T) {
	svc := NewAzureService("https://example.openai.azure.com", "key", "", "")

	if svc.apiVersion != DefaultAzureAPIVersion {
		t.Errorf("expected default api version, got %q", svc.apiVersion)
	}
	if svc.deployment != DefaultAzureDeployment {
		t.Errorf("expected default deployment, got %q", svc.deployment)
	}
}

func TestAzureService_Translate_MissingEndpoint(t *testing.T) {
	svc := NewAzureService("", "key", "", "")

	_, err := svc.Translate(context.Background(), "Hello", "French")
	if err == nil {
		t.Error("expected error when no endpoint")
	}
}

func TestAzureService_Translate_MissingAPIKey(t *testing.T) {
	svc := NewAzureService("https://example.openai.azure.com", "", "", "")

	_, err := svc.Translate(context.Background(), "Hello", "French")
	if err == nil {
		t.Error("expected error when no API key")
	}
}

func TestAzureService_Translate_RequestShape(t *testing.T) {
	var gotKey, gotPath, gotVersion string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("api-key")
		gotPath = r.URL.Path
		gotVersion = r.URL.Query().Get("api-version")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(chatResponse("Hallo")))
	}))
	defer server.Close()

	svc := NewAzureService(server.URL, "azure-key", "2024-02-01", "gpt-4o")

	result, err := svc.Translate(context.Background(), "Hello", "German")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "Hallo" {
		t.Errorf("expected 'Hallo', got %q", result)
	}
	if gotKey != "azure-key" {
		t.Errorf("expected api-key header, got %q", gotKey)
	}
	if gotPath != "/openai/deployments/gpt-4o/chat/completions" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotVersion != "2024-02-01" {
		t.Errorf("expected api-version 2024-02-01, got %q", gotVersion)
	}
	if gotBody["model"] != "gpt-4o" {
		t.Errorf("expected model gpt-4o, got %v", gotBody["model"])
	}
}

func TestAzureService_Translate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	svc := NewAzureService(server.URL, "bad-key", "", "")

	_, err := svc.Translate(context.Background(), "Hello", "French")
	if err == nil {
		t.Error("expected error for non-OK status")
	}
}

func TestAzureService_SupportedLanguages(t *testing.T) {
	svc := NewAzureService("https://example.openai.azure.com", "key", "", "")

	langs := svc.SupportedLanguages()
	if len(langs) == 0 {
		t.Error("expected non-empty language list")
	}
}
