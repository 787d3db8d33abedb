package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// Run from an empty directory so no stray transdoc.yaml is picked up.
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Fatal(err)
		}
	})

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend != "openai" {
		t.Errorf("default backend = %q, want openai", cfg.Backend)
	}
	if cfg.MaxAttempts != 3 {
		t.Errorf("default max_attempts = %d, want 3", cfg.MaxAttempts)
	}
	if cfg.OpenAI.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("default openai.base_url = %q", cfg.OpenAI.BaseURL)
	}
	if cfg.OpenAI.Model != "gpt-4" {
		t.Errorf("default openai.model = %q, want gpt-4", cfg.OpenAI.Model)
	}
	if cfg.Azure.APIVersion != "2024-02-01" {
		t.Errorf("default azure.api_version = %q", cfg.Azure.APIVersion)
	}
	if cfg.Azure.Deployment != "gpt-4o" {
		t.Errorf("default azure.deployment = %q, want gpt-4o", cfg.Azure.Deployment)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "transdoc.yaml")
	data := `backend: azure
max_attempts: 5
openai:
  api_key: file-key
  model: gpt-4o-mini
azure:
  endpoint: https://example.openai.azure.com
`
	if err := os.WriteFile(cfgPath, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Backend != "azure" {
		t.Errorf("backend = %q, want azure", cfg.Backend)
	}
	if cfg.MaxAttempts != 5 {
		t.Errorf("max_attempts = %d, want 5", cfg.MaxAttempts)
	}
	if cfg.OpenAI.APIKey != "file-key" {
		t.Errorf("openai.api_key = %q, want file-key", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("openai.model = %q, want gpt-4o-mini", cfg.OpenAI.Model)
	}
	if cfg.Azure.Endpoint != "https://example.openai.azure.com" {
		t.Errorf("azure.endpoint = %q", cfg.Azure.Endpoint)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "transdoc.yaml")
	data := "openai:\n  api_key: file-key\n"
	if err := os.WriteFile(cfgPath, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://env.openai.azure.com")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.OpenAI.APIKey != "env-key" {
		t.Errorf("openai.api_key = %q, want env override", cfg.OpenAI.APIKey)
	}
	if cfg.Azure.Endpoint != "https://env.openai.azure.com" {
		t.Errorf("azure.endpoint = %q, want env override", cfg.Azure.Endpoint)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
