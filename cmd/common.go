/*
Copyright © 2025 Abner Wong <abner.wong@outlook.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/abner-wong/transdoc/internal/config"
	"github.com/abner-wong/transdoc/internal/translator"
)

// buildBackend constructs the translation service named by backend,
// configured from cfg. An empty backend name uses the configured default.
func buildBackend(cfg *config.Config, backend string) (translator.Service, error) {
	if backend == "" {
		backend = cfg.Backend
	}

	switch backend {
	case "openai":
		return translator.NewOpenAIService(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model), nil
	case "azure":
		return translator.NewAzureService(cfg.Azure.Endpoint, cfg.Azure.APIKey, cfg.Azure.APIVersion, cfg.Azure.Deployment), nil
	case "google":
		return translator.NewGoogleService(cfg.Google.Credentials), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s (expected openai, azure, or google)", backend)
	}
}

// resolveLanguage validates a target language name against the supported
// table.
func resolveLanguage(name string) (translator.Language, error) {
	lang, ok := translator.LookupLanguage(name)
	if !ok {
		return translator.Language{}, fmt.Errorf(
			"unsupported target language %q; run 'transdoc languages' for the supported list", name)
	}
	return lang, nil
}
