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
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abner-wong/transdoc/internal/chunker"
	"github.com/abner-wong/transdoc/internal/config"
	"github.com/abner-wong/transdoc/internal/translator"
)

// maxChunkChars bounds one translation request; longer inputs are split at
// paragraph or sentence boundaries and translated piecewise.
const maxChunkChars = 4000

var (
	textTargetLang string
	textBackend    string
)

var textCmd = &cobra.Command{
	Use:   "text [text to translate]",
	Short: "Translate a plain text string",
	Long: `Translate a single text string into the target language and print the
result to stdout. Long inputs are split at paragraph or sentence boundaries
and translated piece by piece.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.TrimSpace(args[0])
		if text == "" {
			return fmt.Errorf("nothing to translate")
		}

		lang, err := resolveLanguage(textTargetLang)
		if err != nil {
			return err
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		svc, err := buildBackend(cfg, textBackend)
		if err != nil {
			return err
		}
		client := translator.NewClient(svc, cfg.MaxAttempts, newLogger())

		ctx := context.Background()
		var parts []string
		for _, chunk := range chunker.Chunk(text, maxChunkChars) {
			translated, err := client.Translate(ctx, chunk, lang.Name)
			if err != nil {
				return fmt.Errorf("translation failed: %w", err)
			}
			parts = append(parts, translated)
		}

		fmt.Println(strings.Join(parts, "\n\n"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(textCmd)

	textCmd.Flags().StringVarP(&textTargetLang, "language", "l", "", "Target language (required, see 'transdoc languages')")
	textCmd.Flags().StringVar(&textBackend, "backend", "", "Translation backend: openai, azure, or google (default from config)")

	textCmd.MarkFlagRequired("language")
}
