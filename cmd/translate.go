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
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abner-wong/transdoc/internal/config"
	"github.com/abner-wong/transdoc/internal/pipeline"
	"github.com/abner-wong/transdoc/internal/store"
	"github.com/abner-wong/transdoc/internal/translator"
)

var (
	inputFile  string
	outputFile string
	targetLang string
	backend    string

	useCache   bool
	dbPath     string
	maxRetries int
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate a Word document",
	Long: `Translate the body of a .docx document into the target language.

Document structure is preserved exactly: paragraph and run boundaries,
tables, styling, math formulas, and all non-document package members
(styles, media, relationships) pass through unmodified. Paragraphs whose
translation fails keep their original text.

When --output is omitted the result is written next to the input as
<name>_translated.docx.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, err := resolveLanguage(targetLang)
		if err != nil {
			return err
		}

		if outputFile == "" {
			outputFile = defaultOutputPath(inputFile)
		}
		if inputFile == outputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		svc, err := buildBackend(cfg, backend)
		if err != nil {
			return err
		}

		logger := newLogger()
		attempts := maxRetries
		if attempts == 0 {
			attempts = cfg.MaxAttempts
		}
		client := translator.NewClient(svc, attempts, logger)

		opts := []pipeline.Option{pipeline.WithLogger(logger)}
		if useCache {
			path := dbPath
			if path == "" {
				path = cfg.DBPath
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
			db, err := store.New(path)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()
			opts = append(opts, pipeline.WithMemory(db, svc.Name()))
		}

		if dir := filepath.Dir(outputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		fmt.Fprintf(os.Stderr, "Translating %s to %s using %s...\n", inputFile, lang.Name, svc.Name())

		p := pipeline.New(client, opts...)
		if err := p.TranslateDocument(context.Background(), inputFile, outputFile, lang.Name); err != nil {
			return err
		}

		fmt.Printf("Successfully translated to %s: %s\n", lang.Name, outputFile)
		return nil
	},
}

// defaultOutputPath places the translated document next to the input.
func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_translated" + ext
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input .docx file (required)")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .docx file (default <input>_translated.docx)")
	translateCmd.Flags().StringVarP(&targetLang, "language", "l", "", "Target language (required, see 'transdoc languages')")
	translateCmd.Flags().StringVar(&backend, "backend", "", "Translation backend: openai, azure, or google (default from config)")

	translateCmd.Flags().BoolVar(&useCache, "cache", false, "Use the translation memory cache")
	translateCmd.Flags().StringVar(&dbPath, "db", "", "Database path for the translation memory (default from config)")
	translateCmd.Flags().IntVar(&maxRetries, "max-retries", 0, "Total attempts per unit including the first (default from config)")

	translateCmd.MarkFlagRequired("input")
	translateCmd.MarkFlagRequired("language")
}
