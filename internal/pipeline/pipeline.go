// Package pipeline drives a whole-document translation: unpack the DOCX,
// parse the body, collect translation units in a read-only pass, translate
// each unit in document order, apply the results in a write pass, then
// serialize and repack.
//
// Fatal failures (IO, format) abort the document; a per-unit translation
// failure only skips that unit, leaving its original text in the output.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/abner-wong/transdoc/internal/docx"
	"github.com/abner-wong/transdoc/internal/translator"
	"github.com/abner-wong/transdoc/internal/wml"
	"github.com/abner-wong/transdoc/internal/xmltree"
)

// Translator is the backend a Pipeline calls once per unit. A failed call
// may return an error or the translator.Sentinel value; either way the unit
// is left untranslated. *translator.Client satisfies this.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// Memory is an optional translation cache consulted before each backend
// call. *store.Store satisfies this.
type Memory interface {
	Lookup(ctx context.Context, sourceText, targetLang string) (string, bool, error)
	Save(ctx context.Context, sourceText, targetLang, translatedText, serviceUsed string) error
}

// Pipeline translates DOCX documents with a fixed backend and target
// language policy. It is safe for sequential reuse across documents; each
// call owns its own scratch area.
type Pipeline struct {
	translator  Translator
	memory      Memory
	serviceName string
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMemory attaches a translation memory. serviceName is recorded on
// saved entries.
func WithMemory(m Memory, serviceName string) Option {
	return func(p *Pipeline) {
		p.memory = m
		p.serviceName = serviceName
	}
}

// WithLogger sets the pipeline's logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// New builds a Pipeline around t.
func New(t Translator, opts ...Option) *Pipeline {
	p := &Pipeline{
		translator: t,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TranslateDocument translates the body of the DOCX at inputPath into
// targetLanguage and writes the result to outputPath. Every archive member
// except word/document.xml passes through byte-for-byte. The output file is
// only created once the whole tree has been rewritten; per-unit backend
// failures are logged and skipped, never fatal.
func (p *Pipeline) TranslateDocument(ctx context.Context, inputPath, outputPath, targetLanguage string) error {
	if !strings.EqualFold(filepath.Ext(inputPath), ".docx") {
		return docx.NewFormatError(inputPath, "not a .docx file", nil)
	}

	pkg, err := docx.Unpack(inputPath)
	if err != nil {
		return err
	}
	defer pkg.Close()

	data, err := pkg.ReadDocument()
	if err != nil {
		return err
	}

	doc, err := xmltree.Parse(data)
	if err != nil {
		return docx.NewFormatError(inputPath, "malformed document body", err)
	}

	units := wml.CollectUnits(doc.Root)
	p.logger.Info("collected translation units",
		"document", inputPath,
		"units", len(units),
		"target_language", targetLanguage)

	for _, unit := range units {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("translation cancelled: %w", err)
		}
		p.translateUnit(ctx, unit, targetLanguage)
	}

	out, err := doc.Serialize()
	if err != nil {
		return docx.NewFormatError(inputPath, "failed to serialize document body", err)
	}
	if err := pkg.WriteDocument(out); err != nil {
		return err
	}

	return pkg.Pack(outputPath)
}

// translateUnit resolves one unit's translation and applies it. The
// "leave untranslated on failure" policy lives here: a backend error, the
// failure sentinel, or an empty result all leave the container untouched.
func (p *Pipeline) translateUnit(ctx context.Context, unit wml.Unit, targetLanguage string) {
	if p.memory != nil {
		cached, found, err := p.memory.Lookup(ctx, unit.Text, targetLanguage)
		if err != nil {
			p.logger.Warn("translation memory lookup failed", "position", unit.Position(), "error", err)
		} else if found {
			p.logger.Debug("translation memory hit", "position", unit.Position())
			wml.ApplyUnit(unit, cached)
			return
		}
	}

	translated, err := p.translator.Translate(ctx, unit.Text, targetLanguage)
	if err != nil || translated == translator.Sentinel || strings.TrimSpace(translated) == "" {
		p.logger.Warn("translation failed, keeping original text",
			"position", unit.Position(),
			"error", err)
		return
	}

	wml.ApplyUnit(unit, translated)

	if p.memory != nil {
		if err := p.memory.Save(ctx, unit.Text, targetLanguage, translated, p.serviceName); err != nil {
			p.logger.Warn("translation memory save failed", "position", unit.Position(), "error", err)
		}
	}
}
