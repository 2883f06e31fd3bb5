// Package pipeline coordinates one document's journey: text analysis,
// type classification, structuring, type-specific refinement, and record
// assembly. Each run is independent and side-effect-free; failures in one
// document never touch another.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/stipsportal/docintel/constants"
	"github.com/stipsportal/docintel/internal/classify"
	"github.com/stipsportal/docintel/internal/normalize"
	"github.com/stipsportal/docintel/internal/ocr"
)

// DocumentInput is one document to process: its name, bytes, and the other
// filenames in the same batch (read-only, used for classification only).
type DocumentInput struct {
	Filename string
	Data     []byte
	Siblings []string
}

// Result is the per-document outcome: the assembled record plus the routing
// metadata a caller needs to name and summarize the output.
type Result struct {
	Filename     string
	JSONName     string
	DetectedType constants.DocType
	RawText      string
	Record       normalize.Record
}

// Processor runs the classify -> structure -> refine -> assemble pipeline.
type Processor struct {
	Logger    *slog.Logger
	Extractor ocr.TextExtractor
	Engine    *normalize.Engine

	now func() time.Time
}

func NewProcessor(logger *slog.Logger, extractor ocr.TextExtractor, engine *normalize.Engine) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Extractor: extractor, Engine: engine, now: time.Now}
}

// ProcessDocument processes a single document end to end. Only the text
// analysis step can fail; everything downstream fails closed into the
// record itself.
func (p *Processor) ProcessDocument(ctx context.Context, in DocumentInput) (Result, error) {
	start := p.now()
	p.Logger.Info("pipeline.process.start",
		"document", in.Filename,
		"format", constants.MapExtToFormat(filepath.Ext(in.Filename)),
		"bytes", len(in.Data),
	)

	analysis, err := p.Extractor.Analyze(ctx, in.Data)
	if err != nil {
		p.Logger.Error("pipeline.analyze.failed", "document", in.Filename, "error", err)
		return Result{}, fmt.Errorf("analyze %s: %w", in.Filename, err)
	}

	detected := classify.Classify(in.Filename, analysis.Text, in.Siblings)
	p.Logger.Info("pipeline.classify.ok",
		"document", in.Filename,
		"detected_type", detected,
		"pages", analysis.Pages,
		"confidence", analysis.Confidence,
	)

	record := p.Engine.Structure(ctx, analysis.Text, detected, analysis.Confidence)

	// The refiner keys off the record's own label: the model may have
	// re-typed the document during structuring.
	if constants.IsDriverLicense(record.DocumentType()) {
		record = p.Engine.RefineLicense(ctx, record, analysis.Text)
	}

	assemble(record, analysis.Text, in.Filename, p.now())

	p.Logger.Info("pipeline.process.ok",
		"document", in.Filename,
		"detected_type", detected,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Result{
		Filename:     in.Filename,
		JSONName:     constants.JSONName(in.Filename),
		DetectedType: detected,
		RawText:      analysis.Text,
		Record:       record,
	}, nil
}

// assemble injects the caller-facing metadata keys. Both are exempt from
// empty-field stripping: RawData.text may legitimately be empty.
func assemble(record normalize.Record, rawText, filename string, now time.Time) {
	record["RawData"] = map[string]any{
		"text":     rawText,
		"filename": filename,
	}
	record["ProcessedDate"] = now.Format("2006-01-02 15:04:05")
}
