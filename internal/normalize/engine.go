// Package normalize turns raw OCR text into a canonical structured record:
// it prompts the extraction model, defends against whatever comes back, and
// applies the type-specific correction passes.
package normalize

import (
	"context"
	"log/slog"
	"strings"

	"github.com/stipsportal/docintel/constants"
	"github.com/stipsportal/docintel/internal/jsontree"
	"github.com/stipsportal/docintel/internal/llm"
	"github.com/stipsportal/docintel/internal/mileage"
)

// Config holds behavior knobs for the structuring and refinement calls.
type Config struct {
	Temperature         float32 // structuring call, 0 means the deployment default
	MaxCompletionTokens int     // structuring call, default 8000
	RefineTemperature   float32 // license refinement, default 0.1
	RefineMaxTokens     int     // license refinement, default 700
}

// Engine is the structuring stage. It fails closed: every path returns a
// usable record, never an error and never nil.
type Engine struct {
	completer llm.Completer
	cfg       Config
	logger    *slog.Logger
}

func NewEngine(completer llm.Completer, cfg Config, logger *slog.Logger) *Engine {
	if cfg.MaxCompletionTokens <= 0 {
		cfg.MaxCompletionTokens = 8000
	}
	if cfg.RefineTemperature <= 0 {
		cfg.RefineTemperature = 0.1
	}
	if cfg.RefineMaxTokens <= 0 {
		cfg.RefineMaxTokens = 700
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{completer: completer, cfg: cfg, logger: logger}
}

// Structure converts raw OCR text into a structured record for the detected
// document type. Blank input short-circuits without a model call; malformed
// model output degrades to an error-tagged record.
func (e *Engine) Structure(ctx context.Context, text string, docType constants.DocType, confidence float32) Record {
	if strings.TrimSpace(text) == "" {
		return ErrorRecord("No text provided for normalization.", "")
	}

	raw, err := e.completer.Complete(ctx, llm.CompletionRequest{
		System:              buildSystemPrompt(),
		User:                buildUserPrompt(text, docType, confidence),
		Temperature:         e.cfg.Temperature,
		MaxCompletionTokens: e.cfg.MaxCompletionTokens,
	})
	if err != nil {
		e.logger.Error("normalize.structure.call_failed", "doc_type", docType, "error", err)
		return ErrorRecord("Text normalization failed", err.Error())
	}

	parsed, err := llm.ParseObject(raw)
	if err != nil {
		e.logger.Warn("normalize.structure.invalid_json", "doc_type", docType, "raw_len", len(raw))
		return ErrorRecord("Invalid JSON returned from model.", "")
	}

	record := e.canonicalize(Record(parsed), docType, confidence)

	// Odometer photos are where the generic extractor misreads most; the
	// local pattern pass overrules it for the three reading keys.
	if strings.Contains(strings.ToLower(string(docType)), "odometer") ||
		strings.Contains(strings.ToLower(text), "odometer") {
		mergeMileage(record, mileage.Extract(text))
	}

	e.logger.Info("normalize.structure.ok", "doc_type", docType, "keys", len(record))
	return record
}

// canonicalize enforces the record invariants: the required envelope keys
// are present and well-typed, and no empty containers or nulls survive
// anywhere in the tree.
func (e *Engine) canonicalize(record Record, docType constants.DocType, confidence float32) Record {
	if _, ok := record[KeyDocumentType]; !ok {
		record[KeyDocumentType] = string(docType)
	}
	if _, ok := record[KeyConfidenceScore]; !ok {
		record[KeyConfidenceScore] = float64(confidence)
	}

	docTypeVal := record[KeyDocumentType]
	confVal := record[KeyConfidenceScore]

	record = Record(jsontree.StripEmptyMap(record))

	// The envelope keys are exempt from stripping.
	record[KeyDocumentType] = docTypeVal
	record[KeyConfidenceScore] = confVal

	if !validEnvelope(record) {
		e.logger.Warn("normalize.envelope_reset", "doc_type", docType)
		record[KeyDocumentType] = string(docType)
		record[KeyConfidenceScore] = float64(confidence)
	}
	return record
}

func mergeMileage(record Record, r mileage.Reading) {
	if r.Odometer != "" {
		record["OdometerReading"] = r.Odometer
		record["Unit"] = r.Unit
	}
	if r.Trip != "" {
		record["TripReading"] = r.Trip
	}
}
