package normalize

import (
	"context"

	"github.com/stipsportal/docintel/constants"
	"github.com/stipsportal/docintel/internal/jsontree"
	"github.com/stipsportal/docintel/internal/llm"
)

// RefineLicense re-asks the model to clean up driver's-license identifier
// fields (spurious ID/DL/LIC prefixes, front/back merges) with the raw OCR
// text as context. Records of any other type pass through untouched, and
// every failure path returns the input record unchanged: refinement never
// blocks the pipeline.
func (e *Engine) RefineLicense(ctx context.Context, record Record, rawText string) Record {
	if !constants.IsDriverLicense(record.DocumentType()) {
		return record
	}

	system, user := buildRefinePrompt(record, rawText)
	raw, err := e.completer.Complete(ctx, llm.CompletionRequest{
		System:              system,
		User:                user,
		Temperature:         e.cfg.RefineTemperature,
		MaxCompletionTokens: e.cfg.RefineMaxTokens,
	})
	if err != nil {
		e.logger.Warn("normalize.refine_license.call_failed", "error", err)
		return record
	}

	parsed, err := llm.ParseObject(raw)
	if err != nil {
		e.logger.Warn("normalize.refine_license.invalid_json", "raw_len", len(raw))
		return record
	}

	refined := Record(jsontree.StripEmptyMap(parsed))

	// The refinement pass must not regress the envelope invariant.
	if _, ok := refined[KeyDocumentType]; !ok {
		refined[KeyDocumentType] = record[KeyDocumentType]
	}
	if _, ok := refined[KeyConfidenceScore]; !ok {
		refined[KeyConfidenceScore] = record[KeyConfidenceScore]
	}
	if !validEnvelope(refined) {
		refined[KeyDocumentType] = record[KeyDocumentType]
		refined[KeyConfidenceScore] = record[KeyConfidenceScore]
		if !validEnvelope(refined) {
			e.logger.Warn("normalize.refine_license.bad_envelope")
			return record
		}
	}

	e.logger.Info("normalize.refine_license.ok", "keys", len(refined))
	return refined
}
