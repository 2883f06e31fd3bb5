package ocr

import (
	"context"
	"time"
)

// TextExtractor is stage 1: document bytes -> text. The engine behind it is
// a black box; swapping the vendor must not change the pipeline's contracts.
type TextExtractor interface {
	Analyze(ctx context.Context, document []byte) (AnalysisResult, error)
}

// AnalysisResult is the layout-analysis output for one document.
type AnalysisResult struct {
	Text       string  // full extracted text, possibly empty
	Pages      int     // page count, >= 0
	Confidence float32 // average word confidence in [0,1]
	Language   string  // detected language, e.g. "en"
	AnalyzedOn string  // engine-side completion timestamp
	Duration   time.Duration
}
