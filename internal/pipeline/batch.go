package pipeline

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/stipsportal/docintel/constants"
)

// BatchFile is one member of an upload batch.
type BatchFile struct {
	Filename string
	Data     []byte
}

// SummaryEntry is the per-document line of a batch summary.
type SummaryEntry struct {
	Document     string               `json:"document"`
	Status       constants.ItemStatus `json:"status"`
	DetectedType string               `json:"detected_type,omitempty"`
	JSONFile     string               `json:"json_file,omitempty"`
	Error        string               `json:"error,omitempty"`
}

// ItemResult pairs a batch member with its outcome. Exactly one of Result
// and Err is set.
type ItemResult struct {
	Input  BatchFile
	Result *Result
	Err    error
}

// Batch fans a document set out over the processor. Documents are
// independent, so they may run concurrently; results and summary entries
// always come back in input order, and one document's failure never aborts
// the rest.
type Batch struct {
	Processor   *Processor
	Concurrency int
	Logger      *slog.Logger
}

func NewBatch(p *Processor, concurrency int, logger *slog.Logger) *Batch {
	if concurrency <= 0 {
		concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Batch{Processor: p, Concurrency: concurrency, Logger: logger}
}

// Run processes every file in the batch. The sibling filename set is
// computed once up front and treated as read-only by all workers.
func (b *Batch) Run(ctx context.Context, files []BatchFile) ([]ItemResult, []SummaryEntry) {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Filename
	}

	results := make([]ItemResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.Concurrency)
	for i, f := range files {
		g.Go(func() error {
			in := DocumentInput{
				Filename: f.Filename,
				Data:     f.Data,
				Siblings: siblingsOf(names, i),
			}
			res, err := b.Processor.ProcessDocument(gctx, in)
			if err != nil {
				results[i] = ItemResult{Input: f, Err: err}
				return nil
			}
			results[i] = ItemResult{Input: f, Result: &res}
			return nil
		})
	}
	_ = g.Wait()

	summary := make([]SummaryEntry, len(results))
	for i, r := range results {
		if r.Err != nil {
			summary[i] = SummaryEntry{
				Document: r.Input.Filename,
				Status:   constants.ItemStatusError,
				Error:    r.Err.Error(),
			}
			continue
		}
		summary[i] = SummaryEntry{
			Document:     r.Input.Filename,
			Status:       constants.ItemStatusSuccess,
			DetectedType: string(r.Result.DetectedType),
			JSONFile:     r.Result.JSONName,
		}
	}

	b.Logger.Info("pipeline.batch.done", "documents", len(files), "failures", countFailures(results))
	return results, summary
}

func siblingsOf(names []string, i int) []string {
	siblings := make([]string, 0, len(names)-1)
	siblings = append(siblings, names[:i]...)
	return append(siblings, names[i+1:]...)
}

func countFailures(results []ItemResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
