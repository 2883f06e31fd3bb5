package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stipsportal/docintel/constants"
	"github.com/stipsportal/docintel/internal/llm"
	"github.com/stipsportal/docintel/internal/normalize"
	"github.com/stipsportal/docintel/internal/ocr"
)

type fakeExtractor struct {
	text       string
	confidence float32
	err        error
}

func (f *fakeExtractor) Analyze(_ context.Context, _ []byte) (ocr.AnalysisResult, error) {
	if f.err != nil {
		return ocr.AnalysisResult{}, f.err
	}
	return ocr.AnalysisResult{Text: f.text, Pages: 1, Confidence: f.confidence, Language: "en"}, nil
}

type scriptedCompleter struct {
	responses []string
	calls     int
}

func (s *scriptedCompleter) Complete(_ context.Context, _ llm.CompletionRequest) (string, error) {
	if s.calls >= len(s.responses) {
		return "", errors.New("unexpected completion call")
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp, nil
}

func newProcessor(ex ocr.TextExtractor, c llm.Completer) *Processor {
	return NewProcessor(nil, ex, normalize.NewEngine(c, normalize.Config{}, nil))
}

func TestProcessDocument_Success(t *testing.T) {
	ex := &fakeExtractor{text: "certificate of title lienholder", confidence: 0.93}
	c := &scriptedCompleter{responses: []string{`{"Owner": "Jane Doe"}`}}
	p := newProcessor(ex, c)

	res, err := p.ProcessDocument(context.Background(), DocumentInput{Filename: "scan.pdf", Data: []byte{1}})
	if err != nil {
		t.Fatalf("ProcessDocument() error = %v", err)
	}
	if res.DetectedType != constants.Title {
		t.Errorf("DetectedType = %q, want Title", res.DetectedType)
	}
	if res.JSONName != "scan.json" {
		t.Errorf("JSONName = %q, want scan.json", res.JSONName)
	}
	raw, ok := res.Record["RawData"].(map[string]any)
	if !ok {
		t.Fatalf("RawData missing: %v", res.Record)
	}
	if raw["filename"] != "scan.pdf" || raw["text"] != "certificate of title lienholder" {
		t.Errorf("RawData = %v", raw)
	}
	if _, ok := res.Record["ProcessedDate"]; !ok {
		t.Error("ProcessedDate missing")
	}
	if res.Record["DocumentType"] != "Title" {
		t.Errorf("DocumentType = %v, want Title", res.Record["DocumentType"])
	}
}

func TestProcessDocument_EmptyTextSkipsModel(t *testing.T) {
	ex := &fakeExtractor{text: ""}
	c := &scriptedCompleter{}
	p := newProcessor(ex, c)

	res, err := p.ProcessDocument(context.Background(), DocumentInput{Filename: "blank.pdf"})
	if err != nil {
		t.Fatalf("ProcessDocument() error = %v", err)
	}
	if c.calls != 0 {
		t.Errorf("model called %d times for empty text, want 0", c.calls)
	}
	if res.Record["error"] != "No text provided for normalization." {
		t.Errorf("error = %v, want empty-input message", res.Record["error"])
	}
	if _, ok := res.Record["RawData"]; !ok {
		t.Error("metadata missing from error record")
	}
}

func TestProcessDocument_MalformedModelOutput(t *testing.T) {
	ex := &fakeExtractor{text: "some text", confidence: 0.5}
	c := &scriptedCompleter{responses: []string{"absolutely not json"}}
	p := newProcessor(ex, c)

	res, err := p.ProcessDocument(context.Background(), DocumentInput{Filename: "odd.pdf"})
	if err != nil {
		t.Fatalf("ProcessDocument() error = %v, want record-level degradation", err)
	}
	if res.Record["error"] != "Invalid JSON returned from model." {
		t.Errorf("error = %v", res.Record["error"])
	}
}

func TestProcessDocument_LicenseRefinementRuns(t *testing.T) {
	ex := &fakeExtractor{text: "driver license date of birth 01/01/1990", confidence: 0.9}
	c := &scriptedCompleter{responses: []string{
		`{"DocumentType": "DriverLicense", "ConfidenceScore": 0.9, "LicenseNumber": "DL S1234567"}`,
		`{"DocumentType": "DriverLicense", "ConfidenceScore": 0.9, "LicenseNumber": "S1234567"}`,
	}}
	p := newProcessor(ex, c)

	res, err := p.ProcessDocument(context.Background(), DocumentInput{Filename: "scan.pdf"})
	if err != nil {
		t.Fatalf("ProcessDocument() error = %v", err)
	}
	if c.calls != 2 {
		t.Fatalf("completion calls = %d, want structuring + refinement", c.calls)
	}
	if res.Record["LicenseNumber"] != "S1234567" {
		t.Errorf("LicenseNumber = %v, want refined value", res.Record["LicenseNumber"])
	}
}

func TestBatch_OrderAndFailureIsolation(t *testing.T) {
	ex := &switchExtractor{}
	c := &loopingCompleter{response: `{"Field": "v"}`}
	b := NewBatch(newProcessor(ex, c), 4, nil)

	files := []BatchFile{
		{Filename: "a_title.pdf", Data: []byte{1}},
		{Filename: "bad.pdf", Data: []byte{2}},
		{Filename: "odometer.jpg", Data: []byte{3}},
	}
	results, summary := b.Run(context.Background(), files)

	if len(results) != 3 || len(summary) != 3 {
		t.Fatalf("got %d results, %d summary entries", len(results), len(summary))
	}
	for i, f := range files {
		if summary[i].Document != f.Filename {
			t.Errorf("summary[%d] = %q, want %q (order must match input)", i, summary[i].Document, f.Filename)
		}
	}
	if summary[0].Status != constants.ItemStatusSuccess || summary[0].DetectedType != "Title" {
		t.Errorf("summary[0] = %+v", summary[0])
	}
	if summary[1].Status != constants.ItemStatusError || summary[1].Error == "" {
		t.Errorf("summary[1] = %+v, want recorded failure", summary[1])
	}
	if summary[2].Status != constants.ItemStatusSuccess || summary[2].JSONFile != "odometer.json" {
		t.Errorf("summary[2] = %+v", summary[2])
	}
}

// switchExtractor fails for one marker byte and succeeds otherwise; keying
// off the document bytes keeps it safe under concurrent workers.
type switchExtractor struct{}

func (s *switchExtractor) Analyze(_ context.Context, data []byte) (ocr.AnalysisResult, error) {
	if len(data) > 0 && data[0] == 2 {
		return ocr.AnalysisResult{}, fmt.Errorf("unsupported input format")
	}
	return ocr.AnalysisResult{Text: "odometer 68263 mi", Pages: 1, Confidence: 0.8}, nil
}

type loopingCompleter struct {
	response string
}

func (l *loopingCompleter) Complete(_ context.Context, _ llm.CompletionRequest) (string, error) {
	return l.response, nil
}
