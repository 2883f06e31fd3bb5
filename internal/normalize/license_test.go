package normalize

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func licenseRecord() Record {
	return Record{
		KeyDocumentType:    "DriverLicense - Front Side",
		KeyConfidenceScore: float64(0.88),
		"LicenseNumber":    "DL S1234567",
		"FullName":         "JANE DOE",
	}
}

func TestRefineLicense_NonLicensePassthrough(t *testing.T) {
	f := &fakeCompleter{}
	rec := Record{KeyDocumentType: "Insurance", KeyConfidenceScore: float64(0.9)}

	got := newEngine(f).RefineLicense(context.Background(), rec, "raw")
	if f.calls != 0 {
		t.Fatalf("model called %d times for non-license record, want 0", f.calls)
	}
	if !reflect.DeepEqual(got, rec) {
		t.Errorf("record changed: %v", got)
	}
}

func TestRefineLicense_AppliesRefinedRecord(t *testing.T) {
	f := &fakeCompleter{responses: []string{
		"```json\n{\"DocumentType\": \"DriverLicense - Front Side\", \"ConfidenceScore\": 0.88, \"LicenseNumber\": \"S1234567\", \"FullName\": \"JANE DOE\"}\n```",
	}}
	got := newEngine(f).RefineLicense(context.Background(), licenseRecord(), "raw ocr text")

	if got["LicenseNumber"] != "S1234567" {
		t.Errorf("LicenseNumber = %v, want refined S1234567", got["LicenseNumber"])
	}
	if f.requests[0].Temperature != 0.1 {
		t.Errorf("refine temperature = %v, want 0.1", f.requests[0].Temperature)
	}
}

func TestRefineLicense_CallFailureKeepsOriginal(t *testing.T) {
	f := &fakeCompleter{err: errors.New("upstream down")}
	orig := licenseRecord()
	got := newEngine(f).RefineLicense(context.Background(), orig, "raw")

	if !reflect.DeepEqual(got, orig) {
		t.Errorf("record changed on failure: %v", got)
	}
}

func TestRefineLicense_MalformedResponseKeepsOriginal(t *testing.T) {
	f := &fakeCompleter{responses: []string{"not json at all"}}
	orig := licenseRecord()
	got := newEngine(f).RefineLicense(context.Background(), orig, "raw")

	if !reflect.DeepEqual(got, orig) {
		t.Errorf("record changed on malformed response: %v", got)
	}
}

func TestRefineLicense_EnvelopeReassertedAfterRefine(t *testing.T) {
	f := &fakeCompleter{responses: []string{`{"LicenseNumber": "S1234567", "Stale": null}`}}
	got := newEngine(f).RefineLicense(context.Background(), licenseRecord(), "raw")

	if got[KeyDocumentType] != "DriverLicense - Front Side" {
		t.Errorf("DocumentType = %v, want carried over", got[KeyDocumentType])
	}
	if got[KeyConfidenceScore] != float64(0.88) {
		t.Errorf("ConfidenceScore = %v, want carried over", got[KeyConfidenceScore])
	}
	if _, ok := got["Stale"]; ok {
		t.Error("null field survived refinement stripping")
	}
}
