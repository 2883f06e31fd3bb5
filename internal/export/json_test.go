package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEncodeJSON_PreservesNonASCII(t *testing.T) {
	b, err := EncodeJSON(map[string]any{"Amount": "£1,200.50", "Payee": "Müller & Co"})
	if err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}
	out := string(b)
	if !strings.Contains(out, "£1,200.50") {
		t.Errorf("currency symbol escaped: %s", out)
	}
	if !strings.Contains(out, "Müller & Co") {
		t.Errorf("ampersand or umlaut escaped: %s", out)
	}
	if !strings.Contains(out, "\n  ") {
		t.Errorf("output not indented: %s", out)
	}
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteJSON(dir, "scan.json", map[string]any{"DocumentType": "Title"})
	if err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if filepath.Base(path) != "scan.json" {
		t.Errorf("path = %s, want scan.json basename", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(b), `"DocumentType": "Title"`) {
		t.Errorf("content = %s", b)
	}
}
