package ingest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "scan.pdf", want: true},
		{path: "photo.JPG", want: true},
		{path: "Photo.Jpeg", want: true},
		{path: "shot.PNG", want: true},
		{path: "notes.docx", want: false},
		{path: "archive.tar.gz", want: false},
		{path: "no_extension", want: false},
	}
	for _, tt := range tests {
		if got := Allowed(tt.path); got != tt.want {
			t.Errorf("Allowed(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"b_title.pdf", "a_odometer.JPG", "skip.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(sub, "license.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ScanDirectory(dir)
	if err != nil {
		t.Fatalf("ScanDirectory() error = %v", err)
	}
	want := []string{
		filepath.Join(dir, "a_odometer.JPG"),
		filepath.Join(dir, "b_title.pdf"),
		filepath.Join(sub, "license.png"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ScanDirectory() = %v, want %v", got, want)
	}
}
