package constants

import "testing"

func TestMapExtToFormat(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{ext: ".pdf", want: PDF},
		{ext: "PDF", want: PDF},
		{ext: ".JPG", want: IMAGE},
		{ext: "jpeg", want: IMAGE},
		{ext: ".png", want: IMAGE},
		{ext: ".docx", want: ""},
		{ext: "", want: ""},
	}
	for _, tt := range tests {
		if got := MapExtToFormat(tt.ext); got != tt.want {
			t.Errorf("MapExtToFormat(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestNormalizeExt(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{ext: ".PDF", want: "pdf"},
		{ext: "Jpg", want: "jpg"},
		{ext: "", want: ""},
	}
	for _, tt := range tests {
		if got := NormalizeExt(tt.ext); got != tt.want {
			t.Errorf("NormalizeExt(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestJSONName(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{filename: "scan.pdf", want: "scan.json"},
		{filename: "dir/photo.JPG", want: "photo.json"},
		{filename: "no_extension", want: "no_extension.json"},
	}
	for _, tt := range tests {
		if got := JSONName(tt.filename); got != tt.want {
			t.Errorf("JSONName(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
