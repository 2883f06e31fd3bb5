package llm

import "testing"

func TestParseObject(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantKey string
		wantVal string
		wantErr bool
	}{
		{
			name:    "plain json",
			raw:     `{"DocumentType": "Title"}`,
			wantKey: "DocumentType",
			wantVal: "Title",
		},
		{
			name:    "fenced with language tag",
			raw:     "Here you go:\n```json\n{\"DocumentType\": \"Odometer\"}\n```",
			wantKey: "DocumentType",
			wantVal: "Odometer",
		},
		{
			name:    "fenced without language tag",
			raw:     "```\n{\"Name\": \"Jane\"}\n```",
			wantKey: "Name",
			wantVal: "Jane",
		},
		{
			name:    "unpaired trailing fence",
			raw:     "explanation ```\n{\"Name\": \"Jane\"}",
			wantKey: "Name",
			wantVal: "Jane",
		},
		{
			name:    "plain prose is an error",
			raw:     "I could not extract anything useful.",
			wantErr: true,
		},
		{
			name:    "empty response is an error",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseObject(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseObject() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := m[tt.wantKey]; got != tt.wantVal {
				t.Errorf("ParseObject()[%q] = %v, want %q", tt.wantKey, got, tt.wantVal)
			}
		})
	}
}
