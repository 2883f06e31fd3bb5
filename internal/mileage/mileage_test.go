package mileage

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Reading
	}{
		{
			name: "menu label rejected, last mileage marker wins",
			text: "Trip Computer A/B 1234.5 mi 68321 mi",
			want: Reading{Odometer: "68321", Unit: "miles"},
		},
		{
			name: "tm prefixed trip with fractional trim",
			text: "TM 2471.60 mi, 68263.0 mi",
			want: Reading{Odometer: "68263", Unit: "miles", Trip: "2471.6"},
		},
		{
			name: "value-first trip marker",
			text: "dashboard 123.4 tm total 45678 mi",
			want: Reading{Odometer: "45678", Unit: "miles", Trip: "123.4"},
		},
		{
			name: "kilometers detected",
			text: "odometer 120500 km",
			want: Reading{Odometer: "120500", Unit: "km"},
		},
		{
			name: "no unit marker falls back to largest bare number",
			text: "trip: 210.3 total 68263",
			want: Reading{Odometer: "68263", Unit: "miles", Trip: "210.3"},
		},
		{
			name: "integer odometer keeps its trailing zero",
			text: "68320 mi",
			want: Reading{Odometer: "68320", Unit: "miles"},
		},
		{
			name: "trip info label rejected",
			text: "trip: 99 info 12000 mi",
			want: Reading{Odometer: "12000", Unit: "miles"},
		},
		{
			name: "empty input",
			text: "   ",
			want: Reading{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if got != tt.want {
				t.Errorf("Extract(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}
