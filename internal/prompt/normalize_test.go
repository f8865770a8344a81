package prompt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatMagnitude(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1_234_567_890, "1.23 billion"},
		{2_500_000, "2.50 million"},
		{4_200, "4.20 thousand"},
		{7.5, "7.50"},
		{0, "0.00"},
		{1_000, "1.00 thousand"},
		{999.999, "1000.00"},
		{1_000_000, "1.00 million"},
		{1e9, "1.00 billion"},
		{3.2e12, "3200.00 billion"},
		{-2_500_000, "-2.50 million"},
		{-42, "-42.00"},
	}

	for _, tt := range tests {
		if got := FormatMagnitude(tt.in); got != tt.want {
			t.Errorf("FormatMagnitude(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeFillsRequiredFields(t *testing.T) {
	got := Normalize(map[string]any{
		"country_name": "Atlantis",
		"population":   nil,
	})

	for _, field := range RequiredFields {
		if got[field] != Unavailable {
			t.Errorf("%s = %v, want %q", field, got[field], Unavailable)
		}
	}
	if got["country_name"] != "Atlantis" {
		t.Errorf("country_name = %v, want Atlantis", got["country_name"])
	}
}

func TestNormalizeFormatsEveryNumber(t *testing.T) {
	in := map[string]any{
		"country_name":                "Canada",
		"population":                  38_000_000.0,
		"urban_population":            250,
		"gdp":                         int64(1_988_000_000_000),
		"gdp_growth":                  1.5,
		"gdp_per_capita":              52_000.0,
		"exports":                     float32(4200),
		"imports":                     Unavailable,
		"surface_area":                9_984_670.0,
		"urban_population_growth":     nil,
		"tourists":                    nil,
		"trade_balance_status":        StatusDeficit,
		"urban_population_percentage": 81.578947,
	}

	want := map[string]any{
		"country_name":                "Canada",
		"population":                  "38.00 million",
		"urban_population":            "250.00",
		"gdp":                         "1988.00 billion",
		"gdp_growth":                  "1.50",
		"gdp_per_capita":              "52.00 thousand",
		"exports":                     "4.20 thousand",
		"imports":                     Unavailable,
		"surface_area":                "9.98 million",
		"urban_population_growth":     Unavailable,
		"tourists":                    Unavailable,
		"trade_balance_status":        StatusDeficit,
		"urban_population_percentage": "81.58",
	}

	if diff := cmp.Diff(want, Normalize(in)); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	in := map[string]any{"gdp": 12.0}

	_ = Normalize(in)

	if len(in) != 1 || in["gdp"] != 12.0 {
		t.Errorf("Normalize mutated its input: %v", in)
	}
}
