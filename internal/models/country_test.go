package models

import "testing"

func TestCountryRecord_Attributes(t *testing.T) {
	record := CountryRecord{
		CountryName: "Kenya",
		GDP:         Float(110_000),
		Population:  Float(54_000_000),
	}

	attrs := record.Attributes()

	if len(attrs) != len(RawFields) {
		t.Fatalf("Attributes() returned %d keys, want %d", len(attrs), len(RawFields))
	}

	for _, field := range RawFields {
		if _, ok := attrs[field]; !ok {
			t.Errorf("Attributes() missing key %q", field)
		}
	}

	if got := attrs[FieldGDP]; got != 110_000.0 {
		t.Errorf("gdp = %v, want 110000", got)
	}
	if got := attrs[FieldExports]; got != nil {
		t.Errorf("exports = %v, want nil", got)
	}
	if _, ok := attrs[FieldCountryName]; ok {
		t.Error("country_name should not be part of the raw attributes")
	}
}

func TestCountryRecord_Economy(t *testing.T) {
	record := CountryRecord{
		CountryName: "Chile",
		SurfaceArea: Float(756_102),
		Tourists:    Float(4_500),
		Exports:     Float(94_000),
		Imports:     Float(92_000),
	}

	economy := record.Economy()

	if economy.CountryName != "Chile" {
		t.Errorf("CountryName = %q, want Chile", economy.CountryName)
	}
	if economy.Exports == nil || *economy.Exports != 94_000 {
		t.Errorf("Exports = %v, want 94000", economy.Exports)
	}
	if economy.Imports == nil || *economy.Imports != 92_000 {
		t.Errorf("Imports = %v, want 92000", economy.Imports)
	}
	if economy.GDP != nil {
		t.Errorf("GDP = %v, want nil", *economy.GDP)
	}
}
