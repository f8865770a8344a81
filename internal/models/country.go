package models

import "time"

// Raw attribute names as they appear in the provider payload, the
// country_economy table and the prompt templates.
const (
	FieldCountryName           = "country_name"
	FieldSurfaceArea           = "surface_area"
	FieldExports               = "exports"
	FieldImports               = "imports"
	FieldTourists              = "tourists"
	FieldGDP                   = "gdp"
	FieldGDPGrowth             = "gdp_growth"
	FieldGDPPerCapita          = "gdp_per_capita"
	FieldPopulation            = "population"
	FieldUrbanPopulation       = "urban_population"
	FieldUrbanPopulationGrowth = "urban_population_growth"
)

// RawFields lists every optional raw attribute of a CountryRecord.
var RawFields = []string{
	FieldSurfaceArea,
	FieldExports,
	FieldImports,
	FieldTourists,
	FieldGDP,
	FieldGDPGrowth,
	FieldGDPPerCapita,
	FieldPopulation,
	FieldUrbanPopulation,
	FieldUrbanPopulationGrowth,
}

// CountryRecord is one row of country_economy. Nil attributes are unknown
// (absent from the provider or NULL in the store).
type CountryRecord struct {
	CountryName           string   `json:"country_name"`
	SurfaceArea           *float64 `json:"surface_area"`
	Exports               *float64 `json:"exports"`
	Imports               *float64 `json:"imports"`
	Tourists              *float64 `json:"tourists"`
	GDP                   *float64 `json:"gdp"`
	GDPGrowth             *float64 `json:"gdp_growth"`
	GDPPerCapita          *float64 `json:"gdp_per_capita"`
	Population            *float64 `json:"population"`
	UrbanPopulation       *float64 `json:"urban_population"`
	UrbanPopulationGrowth *float64 `json:"urban_population_growth"`
}

// EconomyData is the economic subset of a CountryRecord. It is what the
// economy endpoints read and write; surface area and tourists are left alone.
type EconomyData struct {
	CountryName           string   `json:"country_name"`
	Imports               *float64 `json:"imports"`
	UrbanPopulationGrowth *float64 `json:"urban_population_growth"`
	Exports               *float64 `json:"exports"`
	Population            *float64 `json:"population"`
	UrbanPopulation       *float64 `json:"urban_population"`
	GDP                   *float64 `json:"gdp"`
	GDPGrowth             *float64 `json:"gdp_growth"`
	GDPPerCapita          *float64 `json:"gdp_per_capita"`
}

// Attributes returns the record as a name→value mapping. Every raw field is
// present; unknown values are nil.
func (c CountryRecord) Attributes() map[string]any {
	values := map[string]*float64{
		FieldSurfaceArea:           c.SurfaceArea,
		FieldExports:               c.Exports,
		FieldImports:               c.Imports,
		FieldTourists:              c.Tourists,
		FieldGDP:                   c.GDP,
		FieldGDPGrowth:             c.GDPGrowth,
		FieldGDPPerCapita:          c.GDPPerCapita,
		FieldPopulation:            c.Population,
		FieldUrbanPopulation:       c.UrbanPopulation,
		FieldUrbanPopulationGrowth: c.UrbanPopulationGrowth,
	}

	attrs := make(map[string]any, len(values))
	for name, v := range values {
		if v == nil {
			attrs[name] = nil
			continue
		}
		attrs[name] = *v
	}
	return attrs
}

// Economy projects the record onto its economic fields.
func (c CountryRecord) Economy() EconomyData {
	return EconomyData{
		CountryName:           c.CountryName,
		Imports:               c.Imports,
		UrbanPopulationGrowth: c.UrbanPopulationGrowth,
		Exports:               c.Exports,
		Population:            c.Population,
		UrbanPopulation:       c.UrbanPopulation,
		GDP:                   c.GDP,
		GDPGrowth:             c.GDPGrowth,
		GDPPerCapita:          c.GDPPerCapita,
	}
}

// CountrySummary is the response body of the plain country summary.
type CountrySummary struct {
	Country     string    `json:"country"`
	Summary     string    `json:"summary"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ParameterSummary is the response body of a template-selected summary.
type ParameterSummary struct {
	Country     string    `json:"country"`
	Parameter   string    `json:"parameter"`
	Summary     string    `json:"summary"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Float returns a pointer to v. Handy for building records in code and tests.
func Float(v float64) *float64 {
	return &v
}
