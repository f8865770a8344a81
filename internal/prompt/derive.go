package prompt

import (
	"encoding/json"
	"math"

	"github.com/econbrief/econbrief/internal/models"
)

// Derived metric names exposed to the templates.
const (
	MetricUrbanPopulationPercentage = "urban_population_percentage"
	MetricPopulationDensity         = "population_density"
	MetricTradeToGDPRatio           = "trade_to_gdp_ratio"
	MetricTradeBalance              = "trade_balance"
	MetricTradeBalanceStatus        = "trade_balance_status"
	MetricExportsToGDPRatio         = "exports_to_gdp_ratio"
	MetricImportsToGDPRatio         = "imports_to_gdp_ratio"
	MetricTradeOpennessIndex        = "trade_openness_index"
)

// Trade balance classifications. A zero balance is a deficit.
const (
	StatusSurplus = "surplus"
	StatusDeficit = "deficit"
)

// Metrics holds the ratios derived from a country's raw attributes.
type Metrics struct {
	UrbanPopulationPercentage float64
	PopulationDensity         float64
	TradeToGDPRatio           float64
	TradeBalance              float64
	TradeBalanceStatus        string
	ExportsToGDPRatio         float64
	ImportsToGDPRatio         float64
	TradeOpennessIndex        float64
}

// Values returns the metrics keyed by their template placeholder names.
func (m Metrics) Values() map[string]any {
	return map[string]any{
		MetricUrbanPopulationPercentage: m.UrbanPopulationPercentage,
		MetricPopulationDensity:         m.PopulationDensity,
		MetricTradeToGDPRatio:           m.TradeToGDPRatio,
		MetricTradeBalance:              m.TradeBalance,
		MetricTradeBalanceStatus:        m.TradeBalanceStatus,
		MetricExportsToGDPRatio:         m.ExportsToGDPRatio,
		MetricImportsToGDPRatio:         m.ImportsToGDPRatio,
		MetricTradeOpennessIndex:        m.TradeOpennessIndex,
	}
}

// Derive computes the derived metrics from a raw attribute mapping.
//
// A key missing from values counts as 0 when used as a numerator or term and
// as 1 when used as a denominator. A key that is present but null or not a
// number, or a zero denominator, makes the whole expression 0.
func Derive(values map[string]any) Metrics {
	exports := term(values, models.FieldExports)
	imports := term(values, models.FieldImports)
	gdp := denominator(values, models.FieldGDP)
	trade := sum(exports, imports)

	m := Metrics{
		UrbanPopulationPercentage: percent(safeRatio(term(values, models.FieldUrbanPopulation), denominator(values, models.FieldPopulation))),
		PopulationDensity:         safeRatio(term(values, models.FieldPopulation), denominator(values, models.FieldSurfaceArea)).value(),
		TradeToGDPRatio:           percent(safeRatio(trade, gdp)),
		TradeBalance:              difference(exports, imports).value(),
		ExportsToGDPRatio:         percent(safeRatio(exports, gdp)),
		ImportsToGDPRatio:         percent(safeRatio(imports, gdp)),
		// Same formula as TradeToGDPRatio; templates reference both names.
		TradeOpennessIndex: percent(safeRatio(trade, gdp)),
	}

	m.TradeBalanceStatus = StatusDeficit
	if m.TradeBalance > 0 {
		m.TradeBalanceStatus = StatusSurplus
	}

	return m
}

// operand is a resolved input to a derived-metric expression. An invalid
// operand poisons every expression it takes part in.
type operand struct {
	v     float64
	valid bool
}

func (o operand) value() float64 {
	if !o.valid || math.IsNaN(o.v) || math.IsInf(o.v, 0) {
		return 0
	}
	return o.v
}

// term resolves a numerator or additive operand; missing keys count as 0.
func term(values map[string]any, name string) operand {
	return lookup(values, name, 0)
}

// denominator resolves a divisor; missing keys count as 1.
func denominator(values map[string]any, name string) operand {
	return lookup(values, name, 1)
}

func lookup(values map[string]any, name string, fallback float64) operand {
	raw, ok := values[name]
	if !ok {
		return operand{v: fallback, valid: true}
	}
	v, ok := toFloat(raw)
	return operand{v: v, valid: ok}
}

// safeRatio divides numerator by denominator, yielding 0 instead of a fault
// for invalid operands and zero denominators.
func safeRatio(numerator, denominator operand) operand {
	if !numerator.valid || !denominator.valid || denominator.v == 0 {
		return operand{v: 0, valid: true}
	}
	return operand{v: numerator.v / denominator.v, valid: true}
}

func sum(a, b operand) operand {
	return operand{v: a.v + b.v, valid: a.valid && b.valid}
}

func difference(a, b operand) operand {
	return operand{v: a.v - b.v, valid: a.valid && b.valid}
}

func percent(o operand) float64 {
	return operand{v: o.v * 100, valid: o.valid}.value()
}

// toFloat reports whether v is a number and returns it as float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
