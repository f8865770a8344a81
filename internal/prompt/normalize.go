package prompt

import (
	"math"
	"strconv"

	"github.com/econbrief/econbrief/internal/models"
)

// Unavailable is rendered in place of any attribute we have no value for.
const Unavailable = "N/A"

// RequiredFields are always present in a normalized mapping, as Unavailable
// when the source mapping has no value for them.
var RequiredFields = []string{
	models.FieldPopulation,
	models.FieldUrbanPopulation,
	models.FieldUrbanPopulationGrowth,
	models.FieldGDP,
	models.FieldGDPGrowth,
	models.FieldGDPPerCapita,
	models.FieldExports,
	models.FieldImports,
	models.FieldSurfaceArea,
}

// Normalize returns a rendering-ready copy of values: missing or null
// required fields and any other null become Unavailable, numbers become
// magnitude strings, and everything else is passed through untouched.
func Normalize(values map[string]any) map[string]any {
	out := make(map[string]any, len(values)+len(RequiredFields))

	for key, v := range values {
		if v == nil {
			out[key] = Unavailable
			continue
		}
		if f, ok := toFloat(v); ok {
			out[key] = FormatMagnitude(f)
			continue
		}
		out[key] = v
	}

	for _, field := range RequiredFields {
		if _, ok := out[field]; !ok {
			out[field] = Unavailable
		}
	}

	return out
}

// FormatMagnitude renders v with two decimals, scaled to billions, millions
// or thousands when its absolute value reaches that unit.
func FormatMagnitude(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return strconv.FormatFloat(v/1e9, 'f', 2, 64) + " billion"
	case abs >= 1e6:
		return strconv.FormatFloat(v/1e6, 'f', 2, 64) + " million"
	case abs >= 1e3:
		return strconv.FormatFloat(v/1e3, 'f', 2, 64) + " thousand"
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}
