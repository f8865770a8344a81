package prompt

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/econbrief/econbrief/internal/models"
)

// Render executes the template of kind against values. Values are expected to
// be normalized already; a placeholder with no key in values is an error.
func (c *Catalog) Render(kind Kind, values map[string]any) (string, error) {
	tpl, ok := c.templates[kind]
	if !ok {
		return "", fmt.Errorf("unknown template %q", kind)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, values); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", kind, err)
	}
	return buf.String(), nil
}

// Build runs the whole pipeline for one country: the raw attributes are
// copied, country_name is injected, derived metrics are added, the result is
// normalized and finally rendered into the template of kind.
func (c *Catalog) Build(kind Kind, countryName string, raw map[string]any) (string, error) {
	data := make(map[string]any, len(raw)+9)
	for k, v := range raw {
		data[k] = v
	}
	data[models.FieldCountryName] = countryName

	for k, v := range Derive(data).Values() {
		data[k] = v
	}

	return c.Render(kind, Normalize(data))
}

// BuildRecord is Build for a stored or fetched record.
func (c *Catalog) BuildRecord(kind Kind, record models.CountryRecord) (string, error) {
	return c.Build(kind, record.CountryName, record.Attributes())
}

// fixed formats a number with the given precision. Anything that is not a
// number, such as Unavailable or an already formatted magnitude, is written
// verbatim.
func fixed(v any, precision int) string {
	if v == nil {
		return Unavailable
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', precision, 64)
	}
	return fmt.Sprint(v)
}
