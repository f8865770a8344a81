package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"github.com/go-chi/chi/v5"
)

const maxCountryNameLength = 255

// ValidationError is a rejected request input. Error renders "field: message".
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateCountryName trims name and checks it fits the country_name column.
func ValidateCountryName(name string) (string, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return "", ValidationError{Field: "name", Message: "country name is required"}
	}

	if len(name) > maxCountryNameLength {
		return "", ValidationError{Field: "name", Message: fmt.Sprintf("country name must be at most %d bytes", maxCountryNameLength)}
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return "", ValidationError{Field: "name", Message: "country name contains control characters"}
		}
	}

	return name, nil
}

// countryName reads and validates the {name} path parameter.
func countryName(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "name")
	// chi matches against RawPath when the path has escapes that Path cannot
	// represent (such as %2F); those still need decoding.
	if r.URL.RawPath != "" {
		if decoded, err := url.PathUnescape(raw); err == nil {
			raw = decoded
		}
	}
	return ValidateCountryName(raw)
}
