// Package countrydata fetches per-country indicators from an
// api-ninjas compatible country endpoint.
package countrydata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/econbrief/econbrief/internal/models"
)

// ErrNotFound is returned when the provider answers with an empty array.
var ErrNotFound = errors.New("country not found at provider")

// Error is an upstream failure: transport, non-2xx status or an
// undecodable body.
type Error struct {
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("country API returned status %d", e.StatusCode)
	}
	return "country API request failed: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Observer receives the outcome of every upstream call.
type Observer interface {
	ObserveUpstream(target, outcome string, duration time.Duration)
}

// Fetcher is what handlers need from the provider.
type Fetcher interface {
	Fetch(ctx context.Context, name string) (models.CountryRecord, error)
}

// Client talks to the country data API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	observer   Observer
	policy     RetryPolicy
}

// NewClient creates a provider client. A zero timeout means no client-side limit.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithRetry retries transient failures according to policy. Without it
// Fetch makes a single attempt.
func (c *Client) WithRetry(policy RetryPolicy) *Client {
	c.policy = policy
	return c
}

// WithObserver reports call outcomes to o.
func (c *Client) WithObserver(o Observer) *Client {
	c.observer = o
	return c
}

// Fetch requests the record for name. Fields the provider omits, sends as
// null, or sends as non-numbers come back as nil.
func (c *Client) Fetch(ctx context.Context, name string) (record models.CountryRecord, err error) {
	start := time.Now()
	defer func() {
		if c.observer == nil {
			return
		}
		outcome := "success"
		switch {
		case errors.Is(err, ErrNotFound):
			outcome = "not_found"
		case err != nil:
			outcome = "error"
		}
		c.observer.ObserveUpstream("country_api", outcome, time.Since(start))
	}()

	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return models.CountryRecord{}, fmt.Errorf("invalid provider url: %w", err)
	}
	query := endpoint.Query()
	query.Set("name", name)
	endpoint.RawQuery = query.Encode()

	err = retry(ctx, c.policy, func() error {
		var resp *http.Response
		record, resp, err = c.fetchOnce(ctx, endpoint.String(), name)
		return classify(err, resp)
	})
	return record, err
}

func (c *Client) fetchOnce(ctx context.Context, endpoint, name string) (models.CountryRecord, *http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.CountryRecord{}, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.CountryRecord{}, nil, &Error{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.CountryRecord{}, resp, &Error{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.CountryRecord{}, resp, &Error{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return models.CountryRecord{}, resp, &Error{Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	if len(rows) == 0 {
		return models.CountryRecord{}, resp, ErrNotFound
	}

	return recordFrom(name, rows[0]), resp, nil
}

func recordFrom(name string, row map[string]json.RawMessage) models.CountryRecord {
	return models.CountryRecord{
		CountryName:           name,
		SurfaceArea:           number(row[models.FieldSurfaceArea]),
		Exports:               number(row[models.FieldExports]),
		Imports:               number(row[models.FieldImports]),
		Tourists:              number(row[models.FieldTourists]),
		GDP:                   number(row[models.FieldGDP]),
		GDPGrowth:             number(row[models.FieldGDPGrowth]),
		GDPPerCapita:          number(row[models.FieldGDPPerCapita]),
		Population:            number(row[models.FieldPopulation]),
		UrbanPopulation:       number(row[models.FieldUrbanPopulation]),
		UrbanPopulationGrowth: number(row[models.FieldUrbanPopulationGrowth]),
	}
}

// number accepts JSON numbers and numeric strings.
func number(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		n = json.Number(strings.TrimSpace(s))
	}
	if n == "" {
		return nil
	}

	v, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return nil
	}
	return &v
}
