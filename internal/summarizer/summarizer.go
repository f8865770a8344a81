// Package summarizer turns country records into LLM-written narratives.
package summarizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/econbrief/econbrief/internal/models"
	"github.com/econbrief/econbrief/internal/prompt"
)

// System roles sent with each kind of summary.
const (
	CountrySystemRole   = "You are a helpful assistant that generates concise country summaries based on provided data."
	ParameterSystemRole = "You are a helpful assistant that generates concise summaries based on economic data."
)

// Operation names recorded in inference_logs.
const (
	OperationCountrySummary   = "country_summary"
	OperationParameterSummary = "parameter_summary"
)

// ErrEmptyCompletion is returned when the provider answers without any choice.
var ErrEmptyCompletion = errors.New("completion returned no choices")

// Request is one chat completion: a system role plus a single user prompt.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float32

	// Operation and Country label the call in logs and metrics.
	Operation string
	Country   string
}

// Completer is an LLM completion provider.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Options tune the requests built by a Service.
type Options struct {
	Temperature      float32
	MaxTokens        int
	SummaryMaxTokens int
}

// Service renders prompts from records and sends them to a Completer.
type Service struct {
	catalog   *prompt.Catalog
	completer Completer
	opts      Options
}

// NewService wires a prompt catalog to a completer.
func NewService(catalog *prompt.Catalog, completer Completer, opts Options) *Service {
	return &Service{catalog: catalog, completer: completer, opts: opts}
}

// CountrySummary writes the short overview of record.
func (s *Service) CountrySummary(ctx context.Context, record models.CountryRecord) (string, error) {
	text, err := s.catalog.BuildRecord(prompt.KindCountrySummary, record)
	if err != nil {
		return "", fmt.Errorf("failed to build country summary prompt: %w", err)
	}

	return s.completer.Complete(ctx, Request{
		System:      CountrySystemRole,
		Prompt:      text,
		MaxTokens:   s.opts.SummaryMaxTokens,
		Temperature: s.opts.Temperature,
		Operation:   OperationCountrySummary,
		Country:     record.CountryName,
	})
}

// ParameterSummary writes the analysis selected by parameter and reports the
// template that was used.
func (s *Service) ParameterSummary(ctx context.Context, record models.CountryRecord, parameter string) (prompt.Kind, string, error) {
	kind, text, err := s.Prompt(record, parameter)
	if err != nil {
		return kind, "", err
	}

	summary, err := s.completer.Complete(ctx, Request{
		System:      ParameterSystemRole,
		Prompt:      text,
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
		Operation:   OperationParameterSummary,
		Country:     record.CountryName,
	})
	return kind, summary, err
}

// Prompt renders the parameter-selected prompt without calling the LLM.
func (s *Service) Prompt(record models.CountryRecord, parameter string) (prompt.Kind, string, error) {
	kind := prompt.Select(parameter)
	text, err := s.catalog.BuildRecord(kind, record)
	if err != nil {
		return kind, "", fmt.Errorf("failed to build %s prompt: %w", kind, err)
	}
	return kind, text, nil
}
