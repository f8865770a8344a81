package models

import "time"

// InferenceLog is one completion call made on behalf of a request.
type InferenceLog struct {
	ID           int       `json:"id"`
	Provider     string    `json:"provider"`  // 'groq', 'openai', ...
	Model        string    `json:"model"`     // 'mixtral-8x7b-32768', 'gpt-4o-mini', ...
	Operation    string    `json:"operation"` // 'country_summary', 'parameter_summary'
	Country      string    `json:"country"`
	TokensUsed   int       `json:"tokens_used"`
	InputTokens  *int      `json:"input_tokens"`
	OutputTokens *int      `json:"output_tokens"`
	LatencyMs    *int      `json:"latency_ms"`
	Status       string    `json:"status"` // 'success', 'error'
	ErrorMessage *string   `json:"error_message"`
	Metadata     string    `json:"metadata"` // JSONB metadata
	CreatedAt    time.Time `json:"created_at"`
}

// InferenceLogStats aggregates inference_logs.
type InferenceLogStats struct {
	TotalCalls      int     `json:"total_calls"`
	TotalTokens     int64   `json:"total_tokens"`
	SuccessfulCalls int     `json:"successful_calls"`
	FailedCalls     int     `json:"failed_calls"`
	AvgLatencyMs    float64 `json:"avg_latency_ms"`
}

// InferenceLogQuery filters inference log listings.
type InferenceLogQuery struct {
	Operation string
	Country   string
	Status    string
	Limit     int
	Offset    int
}
