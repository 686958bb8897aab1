// Package voyage is the Voyage AI embedding gateway. Voyage serves an
// OpenAI-shaped /embeddings endpoint, so requests go through go-openai with
// a body rewrite for the fields Voyage names differently.
package voyage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/metrics"
)

// PlaceholderKey is the sample key shipped in example env files.
const PlaceholderKey = "your_voyage_api_key"

// Defaults for the Voyage API.
const (
	DefaultBaseURL    = "https://api.voyageai.com/v1"
	DefaultModel      = "voyage-3-large"
	DefaultDimensions = 2048
	DefaultInputType  = "query"
	DefaultTimeout    = 10 * time.Second
)

// Embedder is an embedding provider backed by the Voyage AI API.
type Embedder struct {
	client     *openai.Client
	apiKey     string
	model      openai.EmbeddingModel
	dimensions int
	provider   string
	logger     *zap.Logger
}

// Config holds the embedding provider settings.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Dimensions int
	InputType  string
	Timeout    time.Duration
	Provider   string
	Logger     *zap.Logger
}

// NewEmbedder creates a Voyage embedding provider. Empty fields take defaults.
func NewEmbedder(cfg *Config) *Embedder {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	inputType := cfg.InputType
	if inputType == "" {
		inputType = DefaultInputType
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	provider := cfg.Provider
	if provider == "" {
		provider = "voyage"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = strings.TrimRight(baseURL, "/")
	clientCfg.HTTPClient = &rewriter{
		next:      &http.Client{Timeout: timeout},
		inputType: inputType,
	}

	return &Embedder{
		client:     openai.NewClientWithConfig(clientCfg),
		apiKey:     cfg.APIKey,
		model:      openai.EmbeddingModel(model),
		dimensions: cfg.Dimensions,
		provider:   provider,
		logger:     logger,
	}
}

// Configured reports whether a real API key is set.
func (e *Embedder) Configured() bool {
	key := strings.TrimSpace(e.apiKey)
	return key != "" && key != PlaceholderKey
}

// Embed implements domain.Embedder. Returns the vector and usage with transport-level metrics.
func (e *Embedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if !e.Configured() {
		return domain.EmbeddingResult{}, domain.ErrEmbeddingNotConfigured
	}

	req := openai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	}
	if e.dimensions > 0 {
		req.Dimensions = e.dimensions
	}

	model := string(e.model)
	start := time.Now()

	resp, err := e.client.CreateEmbeddings(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(e.provider, model, "api_error").Inc()
		e.logger.Warn("Voyage request failed", zap.Duration("duration", duration), zap.Error(err))
		return domain.EmbeddingResult{}, parseAPIError(err)
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(e.provider, model, "empty_response").Inc()
		return domain.EmbeddingResult{}, domain.NewEmbeddingError("empty embedding response", nil)
	}

	metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, model, "success").Inc()
	metrics.EmbeddingRequestDuration.WithLabelValues(e.provider, model).Observe(duration.Seconds())

	return domain.EmbeddingResult{
		Embedding:   resp.Data[0].Embedding,
		TotalTokens: resp.Usage.TotalTokens,
	}, nil
}

// parseAPIError extracts a human-readable error from the API response.
// Every result unwraps to domain.ErrEmbeddingService; 401 also to domain.ErrEmbeddingAuth.
func parseAPIError(err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: %w", domain.ErrEmbeddingAuth, err)
		}
		detail := extractDetail(reqErr.Body)
		if detail == "" {
			detail = string(reqErr.Body)
		}
		return domain.NewEmbeddingError(
			fmt.Sprintf("embedding API error %d: %s", reqErr.HTTPStatusCode, detail), err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: %w", domain.ErrEmbeddingAuth, err)
		}
		return domain.NewEmbeddingError(
			fmt.Sprintf("embedding API error %d: %s", apiErr.HTTPStatusCode, apiErr.Message), err)
	}

	return domain.NewEmbeddingError("embedding request failed", err)
}

// extractDetail extracts the "detail" field from a JSON error body (Voyage error format).
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
