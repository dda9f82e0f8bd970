package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/relay-ai/relay/internal/errors"
)

// NVIDIAConfig configures the NVIDIA NIM client.
type NVIDIAConfig struct {
	APIKey      string
	BaseURL     string // Default: https://integrate.api.nvidia.com/v1
	Model       string // e.g. "meta/llama-3.1-8b-instruct"
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	MaxRetries  int
}

// DefaultNVIDIAConfig returns default configuration for NIM.
func DefaultNVIDIAConfig(apiKey string) *NVIDIAConfig {
	return &NVIDIAConfig{
		APIKey:      apiKey,
		BaseURL:     "https://integrate.api.nvidia.com/v1",
		Model:       "meta/llama-3.1-8b-instruct",
		Temperature: 0.1,
		MaxTokens:   1000,
		Timeout:     60 * time.Second,
		MaxRetries:  3,
	}
}

// NVIDIAClient implements Model using the NVIDIA NIM chat completions API.
type NVIDIAClient struct {
	cfg            *NVIDIAConfig
	client         *http.Client
	circuitBreaker *errors.CircuitBreaker
	retryPolicy    *errors.Policy
}

// NewNVIDIAClient creates a new NIM client.
func NewNVIDIAClient(cfg *NVIDIAConfig) *NVIDIAClient {
	if cfg == nil {
		return nil
	}

	retryPolicy := &errors.Policy{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
		RetryIf: func(err error) bool {
			category := errors.GetCategory(err)
			return category == errors.CategoryTemporary || category == errors.CategoryRateLimit
		},
	}

	return &NVIDIAClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		circuitBreaker: errors.NewCircuitBreaker("nvidia", nil),
		retryPolicy:    retryPolicy,
	}
}

// Generate sends a prompt to NIM and returns the response.
func (c *NVIDIAClient) Generate(ctx context.Context, req *Request) (*Response, error) {
	if c == nil {
		return nil, errors.New(errors.CodeModelUnavailable, "NVIDIA client not initialized", errors.CategorySystem)
	}

	if !c.IsAvailable() {
		return nil, errors.NewBuilder(errors.CodeModelUnavailable, "NVIDIA API key not configured").
			System().
			WithSuggestion("Set NVIDIA_API_KEY environment variable or configure in config.toml").
			Build()
	}

	var result *Response
	var err error

	err = c.circuitBreaker.Execute(func() error {
		result, err = c.generateWithRetry(ctx, req)
		return err
	})

	return result, err
}

// generateWithRetry implements the actual API call with retry logic.
func (c *NVIDIAClient) generateWithRetry(ctx context.Context, req *Request) (*Response, error) {
	messages := []map[string]string{}
	if req.System != "" {
		messages = append(messages, map[string]string{"role": "system", "content": req.System})
	}
	messages = append(messages, map[string]string{"role": "user", "content": req.Prompt})

	body := map[string]any{
		"model":    c.cfg.Model,
		"messages": messages,
	}

	if req.MaxTokens > 0 {
		body["max_tokens"] = req.MaxTokens
	} else if c.cfg.MaxTokens > 0 {
		body["max_tokens"] = c.cfg.MaxTokens
	}

	if req.Temperature > 0 {
		body["temperature"] = req.Temperature
	} else {
		body["temperature"] = c.cfg.Temperature
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeModelInvalidResponse, "failed to marshal request", errors.CategoryPermanent)
	}

	respBody, retryErr := errors.DoWithResult(ctx, c.retryPolicy, func() ([]byte, error) {
		httpReq, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/chat/completions", bytes.NewReader(jsonBody))
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeNetworkUnavailable, "failed to create HTTP request", errors.CategoryTemporary)
		}

		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

		r, err := c.client.Do(httpReq)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeNetworkUnavailable, "network request failed", errors.CategoryTemporary)
		}

		b, readErr := io.ReadAll(r.Body)
		r.Body.Close()

		if readErr != nil {
			return nil, errors.Wrap(readErr, errors.CodeNetworkUnavailable, "failed to read response body", errors.CategoryTemporary)
		}

		switch r.StatusCode {
		case http.StatusOK:
			return b, nil
		case http.StatusTooManyRequests:
			return nil, rateLimitError(r)
		case http.StatusUnauthorized:
			return nil, errors.NewBuilder(errors.CodeModelUnavailable, "invalid API key").
				User().
				WithSuggestion("Check your NVIDIA API key").
				Build()
		case http.StatusBadRequest:
			return nil, errors.NewBuilder(errors.CodeModelInvalidResponse, "bad request - check model name and parameters").
				User().
				WithContext("response", string(b)).
				Build()
		case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
			return nil, errors.Temporary(errors.CodeModelUnavailable, fmt.Sprintf("API unavailable: %s", r.Status))
		default:
			return nil, errors.Temporary(errors.CodeModelUnavailable, fmt.Sprintf("API error (status %d): %s", r.StatusCode, string(b)))
		}
	})

	if retryErr != nil {
		return nil, retryErr
	}

	var nimResp nimResponse
	if err := json.Unmarshal(respBody, &nimResp); err != nil {
		return nil, errors.NewBuilder(errors.CodeModelParseError, "failed to parse API response").
			Permanent().
			Wrap(err).
			WithContext("response_body", string(respBody)).
			Build()
	}

	if len(nimResp.Choices) == 0 {
		return nil, errors.New(errors.CodeModelInvalidResponse, "API response contained no choices", errors.CategoryPermanent)
	}

	return &Response{
		Text:       nimResp.Choices[0].Message.Content,
		TokensUsed: nimResp.Usage.TotalTokens,
		Model:      nimResp.Model,
	}, nil
}

// rateLimitError builds a rate-limit error from response headers.
func rateLimitError(r *http.Response) error {
	retryAfter := 5 * time.Second
	if h := r.Header.Get("Retry-After"); h != "" {
		if secs, err := strconv.Atoi(h); err == nil && secs > 0 {
			retryAfter = time.Duration(secs) * time.Second
		}
	}
	return errors.RateLimit(errors.CodeModelRateLimit, "rate limited by NVIDIA API", retryAfter)
}

// IsAvailable checks if the client is configured.
func (c *NVIDIAClient) IsAvailable() bool {
	return c != nil && c.cfg != nil && c.cfg.APIKey != ""
}

// Name returns the model name.
func (c *NVIDIAClient) Name() string {
	if c != nil && c.cfg != nil {
		return c.cfg.Model
	}
	return "nvidia"
}

// nimResponse is the OpenAI-compatible chat completions envelope.
type nimResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}
