package lmstudio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sfy45/Gen-UI/configs"
	"github.com/sfy45/Gen-UI/internal/domain"
	"github.com/sfy45/Gen-UI/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure LMStudioClientAdapter implements ConversationGateway interface
var _ output.ConversationGateway = (*LMStudioClientAdapter)(nil)

// Retry configuration constants
const (
	defaultRetryAttempts = 3
	initialDelay         = 500 * time.Millisecond
	maxDelay             = 5 * time.Second
	backoffMultiplier    = 2
)

// LMStudioClientAdapter struct - Conversation adapter for LM Studio's OpenAI-compatible API
type LMStudioClientAdapter struct {
	httpClient    *http.Client
	baseURL       string
	configModel   string
	systemPrompt  string
	temperature   *float64
	timeout       time.Duration
	retryAttempts int

	// Model caching
	cachedModel string
	modelMu     sync.RWMutex
}

// NewLMStudioClientAdapter func - Creates new LM Studio client adapter
func NewLMStudioClientAdapter(config configs.LMStudio, ai configs.AI) *LMStudioClientAdapter {
	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:1234"
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = 60 * time.Second
	}

	retryAttempts := config.MaxRetries
	if retryAttempts <= 0 {
		retryAttempts = defaultRetryAttempts
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	adapter := &LMStudioClientAdapter{
		httpClient:    httpClient,
		baseURL:       baseURL,
		configModel:   config.Model,
		systemPrompt:  ai.SystemPrompt,
		timeout:       timeout,
		retryAttempts: retryAttempts,
	}
	if ai.Temperature > 0 {
		temperature := ai.Temperature
		adapter.temperature = &temperature
	}

	logrus.Infof("LM Studio client adapter initialized with base URL: %s, timeout: %v", baseURL, timeout)

	return adapter
}

// Configured is always true; a local server needs no credential
func (a *LMStudioClientAdapter) Configured() bool {
	return true
}

// Reply sends the system prompt, the session history and the new message as one completion
func (a *LMStudioClientAdapter) Reply(ctx context.Context, message string, history []domain.ChatMessage) (*domain.ConversationReply, error) {
	messages := make([]chatMessageAPI, 0, len(history)+2)
	if a.systemPrompt != "" {
		messages = append(messages, chatMessageAPI{Role: string(domain.ChatMessageRoleSystem), Content: a.systemPrompt})
	}
	for _, msg := range history {
		messages = append(messages, chatMessageAPI{Role: string(msg.Role), Content: msg.Content})
	}
	messages = append(messages, chatMessageAPI{Role: string(domain.ChatMessageRoleUser), Content: message})

	model, err := a.getModel(ctx)
	if err != nil {
		return nil, err
	}

	bodyBytes, err := json.Marshal(chatCompletionAPIRequest{
		Model:       model,
		Messages:    messages,
		Temperature: a.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", domain.ErrInternal, err)
	}

	url := fmt.Sprintf("%s/v1/chat/completions", a.baseURL)

	resp, err := a.retryWithBackoff(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return a.httpClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var apiResp chatCompletionAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse chat completion response: %v", domain.ErrUpstream, err)
	}
	if len(apiResp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", domain.ErrUpstream)
	}

	logrus.Infof("Chat completion successful, model: %s, tokens: %d", apiResp.Model, apiResp.Usage.TotalTokens)

	return &domain.ConversationReply{
		Content: apiResp.Choices[0].Message.Content,
		Model:   apiResp.Model,
	}, nil
}

// retryWithBackoff executes an operation with exponential backoff retry logic.
// 4xx responses are not retried; all failures are wrapped in domain.ErrUpstream.
func (a *LMStudioClientAdapter) retryWithBackoff(ctx context.Context, operation func() (*http.Response, error)) (*http.Response, error) {
	var lastErr error
	delay := initialDelay

	for attempt := 1; attempt <= a.retryAttempts; attempt++ {
		resp, err := operation()

		switch {
		case err != nil:
			if !isTransientError(err) {
				return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
			}
			lastErr = err
			logrus.Warnf("LM Studio request attempt %d/%d failed with error: %v, retrying in %v", attempt, a.retryAttempts, err, delay)

		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return resp, nil

		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("%w: status %d - %s", domain.ErrUpstream, resp.StatusCode, string(body))

		default:
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: status %d - %s", resp.StatusCode, string(body))
			logrus.Warnf("LM Studio request attempt %d/%d failed with status %d, retrying in %v", attempt, a.retryAttempts, resp.StatusCode, delay)
		}

		if attempt < a.retryAttempts {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: context cancelled: %v", domain.ErrUpstream, ctx.Err())
			case <-time.After(delay):
			}

			delay = delay * backoffMultiplier
			if delay > maxDelay {
				delay = maxDelay
			}
		}
	}

	return nil, fmt.Errorf("%w: %v after %d attempts", domain.ErrUpstream, lastErr, a.retryAttempts)
}

// isTransientError determines if a transport error should be retried
func isTransientError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	for _, pattern := range []string{"connection refused", "connection reset", "no such host", "network is unreachable", "i/o timeout", "eof"} {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return false
}

// ListModels queries the /v1/models endpoint for the models LM Studio has loaded
func (a *LMStudioClientAdapter) ListModels(ctx context.Context) ([]string, error) {
	url := fmt.Sprintf("%s/v1/models", a.baseURL)

	resp, err := a.retryWithBackoff(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		return a.httpClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	defer resp.Body.Close()

	var modelsResp modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&modelsResp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse models response: %v", domain.ErrUpstream, err)
	}

	models := make([]string, len(modelsResp.Data))
	for i, m := range modelsResp.Data {
		models[i] = m.ID
	}

	logrus.Infof("Listed %d models from LM Studio", len(models))

	return models, nil
}

// getModel returns the configured model, or the first loaded model, cached after the first call
func (a *LMStudioClientAdapter) getModel(ctx context.Context) (string, error) {
	a.modelMu.RLock()
	if a.cachedModel != "" {
		model := a.cachedModel
		a.modelMu.RUnlock()
		return model, nil
	}
	a.modelMu.RUnlock()

	a.modelMu.Lock()
	defer a.modelMu.Unlock()

	if a.cachedModel != "" {
		return a.cachedModel, nil
	}

	if a.configModel != "" {
		a.cachedModel = a.configModel
		return a.cachedModel, nil
	}

	models, err := a.ListModels(ctx)
	if err != nil {
		return "", err
	}
	if len(models) == 0 {
		return "", fmt.Errorf("%w: no models available in LM Studio", domain.ErrUpstream)
	}

	a.cachedModel = models[0]
	logrus.Infof("Selected first available model: %s", a.cachedModel)

	return a.cachedModel, nil
}

// API request/response structures for LM Studio's OpenAI-compatible API

type chatMessageAPI struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionAPIRequest struct {
	Model       string           `json:"model"`
	Messages    []chatMessageAPI `json:"messages"`
	Stream      bool             `json:"stream"`
	Temperature *float64         `json:"temperature,omitempty"`
}

type chatCompletionAPIResponse struct {
	ID      string `json:"id"`
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

type modelsResponse struct {
	Object string `json:"object"`
	Data   []struct {
		ID      string `json:"id"`
		Object  string `json:"object"`
		OwnedBy string `json:"owned_by"`
	} `json:"data"`
}
