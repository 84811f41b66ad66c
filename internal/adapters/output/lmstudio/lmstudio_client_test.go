package lmstudio

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sfy45/Gen-UI/configs"
	"github.com/sfy45/Gen-UI/internal/domain"
)

const completionPayload = `{
	"id": "chatcmpl-123",
	"model": "test-model",
	"choices": [{"index": 0, "message": {"role": "assistant", "content": "Hello! How can I help you today?"}, "finish_reason": "stop"}],
	"usage": {"prompt_tokens": 10, "completion_tokens": 8, "total_tokens": 18}
}`

// TestNewLMStudioClientAdapterWithDefaultValues tests adapter construction with default values
func TestNewLMStudioClientAdapterWithDefaultValues(t *testing.T) {
	adapter := NewLMStudioClientAdapter(configs.LMStudio{}, configs.AI{})

	if adapter.baseURL != "http://localhost:1234" {
		t.Errorf("expected default baseURL to be http://localhost:1234, got: %s", adapter.baseURL)
	}
	if adapter.timeout != 60*time.Second {
		t.Errorf("expected default timeout to be 60s, got: %v", adapter.timeout)
	}
	if adapter.retryAttempts != defaultRetryAttempts {
		t.Errorf("expected default retry attempts %d, got: %d", defaultRetryAttempts, adapter.retryAttempts)
	}
	if adapter.temperature != nil {
		t.Errorf("expected no temperature, got: %v", *adapter.temperature)
	}
	if !adapter.Configured() {
		t.Error("expected LM Studio adapter to be configured")
	}
}

// TestReplySendsSystemPromptHistoryAndMessage tests request composition
func TestReplySendsSystemPromptHistoryAndMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("expected path /v1/chat/completions, got: %s", r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected Content-Type application/json, got: %s", r.Header.Get("Content-Type"))
		}

		var reqBody chatCompletionAPIRequest
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		if reqBody.Model != "test-model" || reqBody.Stream {
			t.Errorf("unexpected model/stream: %s %v", reqBody.Model, reqBody.Stream)
		}
		if reqBody.Temperature == nil || *reqBody.Temperature != 0.7 {
			t.Errorf("expected temperature 0.7, got %v", reqBody.Temperature)
		}

		wantRoles := []string{"system", "user", "assistant", "user"}
		if len(reqBody.Messages) != len(wantRoles) {
			t.Errorf("expected %d messages, got %d", len(wantRoles), len(reqBody.Messages))
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		for i, role := range wantRoles {
			if reqBody.Messages[i].Role != role {
				t.Errorf("message %d: expected role %s, got %s", i, role, reqBody.Messages[i].Role)
			}
		}
		if reqBody.Messages[3].Content != "And now?" {
			t.Errorf("expected new message last, got %q", reqBody.Messages[3].Content)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionPayload))
	}))
	defer server.Close()

	adapter := NewLMStudioClientAdapter(
		configs.LMStudio{BaseURL: server.URL, Model: "test-model", Timeout: 5},
		configs.AI{SystemPrompt: "You are a helpful assistant", Temperature: 0.7},
	)

	history := []domain.ChatMessage{
		{Role: domain.ChatMessageRoleUser, Content: "Hello!"},
		{Role: domain.ChatMessageRoleAssistant, Content: "Hi!"},
	}
	reply, err := adapter.Reply(context.Background(), "And now?", history)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if reply.Content != "Hello! How can I help you today?" || reply.Model != "test-model" {
		t.Errorf("unexpected reply: %+v", reply)
	}
}

// TestReplySelectsFirstListedModel tests model discovery and caching
func TestReplySelectsFirstListedModel(t *testing.T) {
	var listCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/models":
			atomic.AddInt32(&listCalls, 1)
			w.Write([]byte(`{"object":"list","data":[{"id":"model-a","object":"model","owned_by":"me"},{"id":"model-b","object":"model","owned_by":"me"}]}`))
		case "/v1/chat/completions":
			var reqBody chatCompletionAPIRequest
			json.NewDecoder(r.Body).Decode(&reqBody)
			if reqBody.Model != "model-a" {
				t.Errorf("expected first listed model, got %s", reqBody.Model)
			}
			w.Write([]byte(completionPayload))
		}
	}))
	defer server.Close()

	adapter := NewLMStudioClientAdapter(configs.LMStudio{BaseURL: server.URL}, configs.AI{})

	for i := 0; i < 2; i++ {
		if _, err := adapter.Reply(context.Background(), "hi", nil); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
	}
	if atomic.LoadInt32(&listCalls) != 1 {
		t.Errorf("expected model list to be fetched once, got %d", listCalls)
	}
}

// TestRetryLogicFor5xxErrors tests that server errors are retried
func TestRetryLogicFor5xxErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(completionPayload))
	}))
	defer server.Close()

	adapter := NewLMStudioClientAdapter(configs.LMStudio{BaseURL: server.URL, Model: "test-model", MaxRetries: 3}, configs.AI{})

	if _, err := adapter.Reply(context.Background(), "hi", nil); err != nil {
		t.Fatalf("expected success after retry, got: %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

// TestRetryExhaustion tests the error after all attempts fail
func TestRetryExhaustion(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	adapter := NewLMStudioClientAdapter(configs.LMStudio{BaseURL: server.URL, Model: "test-model", MaxRetries: 2}, configs.AI{})

	_, err := adapter.Reply(context.Background(), "hi", nil)
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got: %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

// TestNoRetryFor4xxErrors tests that client errors fail immediately
func TestNoRetryFor4xxErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad request"}`))
	}))
	defer server.Close()

	adapter := NewLMStudioClientAdapter(configs.LMStudio{BaseURL: server.URL, Model: "test-model", MaxRetries: 3}, configs.AI{})

	_, err := adapter.Reply(context.Background(), "hi", nil)
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got: %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("expected 1 call for 4xx error, got %d", calls)
	}
}

// TestIsTransientError tests transport error classification
func TestIsTransientError(t *testing.T) {
	if !isTransientError(errors.New("dial tcp: connection refused")) {
		t.Error("expected connection refused to be transient")
	}
	if !isTransientError(context.DeadlineExceeded) {
		t.Error("expected deadline exceeded to be transient")
	}
	if isTransientError(errors.New("unsupported protocol scheme")) {
		t.Error("expected unsupported protocol scheme to not be transient")
	}
}
