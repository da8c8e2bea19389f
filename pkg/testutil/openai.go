package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// ChatRequest is the subset of a chat-completion request the fake server records
type ChatRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Stream    bool          `json:"stream"`
	Messages  []ChatMessage `json:"messages"`
}

// ChatMessage keeps content raw because it is either a string or a list of parts
type ChatMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// ContentPart is one element of a multi-part user message
type ContentPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL *struct {
		URL string `json:"url"`
	} `json:"image_url,omitempty"`
}

// Text returns the content when it is a plain string
func (m ChatMessage) Text() string {
	var s string
	_ = json.Unmarshal(m.Content, &s)
	return s
}

// Parts returns the content when it is a list of parts
func (m ChatMessage) Parts() []ContentPart {
	var parts []ContentPart
	_ = json.Unmarshal(m.Content, &parts)
	return parts
}

// FakeCompletionServer emulates the chat/completions route of an
// OpenAI-compatible API and records what it receives.
type FakeCompletionServer struct {
	*httptest.Server

	mu         sync.Mutex
	requests   []ChatRequest
	authHeader string

	// Content is returned as the first choice's message
	Content string
	// NoChoices makes the server answer with an empty choices list
	NoChoices bool
	// StatusCode other than 200 makes the server answer with an API error
	StatusCode int
	// ErrorMessage is used as error.message when StatusCode is not 200
	ErrorMessage string
}

// NewFakeCompletionServer starts a fake server answering with content.
// It is closed when the test finishes.
func NewFakeCompletionServer(t *testing.T, content string) *FakeCompletionServer {
	t.Helper()

	f := &FakeCompletionServer{Content: content, StatusCode: http.StatusOK}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Close)
	return f
}

// BaseURL is the value to configure as the API base URL
func (f *FakeCompletionServer) BaseURL() string {
	return f.URL + "/v1"
}

// Requests returns every recorded request in arrival order
func (f *FakeCompletionServer) Requests() []ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ChatRequest(nil), f.requests...)
}

// AuthHeader returns the Authorization header of the last request
func (f *FakeCompletionServer) AuthHeader() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authHeader
}

func (f *FakeCompletionServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/chat/completions") {
		http.NotFound(w, r)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.authHeader = r.Header.Get("Authorization")
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if f.StatusCode != http.StatusOK {
		w.WriteHeader(f.StatusCode)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"message": f.ErrorMessage,
				"type":    "invalid_request_error",
				"code":    "fake_error",
			},
		})
		return
	}

	choices := []map[string]interface{}{
		{
			"index":         0,
			"message":       map[string]interface{}{"role": "assistant", "content": f.Content},
			"finish_reason": "stop",
		},
	}
	if f.NoChoices {
		choices = []map[string]interface{}{}
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 0,
		"model":   req.Model,
		"choices": choices,
		"usage": map[string]interface{}{
			"prompt_tokens":     1,
			"completion_tokens": 1,
			"total_tokens":      2,
		},
	})
}
