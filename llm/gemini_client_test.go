package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiClient(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	client := NewGeminiClient("gemini-1.5-flash")
	assert.NotNil(t, client)
	assert.Equal(t, "gemini-1.5-flash", client.GetModel())
	assert.Equal(t, NativeToolCalling, client.Capabilities())
}

func TestGeminiClientGenerateInference(t *testing.T) {
	var captured geminiRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		err := json.NewDecoder(r.Body).Decode(&captured)
		assert.NoError(t, err)

		response := geminiResponse{
			Candidates: []geminiCandidate{
				{Content: geminiContent{Parts: []geminiPart{{Text: "Hello from Gemini"}}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	t.Setenv("GEMINI_API_KEY", "test-key")
	client := NewGeminiClient("gemini-1.5-flash").(*GeminiClient)
	client.url = server.URL

	messages := []Message{
		{Role: "user", Content: "Hello"},
		{Role: "assistant", Content: "Hi!"},
		{Role: "user", Content: "How are you?"},
	}

	var result string
	err := client.GenerateInference(context.Background(), messages, func(chunk string) error {
		result = chunk
		return nil
	}, WithTemperature(0), WithSystemPrompt("You are Support Bot."))

	require.NoError(t, err)
	assert.Equal(t, "Hello from Gemini", result)

	// Role mapping and system instruction placement
	require.Len(t, captured.Contents, 3)
	assert.Equal(t, "user", captured.Contents[0].Role)
	assert.Equal(t, "model", captured.Contents[1].Role)
	assert.Equal(t, "user", captured.Contents[2].Role)
	require.NotNil(t, captured.SystemInstruction)
	assert.Equal(t, "You are Support Bot.", captured.SystemInstruction.Parts[0].Text)
	assert.Equal(t, float64(0), captured.GenerationConfig.Temperature)
}

func TestGeminiClientGenerateInferenceWithTools(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var captured geminiRequest
		err := json.NewDecoder(r.Body).Decode(&captured)
		assert.NoError(t, err)
		if assert.Len(t, captured.Tools, 1) {
			assert.Equal(t, "search_qa_by_category", captured.Tools[0].FunctionDeclarations[0].Name)
		}

		response := geminiResponse{
			Candidates: []geminiCandidate{
				{Content: geminiContent{Parts: []geminiPart{{
					FunctionCall: &geminiFunctionCall{
						Name: "search_qa_by_category",
						Args: map[string]any{"query": "How do I cancel?", "category": "Billing"},
					},
				}}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	t.Setenv("GEMINI_API_KEY", "test-key")
	client := NewGeminiClient("gemini-1.5-flash").(*GeminiClient)
	client.url = server.URL

	tool := api.Tool{
		Type: "function",
		Function: api.ToolFunction{
			Name:        "search_qa_by_category",
			Description: "Searches the FAQ knowledge base",
		},
	}

	var toolCalls []api.ToolCall
	err := client.GenerateInferenceWithTools(context.Background(),
		[]Message{{Role: "user", Content: "How do I cancel?"}},
		func(chunk string) error { return nil },
		func(calls []api.ToolCall) error {
			toolCalls = calls
			return nil
		},
		WithTools([]api.Tool{tool}),
	)

	require.NoError(t, err)
	require.Len(t, toolCalls, 1)
	assert.Equal(t, "search_qa_by_category", toolCalls[0].Function.Name)
	assert.Equal(t, "Billing", toolCalls[0].Function.Arguments["category"])
}

func TestGeminiClientAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	}))
	defer server.Close()

	t.Setenv("GEMINI_API_KEY", "test-key")
	client := NewGeminiClient("gemini-1.5-flash").(*GeminiClient)
	client.url = server.URL

	err := client.GenerateInference(context.Background(),
		[]Message{{Role: "user", Content: "Hello"}},
		func(chunk string) error { return nil },
	)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestGeminiClientNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiResponse{})
	}))
	defer server.Close()

	t.Setenv("GEMINI_API_KEY", "test-key")
	client := NewGeminiClient("gemini-1.5-flash").(*GeminiClient)
	client.url = server.URL

	err := client.GenerateInference(context.Background(),
		[]Message{{Role: "user", Content: "Hello"}},
		func(chunk string) error { return nil },
	)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}
