package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/ollama/ollama/api"
)

type GeminiClient struct {
	apiKey     string
	httpClient *http.Client
	url        string
	model      string
}

func NewGeminiClient(model string) LLMClient {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		// Providers are designed for dependency injection.
		// If the API key is not set, we log a fatal error.
		logger.Fatal("GEMINI_API_KEY environment variable is not set")
		return nil
	}

	return &GeminiClient{
		apiKey:     apiKey,
		httpClient: &http.Client{},
		url:        "https://generativelanguage.googleapis.com/v1beta/models",
		model:      model,
	}
}

func (c *GeminiClient) Capabilities() Capability {
	return NativeToolCalling
}

func (c *GeminiClient) GetModel() string {
	return c.model
}

func (c *GeminiClient) GenerateInference(ctx context.Context, messages []Message, callback func(chunk string) error, opts ...LLMOption) error {
	return c.GenerateInferenceWithTools(ctx, messages, callback, nil, opts...)
}

func (c *GeminiClient) GenerateInferenceWithTools(
	ctx context.Context,
	messages []Message,
	contentCallback func(chunk string) error,
	toolCallback func(toolCalls []api.ToolCall) error,
	opts ...LLMOption,
) error {
	settings := LLMSettings{
		model:       c.model,
		temperature: 0.7,
		maxTokens:   4096,
	}

	// Apply options
	for _, opt := range opts {
		opt(&settings)
	}

	request := geminiRequest{
		Contents: convertMessagesToGeminiFormat(messages),
		GenerationConfig: geminiGenerationConfig{
			Temperature:     settings.temperature,
			MaxOutputTokens: settings.maxTokens,
		},
	}

	if settings.system != "" {
		request.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: settings.system}},
		}
	}

	if len(settings.tools) > 0 {
		request.Tools = convertToolsToGeminiFormat(settings.tools)
	}

	return c.makeRequest(ctx, &settings, request, contentCallback, toolCallback)
}

func (c *GeminiClient) makeRequest(
	ctx context.Context,
	settings *LLMSettings,
	request geminiRequest,
	contentCallback func(chunk string) error,
	toolCallback func(toolCalls []api.ToolCall) error,
) error {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("error marshaling request: %w", err)
	}

	ctx, cancel := withCallTimeout(ctx, settings)
	defer cancel()

	url := fmt.Sprintf("%s/%s:generateContent", c.url, settings.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var response geminiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("error unmarshaling response: %w", err)
	}

	if len(response.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}

	var text string
	var toolCalls []api.ToolCall

	for _, part := range response.Candidates[0].Content.Parts {
		if part.FunctionCall != nil {
			toolCalls = append(toolCalls, api.ToolCall{
				Function: api.ToolCallFunction{
					Name:      part.FunctionCall.Name,
					Arguments: part.FunctionCall.Args,
				},
			})
		}
		text += part.Text
	}

	if len(toolCalls) > 0 && toolCallback != nil {
		return toolCallback(toolCalls)
	}

	if text != "" && contentCallback != nil {
		return contentCallback(text)
	}

	return nil
}

// convertMessagesToGeminiFormat maps chat roles to Gemini content roles.
// Gemini uses "model" for assistant turns; tool results go back as user turns.
func convertMessagesToGeminiFormat(messages []Message) []geminiContent {
	contents := make([]geminiContent, 0, len(messages))
	for _, msg := range messages {
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: msg.Content}},
		})
	}
	return contents
}

// convertToolsToGeminiFormat converts Ollama tools to Gemini function declarations
func convertToolsToGeminiFormat(tools []api.Tool) []geminiTool {
	if len(tools) == 0 {
		return nil
	}

	declarations := make([]geminiFunctionDeclaration, len(tools))
	for i, tool := range tools {
		declarations[i] = geminiFunctionDeclaration{
			Name:        tool.Function.Name,
			Description: tool.Function.Description,
			Parameters:  tool.Function.Parameters,
		}
	}

	return []geminiTool{{FunctionDeclarations: declarations}}
}

// Gemini API types
type geminiRequest struct {
	Contents          []geminiContent        `json:"contents"`
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
	Tools             []geminiTool           `json:"tools,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text         string              `json:"text,omitempty"`
	FunctionCall *geminiFunctionCall `json:"functionCall,omitempty"`
}

type geminiFunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiTool struct {
	FunctionDeclarations []geminiFunctionDeclaration `json:"functionDeclarations"`
}

type geminiFunctionDeclaration struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  interface{} `json:"parameters"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}
