package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/SaiNageswarS/faq-agent/prompts"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/ollama/ollama/api"
)

type AnthropicClient struct {
	apiKey     string
	httpClient *http.Client
	url        string
	model      string
}

func NewAnthropicClient(model string) LLMClient {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		// Providers are designed for dependency injection.
		// If the API key is not set, we log a fatal error.
		logger.Fatal("ANTHROPIC_API_KEY environment variable is not set")
		return nil // This will never be reached, but it's good practice to return nil here.
	}

	return &AnthropicClient{
		apiKey:     apiKey,
		httpClient: &http.Client{},
		url:        "https://api.anthropic.com/v1/messages",
		model:      model,
	}
}

func (c *AnthropicClient) Capabilities() Capability {
	return 0 // Anthropic tool calling is emulated via prompt engineering
}

func (c *AnthropicClient) GetModel() string {
	return c.model
}

func (c *AnthropicClient) GenerateInference(ctx context.Context, messages []Message, callback func(chunk string) error, opts ...LLMOption) error {
	settings := LLMSettings{
		model:       c.model,
		temperature: 0.7,
		maxTokens:   4096,
	}

	// Apply options
	for _, opt := range opts {
		opt(&settings)
	}

	request := anthropicRequest{
		Model:       settings.model,
		MaxTokens:   settings.maxTokens,
		Temperature: settings.temperature,
		System:      settings.system,
		Messages:    messages,
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("error marshaling request: %w", err)
	}

	ctx, cancel := withCallTimeout(ctx, &settings)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

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

	var response anthropicResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("error unmarshaling response: %w", err)
	}

	if len(response.Content) == 0 {
		return fmt.Errorf("no content in response")
	}

	return callback(response.Content[0].Text)
}

func (c *AnthropicClient) GenerateInferenceWithTools(
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

	// If no tools are provided, use regular inference
	if len(settings.tools) == 0 {
		return c.GenerateInference(ctx, messages, contentCallback, opts...)
	}

	// Use unified inference approach
	return c.unifiedInferenceWithTools(ctx, messages, contentCallback, toolCallback, settings.tools)
}

// unifiedInferenceWithTools emulates tool calling with a single prompt that
// asks the model to either answer directly or request tool calls as JSON.
func (c *AnthropicClient) unifiedInferenceWithTools(
	ctx context.Context,
	messages []Message,
	contentCallback func(chunk string) error,
	toolCallback func(toolCalls []api.ToolCall) error,
	tools []api.Tool,
) error {
	// Create tool descriptions for the prompt
	toolDescriptions := make([]string, len(tools))
	for i, tool := range tools {
		// Format: "tool_name: description (parameters: param1:type, param2:type, ...)"
		params := []string{}
		if tool.Function.Parameters.Properties != nil {
			for paramName, paramProp := range tool.Function.Parameters.Properties {
				paramType := "string" // default
				if len(paramProp.Type) > 0 {
					paramType = string(paramProp.Type[0])
				}

				// Check if parameter is required
				isRequired := false
				for _, req := range tool.Function.Parameters.Required {
					if req == paramName {
						isRequired = true
						break
					}
				}

				paramStr := fmt.Sprintf("%s:%s", paramName, paramType)
				if isRequired {
					paramStr += " (required)"
				}
				params = append(params, paramStr)
			}
		}

		var paramStr string
		if len(params) > 0 {
			paramStr = fmt.Sprintf(" (parameters: %s)", strings.Join(params, ", "))
		}

		toolDescriptions[i] = fmt.Sprintf("%s: %s%s",
			tool.Function.Name,
			tool.Function.Description,
			paramStr)
	}

	// Get the last user message as the query
	var query string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			query = messages[i].Content
			break
		}
	}

	systemPrompt, userPrompt, err := prompts.RenderInferenceWithToolPrompt(prompts.InferenceWithToolPromptData{
		ToolDescriptions: toolDescriptions,
		Query:            query,
	})
	if err != nil {
		return fmt.Errorf("error rendering unified inference prompt: %w", err)
	}

	inferenceMessages := []Message{
		{Role: "user", Content: userPrompt},
	}

	var inferenceResponse strings.Builder
	err = c.GenerateInference(ctx, inferenceMessages,
		func(chunk string) error {
			inferenceResponse.WriteString(chunk)
			return nil
		},
		WithSystemPrompt(systemPrompt),
		WithMaxTokens(4096))

	if err != nil {
		return fmt.Errorf("error getting unified inference: %w", err)
	}

	return c.parseUnifiedResponse(inferenceResponse.String(), contentCallback, toolCallback)
}

// parseUnifiedResponse parses the unified response and calls appropriate callbacks
func (c *AnthropicClient) parseUnifiedResponse(
	response string,
	contentCallback func(chunk string) error,
	toolCallback func(toolCalls []api.ToolCall) error,
) error {
	// Clean the response to extract JSON
	response = strings.TrimSpace(response)

	// Find JSON content within the response
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || startIdx >= endIdx {
		return fmt.Errorf("no valid JSON found in response")
	}

	jsonStr := response[startIdx : endIdx+1]

	var unifiedResponse unifiedInferenceResponse
	if err := json.Unmarshal([]byte(jsonStr), &unifiedResponse); err != nil {
		return fmt.Errorf("error unmarshaling unified response: %w", err)
	}

	// Handle the response based on action
	switch unifiedResponse.Action {
	case "direct_answer":
		if unifiedResponse.Content == "" {
			return fmt.Errorf("direct_answer action but no content provided")
		}
		if contentCallback == nil {
			return nil
		}
		return contentCallback(unifiedResponse.Content)

	case "use_tools":
		if len(unifiedResponse.ToolCalls) == 0 {
			return fmt.Errorf("use_tools action but no tool calls provided")
		}

		// Convert to api.ToolCall format
		toolCalls := make([]api.ToolCall, len(unifiedResponse.ToolCalls))
		for i, tc := range unifiedResponse.ToolCalls {
			toolCalls[i] = api.ToolCall{
				Function: api.ToolCallFunction{
					Name:      tc.Function.Name,
					Arguments: tc.Function.Arguments,
				},
			}
		}

		if toolCallback == nil {
			return nil
		}
		return toolCallback(toolCalls)

	default:
		return fmt.Errorf("unknown action: %s", unifiedResponse.Action)
	}
}

type anthropicRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Messages    []Message `json:"messages"`
	System      string    `json:"system,omitempty"`
	Temperature float64   `json:"temperature"`
}

// anthropicResponse represents the response from Anthropic API
type anthropicResponse struct {
	Content []content `json:"content"`
	ID      string    `json:"id"`
	Model   string    `json:"model"`
	Role    string    `json:"role"`
	Type    string    `json:"type"`
}

// content represents the content in the response
type content struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// unifiedInferenceResponse represents the unified response structure
type unifiedInferenceResponse struct {
	Action    string `json:"action"` // "use_tools" or "direct_answer"
	Content   string `json:"content,omitempty"`
	ToolCalls []struct {
		Function struct {
			Name      string                 `json:"name"`
			Arguments map[string]interface{} `json:"arguments"`
		} `json:"function"`
		Reasoning string `json:"reasoning"`
	} `json:"tool_calls,omitempty"`
}
