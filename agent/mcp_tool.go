package agent

import (
	"context"
	"slices"

	"github.com/ollama/ollama/api"
)

// MCPTool wraps an api.Tool and provides a handler for execution. Handlers
// are deterministic: plain text in, plain text out, no model call.
type MCPTool struct {
	api.Tool
	Handler func(ctx context.Context, params api.ToolCallFunctionArguments) string
}

// MCPToolBuilder defines an MCP tool schema.
type MCPToolBuilder struct {
	tool MCPTool
}

func NewMCPToolBuilder(name, description string) *MCPToolBuilder {
	b := &MCPToolBuilder{
		tool: MCPTool{
			Tool: api.Tool{
				Type: "function",
				Function: api.ToolFunction{
					Name:        name,
					Description: description,
				},
			},
		},
	}

	// Initialize parameters object
	b.tool.Function.Parameters.Type = "object"
	b.tool.Function.Parameters.Properties = make(map[string]api.ToolProperty, 8)
	// Required slice stays nil until first add
	return b
}

func (b *MCPToolBuilder) StringParam(name, desc string, required bool) *MCPToolBuilder {
	prop := api.ToolProperty{
		Type:        api.PropertyType{"string"},
		Description: desc,
	}

	b.setProp(name, prop, required)
	return b
}

func (b *MCPToolBuilder) WithHandler(fn func(ctx context.Context, params api.ToolCallFunctionArguments) string) *MCPToolBuilder {
	b.tool.Handler = fn
	return b
}

func (b *MCPToolBuilder) Build() MCPTool {
	return b.tool
}

func (b *MCPToolBuilder) setProp(name string, p api.ToolProperty, required bool) {
	props := b.tool.Function.Parameters.Properties
	props[name] = p
	if required {
		req := b.tool.Function.Parameters.Required
		if !slices.Contains(req, name) {
			b.tool.Function.Parameters.Required = append(req, name)
		}
	}
}

// findMCPToolByName finds an MCPTool by its function name
func findMCPToolByName(tools []MCPTool, name string) *MCPTool {
	for _, tool := range tools {
		if tool.Function.Name == name {
			return &tool
		}
	}
	return nil
}

// toAPITools converts MCPTools to api.Tools for native tool calling
func toAPITools(tools []MCPTool) []api.Tool {
	apiTools := make([]api.Tool, len(tools))
	for i, tool := range tools {
		apiTools[i] = tool.Tool
	}
	return apiTools
}

// stringArg extracts a string tool-call argument, falling back when the model
// omitted it or sent a non-string value.
func stringArg(params api.ToolCallFunctionArguments, name, fallback string) string {
	value, ok := params[name].(string)
	if !ok || value == "" {
		return fallback
	}
	return value
}
