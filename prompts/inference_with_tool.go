package prompts

// InferenceWithToolPromptData feeds the unified tool-calling prompt used by
// providers without native tool calling.
type InferenceWithToolPromptData struct {
	ToolDescriptions []string
	Query            string
}

// RenderInferenceWithToolPrompt renders the unified prompt that lets a model
// either answer directly or request tool calls via a JSON envelope.
func RenderInferenceWithToolPrompt(data InferenceWithToolPromptData) (systemPrompt, userPrompt string, err error) {
	systemPrompt, err = loadPrompt("templates/inference_with_tool_system.md", data)
	if err != nil {
		return "", "", err
	}

	userPrompt, err = loadPrompt("templates/inference_with_tool_user.md", data)
	if err != nil {
		return "", "", err
	}

	return systemPrompt, userPrompt, nil
}
