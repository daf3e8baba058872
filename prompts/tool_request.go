package prompts

// RenderToolRequestPrompt builds the single instruction message handed to the
// tool-deciding model. It carries the user's question and predicted category;
// the running conversation history is deliberately not included.
func RenderToolRequestPrompt(question, category string) (string, error) {
	return loadPrompt("templates/request_search_tool.md", map[string]string{
		"Question": question,
		"Category": category,
	})
}
