package prompts

import (
	"fmt"
	"strings"
)

// RenderAnswerPrompt builds the synthesis prompt for the tool-result branch.
// notFoundHints are the known "not found" phrasings of the search tool; the
// model is told to apologize and offer further help when the search result
// matches one of them.
func RenderAnswerPrompt(identity, query, toolResult string, notFoundHints []string) (string, error) {
	quoted := make([]string, 0, len(notFoundHints))
	for _, hint := range notFoundHints {
		quoted = append(quoted, fmt.Sprintf("%q", hint))
	}

	return loadPrompt("templates/generate_answer.md", map[string]string{
		"Identity":      identity,
		"Query":         query,
		"ToolResult":    toolResult,
		"NotFoundHints": strings.Join(quoted, " or "),
	})
}

// RenderDirectAnswerPrompt builds the synthesis prompt for the no-tool-result
// branch: the model answers from the question alone or declines gracefully.
func RenderDirectAnswerPrompt(identity, query string) (string, error) {
	return loadPrompt("templates/generate_direct_answer.md", map[string]string{
		"Identity": identity,
		"Query":    query,
	})
}
