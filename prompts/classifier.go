package prompts

import (
	"fmt"
	"strings"
)

// RenderClassifierPrompt builds the closed-choice category classification
// prompt. Every category is listed verbatim; the model is instructed to reply
// with exactly one label and nothing else.
func RenderClassifierPrompt(systemPrompt string, categories []string, fallbackCategory, question string) (string, error) {
	quoted := make([]string, 0, len(categories))
	for _, cat := range categories {
		quoted = append(quoted, fmt.Sprintf("'%s'", cat))
	}

	return loadPrompt("templates/classify_category.md", map[string]string{
		"System":     systemPrompt,
		"Categories": strings.Join(quoted, ", "),
		"Fallback":   fallbackCategory,
		"Question":   question,
	})
}
