package prompts

// RenderRelevancePrompt builds the batch relevance-evaluation prompt. The
// qaBlock lists candidate questions as 1-indexed QA_PAIR_N lines; the model
// must reply with a single JSON object scoring every candidate.
func RenderRelevancePrompt(query, category, qaBlock string) (string, error) {
	return loadPrompt("templates/evaluate_relevance.md", map[string]string{
		"Query":    query,
		"Category": category,
		"QABlock":  qaBlock,
	})
}
