package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/SaiNageswarS/faq-agent/llm"
	"github.com/SaiNageswarS/faq-agent/prompts"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

// errMalformedEvaluation marks a judge response that could not be parsed as
// JSON. Callers downgrade it to a user-facing message; it never propagates.
var errMalformedEvaluation = errors.New("relevance evaluation response is not valid JSON")

// QAEvaluation scores one candidate question.
type QAEvaluation struct {
	Index int `json:"index"`
	Score int `json:"score"`
}

// RelevanceEvaluation is the judge's verdict over a candidate list. Indices
// are 1-based into the candidate list handed to the judge. MostRelevantIndex
// is nil when the model did not identify a winner.
type RelevanceEvaluation struct {
	Evaluations       []QAEvaluation `json:"evaluations"`
	MostRelevantIndex *int           `json:"most_relevant_index"`
	MaxScore          int            `json:"max_score"`
}

// RelevanceJudge asks an LLM to score candidate questions against a query
// and pick the single best one.
type RelevanceJudge struct {
	model     llm.LLMClient
	maxTokens int
}

func NewRelevanceJudge(model llm.LLMClient, maxTokens int) *RelevanceJudge {
	return &RelevanceJudge{model: model, maxTokens: maxTokens}
}

// Rank evaluates the candidate block for a query. The model response is
// stripped of markdown code fences before parsing; a response that still is
// not valid JSON yields errMalformedEvaluation. Parse failures are not
// retried.
func (j *RelevanceJudge) Rank(ctx context.Context, query, category, qaBlock string) (*RelevanceEvaluation, error) {
	prompt, err := prompts.RenderRelevancePrompt(query, category, qaBlock)
	if err != nil {
		return nil, fmt.Errorf("error rendering relevance prompt: %w", err)
	}

	var response strings.Builder
	err = j.model.GenerateInference(ctx,
		[]llm.Message{{Role: "user", Content: prompt}},
		func(chunk string) error {
			response.WriteString(chunk)
			return nil
		},
		llm.WithTemperature(0),
		llm.WithMaxTokens(j.maxTokens),
	)

	if err != nil {
		return nil, fmt.Errorf("relevance evaluation call failed: %w", err)
	}

	cleaned := stripCodeFences(response.String())

	evaluation := &RelevanceEvaluation{}
	if err := json.Unmarshal([]byte(cleaned), evaluation); err != nil {
		logger.Error("Failed to parse relevance evaluation",
			zap.String("response", response.String()), zap.Error(err))
		return nil, errMalformedEvaluation
	}

	return evaluation, nil
}

// stripCodeFences removes markdown code-fence wrappers the model may add
// around its JSON output.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
