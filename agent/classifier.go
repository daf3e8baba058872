package agent

import (
	"context"
	"slices"
	"strings"

	"github.com/SaiNageswarS/faq-agent/llm"
	"github.com/SaiNageswarS/faq-agent/prompts"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

// FallbackCategory is the reserved label used when classification is
// ambiguous, invalid or fails outright.
const FallbackCategory = "Other"

// Classifier maps a user question to one of the knowledge base categories.
type Classifier struct {
	model        llm.LLMClient
	categories   []string
	systemPrompt string
	maxTokens    int
}

func NewClassifier(model llm.LLMClient, categories []string, systemPrompt string, maxTokens int) *Classifier {
	return &Classifier{
		model:        model,
		categories:   categories,
		systemPrompt: systemPrompt,
		maxTokens:    maxTokens,
	}
}

// Classify returns the category label for a question. The raw model output is
// validated by exact string match against the category set plus the fallback
// label; anything else is coerced to the fallback. No retry, no partial
// matching.
func (c *Classifier) Classify(ctx context.Context, question string) string {
	prompt, err := prompts.RenderClassifierPrompt(c.systemPrompt, c.categories, FallbackCategory, question)
	if err != nil {
		logger.Error("Failed to render classifier prompt", zap.Error(err))
		return FallbackCategory
	}

	var response strings.Builder
	err = c.model.GenerateInference(ctx,
		[]llm.Message{{Role: "user", Content: prompt}},
		func(chunk string) error {
			response.WriteString(chunk)
			return nil
		},
		llm.WithTemperature(0),
		llm.WithMaxTokens(c.maxTokens),
	)

	if err != nil {
		logger.Error("Category classification failed", zap.Error(err))
		return FallbackCategory
	}

	label := strings.TrimSpace(response.String())
	if label == FallbackCategory || slices.Contains(c.categories, label) {
		return label
	}

	logger.Info("Classifier returned an unknown category, falling back",
		zap.String("label", label))
	return FallbackCategory
}
