package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/SaiNageswarS/faq-agent/llm"
	"github.com/SaiNageswarS/faq-agent/prompts"
)

// Synthesizer turns a raw tool result (or its absence) into the final
// conversational reply.
type Synthesizer struct {
	model     llm.LLMClient
	identity  string
	maxTokens int
}

func NewSynthesizer(model llm.LLMClient, identity string, maxTokens int) *Synthesizer {
	return &Synthesizer{
		model:     model,
		identity:  identity,
		maxTokens: maxTokens,
	}
}

// Synthesize produces the assistant's reply. With a tool result it asks the
// model for a friendly answer grounded in that result, apologizing when the
// result is one of the known not-found phrasings. Without one it asks for a
// direct answer or a graceful decline. Failures here are pipeline-level
// faults and propagate to the caller.
func (s *Synthesizer) Synthesize(ctx context.Context, query, toolResult string, hasToolResult bool) (string, error) {
	var prompt string
	var err error

	if hasToolResult {
		prompt, err = prompts.RenderAnswerPrompt(s.identity, query, toolResult, notFoundHints())
	} else {
		prompt, err = prompts.RenderDirectAnswerPrompt(s.identity, query)
	}
	if err != nil {
		return "", fmt.Errorf("error rendering answer prompt: %w", err)
	}

	var response strings.Builder
	err = s.model.GenerateInference(ctx,
		[]llm.Message{{Role: "user", Content: prompt}},
		func(chunk string) error {
			response.WriteString(chunk)
			return nil
		},
		llm.WithTemperature(0.2),
		llm.WithMaxTokens(s.maxTokens),
	)

	if err != nil {
		return "", fmt.Errorf("answer synthesis failed: %w", err)
	}

	return response.String(), nil
}
