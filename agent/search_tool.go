package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SaiNageswarS/faq-agent/knowledge"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/linq"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

// SearchToolName is the name under which the search tool is exposed to the
// model.
const SearchToolName = "search_qa_by_category"

// relevanceThreshold is the fixed cutoff; a best score >= 70 is accepted as
// a match.
const relevanceThreshold = 70

// User-facing search tool messages. The not-found variants are textually
// distinct so the synthesizer can phrase an appropriate apology; callers must
// not conflate them with a genuine answer.
const (
	msgNoData          = "I'm sorry, there is no FAQ data available to reference at the moment."
	msgNotFound        = "I'm sorry, I could not find the information you were looking for. Please try rephrasing, or share a few more details."
	msgNoSuitableMatch = "I'm sorry, I could not identify a suitable QA pair for your question. Please try different wording."
	msgEvaluationError = "I'm sorry, an error occurred while evaluating related information. Please try different wording."
	msgSearchError     = "I'm sorry, something went wrong while searching for the information. Please try again."
	msgAnswerMissing   = "No answer was found."

	msgCategoryEmptyFmt    = "I'm sorry, there was no related information in the category \"%s\"."
	msgNoValidQuestionsFmt = "The category \"%s\" did not contain any valid question data."
)

// notFoundHints returns the phrasings the synthesizer treats as "no answer
// found" when shaping its reply.
func notFoundHints() []string {
	return []string{
		msgNotFound,
		"there was no related information in the category",
	}
}

// SearchTool looks up the best-matching answer for a query inside one
// category of the knowledge base.
type SearchTool struct {
	records []knowledge.QAEntry
	judge   *RelevanceJudge
}

func NewSearchTool(records []knowledge.QAEntry, judge *RelevanceJudge) *SearchTool {
	return &SearchTool{
		records: records,
		judge:   judge,
	}
}

// Search filters records by exact category match, asks the relevance judge
// for the single best candidate and applies the threshold policy. It always
// returns a user-presentable string; judge failures degrade to apology
// messages and never escape the tool boundary.
func (s *SearchTool) Search(ctx context.Context, query, category string) string {
	filtered, err := linq.Pipe2(
		linq.FromSlice(ctx, s.records),

		linq.Where(func(entry knowledge.QAEntry) bool {
			return entry.Category == category
		}),

		linq.ToSlice[knowledge.QAEntry](),
	)
	if err != nil {
		logger.Error("Failed to filter QA records", zap.Error(err))
		return msgSearchError
	}

	if len(filtered) == 0 {
		logger.Info("No QA records in category", zap.String("category", category))
		return fmt.Sprintf(msgCategoryEmptyFmt, category)
	}

	// Candidates keep their 1-based position in the filtered set even when
	// empty-question records are skipped, so the judge's index maps straight
	// back into filtered.
	var lines []string
	for idx, entry := range filtered {
		if entry.Question == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("QA_PAIR_%d: Question: %s", idx+1, entry.Question))
	}

	if len(lines) == 0 {
		logger.Info("No valid question data in category", zap.String("category", category))
		return fmt.Sprintf(msgNoValidQuestionsFmt, category)
	}

	evaluation, err := s.judge.Rank(ctx, query, category, strings.Join(lines, "\n"))
	if err != nil {
		logger.Error("Relevance evaluation failed",
			zap.String("category", category), zap.Error(err))
		if errors.Is(err, errMalformedEvaluation) {
			return msgEvaluationError
		}
		return msgSearchError
	}

	index := evaluation.MostRelevantIndex
	if index == nil || *index < 1 || *index > len(filtered) {
		logger.Info("Judge returned no usable index", zap.Any("index", index))
		return msgNoSuitableMatch
	}

	if evaluation.MaxScore < relevanceThreshold {
		logger.Info("Best relevance score below threshold",
			zap.Int("score", evaluation.MaxScore), zap.Int("threshold", relevanceThreshold))
		return msgNotFound
	}

	answer := filtered[*index-1].Answer
	if answer == "" {
		return msgAnswerMissing
	}
	return answer
}

// Tool exposes the search as an MCP tool the model can choose to invoke.
func (s *SearchTool) Tool() MCPTool {
	return NewMCPToolBuilder(SearchToolName, "Searches the FAQ knowledge base within the given category for an answer relevant to the user's question.").
		StringParam("query", "The user's question, passed verbatim.", true).
		StringParam("category", "The predicted FAQ category to search within.", true).
		WithHandler(func(ctx context.Context, params api.ToolCallFunctionArguments) string {
			query := stringArg(params, "query", "")
			category := stringArg(params, "category", "")
			return s.Search(ctx, query, category)
		}).
		Build()
}

// NewUnavailableSearchTool is the data-absent variant registered when no FAQ
// data could be loaded. It answers every invocation with a fixed message.
func NewUnavailableSearchTool() MCPTool {
	return NewMCPToolBuilder(SearchToolName, "Search is unavailable because no FAQ data is loaded.").
		StringParam("query", "The user's question.", true).
		StringParam("category", "The predicted FAQ category.", true).
		WithHandler(func(ctx context.Context, params api.ToolCallFunctionArguments) string {
			logger.Info("Search attempted against an empty knowledge base")
			return msgNoData
		}).
		Build()
}
