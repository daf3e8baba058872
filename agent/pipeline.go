package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/SaiNageswarS/faq-agent/llm"
	"github.com/SaiNageswarS/faq-agent/memory"
	"github.com/SaiNageswarS/faq-agent/prompts"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

// Execute runs one pipeline invocation: classify, request tool, execute tool,
// synthesize. Stages always run in that order; there is no branching back.
// Classifier and judge faults degrade inside their stages, a tool-request
// fault terminates the turn with an apology, and only a synthesis fault
// surfaces as an error.
func (a *Agent) Execute(ctx context.Context, reporter ProgressReporter, req *AnswerRequest) (*StreamComplete, error) {
	startTime := getCurrentTimeMs()

	response := &StreamComplete{
		ToolsUsed: []string{},
		Metadata:  map[string]string{"model": a.config.ChatModel.GetModel()},
	}

	conversation := &memory.Conversation{ID: req.SessionID}
	if a.config.ConversationManager != nil {
		conversation = a.config.ConversationManager.LoadSession(req.SessionID)
	}
	conversation.AddUserMessage(req.Question)

	reporter.Send(NewProgressUpdate(StageStart, "Starting FAQ agent"))

	var toolCalls []api.ToolCall
	var toolResult string
	toolInvoked := false

	stage := StageClassify
	for stage != StageEnd {
		switch stage {
		case StageClassify:
			reporter.Send(NewProgressUpdate(StageClassify, "Classifying question"))

			category := a.classifier.Classify(ctx, req.Question)
			conversation.PredictedCategory = category
			response.PredictedCategory = category
			reporter.Send(NewProgressUpdate(StageClassify, fmt.Sprintf("Predicted category: %s", category)))

			stage = StageRequestTool

		case StageRequestTool:
			reporter.Send(NewProgressUpdate(StageRequestTool, "Deciding whether to search the FAQ"))

			calls, err := a.requestToolCalls(ctx, req.Question, conversation.PredictedCategory)
			if err != nil {
				logger.Error("Tool request stage failed", zap.Error(err))

				apology := fmt.Sprintf("I'm sorry, an error occurred while processing your request.\nError detail: %v", err)
				conversation.AddAssistantMessage(apology)
				response.Answer = apology

				reporter.Send(NewStreamError(apology, "TOOL_REQUEST_FAILED"))
				stage = StageEnd
				continue
			}

			toolCalls = calls
			stage = StageExecuteTool

		case StageExecuteTool:
			for _, call := range toolCalls {
				tool := findMCPToolByName(a.tools, call.Function.Name)
				if tool == nil {
					logger.Info("Model requested unknown tool", zap.String("tool", call.Function.Name))
					continue
				}

				reporter.Send(NewProgressUpdate(StageExecuteTool, fmt.Sprintf("Executing %s", call.Function.Name)))

				result := tool.Handler(ctx, call.Function.Arguments)
				conversation.AddToolResult(result)
				toolResult = result
				toolInvoked = true
				response.ToolsUsed = append(response.ToolsUsed, call.Function.Name)

				reporter.Send(NewToolResult(call.Function.Name, result))
			}

			stage = StageSynthesize

		case StageSynthesize:
			reporter.Send(NewProgressUpdate(StageSynthesize, "Generating answer"))

			answer, err := a.synthesizer.Synthesize(ctx, req.Question, toolResult, toolInvoked)
			if err != nil {
				reporter.Send(NewStreamError(err.Error(), "SYNTHESIS_FAILED"))
				return nil, err
			}

			conversation.AddAssistantMessage(answer)
			response.Answer = answer
			reporter.Send(NewAnswerChunk(answer))

			stage = StageEnd
		}
	}

	if a.config.ConversationManager != nil {
		a.config.ConversationManager.SaveSession(conversation)
	}

	response.ProcessingTime = getCurrentTimeMs() - startTime
	reporter.Send(NewStreamComplete(response))
	return response, nil
}

// requestToolCalls asks the tool selector whether to invoke the search tool.
// The selector sees a single fresh instruction message rather than the
// session history, so the decision depends only on the current question and
// its predicted category.
func (a *Agent) requestToolCalls(ctx context.Context, question, category string) ([]api.ToolCall, error) {
	instruction, err := prompts.RenderToolRequestPrompt(question, category)
	if err != nil {
		return nil, fmt.Errorf("failed to render tool request prompt: %w", err)
	}

	var toolCalls []api.ToolCall
	err = a.config.ToolSelector.GenerateInferenceWithTools(ctx,
		[]llm.Message{{Role: "user", Content: instruction}},
		func(chunk string) error {
			// Direct content from the selector is discarded; the synthesizer
			// owns the user-facing reply.
			return nil
		},
		func(calls []api.ToolCall) error {
			toolCalls = append(toolCalls, calls...)
			return nil
		},
		llm.WithTools(toAPITools(a.tools)),
		llm.WithMaxTokens(a.config.MaxTokens),
	)
	if err != nil {
		return nil, err
	}

	return toolCalls, nil
}

func getCurrentTimeMs() int64 {
	return time.Now().UnixMilli()
}
