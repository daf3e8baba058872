package agent

import (
	"time"
)

// Stage identifies a pipeline state. The orchestrator walks them in a fixed
// linear order with no branching or loops.
type Stage string

const (
	StageStart       Stage = "start"
	StageClassify    Stage = "classify"
	StageRequestTool Stage = "request_tool"
	StageExecuteTool Stage = "execute_tool"
	StageSynthesize  Stage = "synthesize"
	StageEnd         Stage = "end"
)

// ProgressUpdateChunk reports that a stage started or produced something.
type ProgressUpdateChunk struct {
	Stage     Stage
	Timestamp int64
	Message   string
}

// ToolResultChunk carries the raw search tool output.
type ToolResultChunk struct {
	ToolName string
	Result   string
}

// AnswerChunk carries final answer content.
type AnswerChunk struct {
	Content string
}

// StreamError reports a recoverable pipeline error.
type StreamError struct {
	ErrorMessage string
	ErrorCode    string
}

// StreamComplete is the terminal event of one invocation.
type StreamComplete struct {
	Answer            string
	PredictedCategory string
	ToolsUsed         []string
	ProcessingTime    int64
	Metadata          map[string]string
}

// AgentStreamChunk is a tagged union of stream events; exactly one field is
// non-nil.
type AgentStreamChunk struct {
	ProgressUpdate *ProgressUpdateChunk
	ToolResult     *ToolResultChunk
	Answer         *AnswerChunk
	Complete       *StreamComplete
	Error          *StreamError
}

// ProgressReporter is an interface for reporting agent execution progress
type ProgressReporter interface {
	// Send sends a progress update
	Send(event *AgentStreamChunk) error
}

// NoOpProgressReporter implements ProgressReporter with no-op operations
type NoOpProgressReporter struct{}

// Send does nothing
func (r *NoOpProgressReporter) Send(event *AgentStreamChunk) error {
	// No-op
	return nil
}

// Helper functions for creating progress events
func NewProgressUpdate(stage Stage, message string) *AgentStreamChunk {
	return &AgentStreamChunk{
		ProgressUpdate: &ProgressUpdateChunk{
			Stage:     stage,
			Timestamp: time.Now().UnixMilli(),
			Message:   message,
		},
	}
}

// NewToolResult creates a ToolResultChunk event
func NewToolResult(toolName, result string) *AgentStreamChunk {
	return &AgentStreamChunk{
		ToolResult: &ToolResultChunk{
			ToolName: toolName,
			Result:   result,
		},
	}
}

// NewAnswerChunk creates an AnswerChunk event
func NewAnswerChunk(content string) *AgentStreamChunk {
	return &AgentStreamChunk{
		Answer: &AnswerChunk{Content: content},
	}
}

// NewStreamComplete creates a StreamComplete event
func NewStreamComplete(finalResponse *StreamComplete) *AgentStreamChunk {
	return &AgentStreamChunk{
		Complete: finalResponse,
	}
}

// NewStreamError creates a StreamError event
func NewStreamError(message, code string) *AgentStreamChunk {
	return &AgentStreamChunk{
		Error: &StreamError{
			ErrorMessage: message,
			ErrorCode:    code,
		},
	}
}
