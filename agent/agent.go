package agent

import (
	"github.com/SaiNageswarS/faq-agent/llm"
	"github.com/SaiNageswarS/faq-agent/memory"
)

// AgentConfig holds configuration for the FAQ agent. Client handles are
// injected explicitly so tests can substitute deterministic fakes.
type AgentConfig struct {
	// ChatModel generates the final conversational reply.
	ChatModel llm.LLMClient
	// ClassifierModel runs the closed-choice category classification.
	ClassifierModel llm.LLMClient
	// JudgeModel scores QA candidates inside the search tool.
	JudgeModel llm.LLMClient
	// ToolSelector decides whether to invoke the search tool.
	ToolSelector llm.LLMClient

	Identity     string
	SystemPrompt string
	MaxTokens    int

	// Conversation management
	ConversationManager *memory.ConversationManager
}

// Agent is the four-stage FAQ answering pipeline.
type Agent struct {
	config      AgentConfig
	classifier  *Classifier
	synthesizer *Synthesizer
	tools       []MCPTool
}

// AnswerRequest is one pipeline invocation: a single new user turn for a
// session.
type AnswerRequest struct {
	SessionID string
	Question  string
}
