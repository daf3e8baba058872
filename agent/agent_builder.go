package agent

import (
	"errors"

	"github.com/SaiNageswarS/faq-agent/knowledge"
	"github.com/SaiNageswarS/faq-agent/llm"
	"github.com/SaiNageswarS/faq-agent/memory"
)

// AgentBuilder provides a fluent interface for building agents.
type AgentBuilder struct {
	config        AgentConfig
	knowledgeBase *knowledge.Document
}

func NewAgentBuilder() *AgentBuilder {
	return &AgentBuilder{
		config: AgentConfig{
			MaxTokens: 2000,
		},
	}
}

// WithChatModel sets the model that writes the final reply.
func (b *AgentBuilder) WithChatModel(client llm.LLMClient) *AgentBuilder {
	b.config.ChatModel = client
	return b
}

// WithClassifierModel sets the model used for category classification.
// Defaults to the chat model.
func (b *AgentBuilder) WithClassifierModel(client llm.LLMClient) *AgentBuilder {
	b.config.ClassifierModel = client
	return b
}

// WithJudgeModel sets the model that scores QA candidates during search.
// Defaults to the chat model.
func (b *AgentBuilder) WithJudgeModel(client llm.LLMClient) *AgentBuilder {
	b.config.JudgeModel = client
	return b
}

// WithToolSelector sets the model that decides whether to call the search
// tool. Defaults to the chat model.
func (b *AgentBuilder) WithToolSelector(client llm.LLMClient) *AgentBuilder {
	b.config.ToolSelector = client
	return b
}

// WithKnowledgeBase attaches the FAQ document the agent answers from.
func (b *AgentBuilder) WithKnowledgeBase(doc *knowledge.Document) *AgentBuilder {
	b.knowledgeBase = doc
	return b
}

func (b *AgentBuilder) WithIdentity(identity string) *AgentBuilder {
	b.config.Identity = identity
	return b
}

func (b *AgentBuilder) WithSystemPrompt(prompt string) *AgentBuilder {
	b.config.SystemPrompt = prompt
	return b
}

func (b *AgentBuilder) WithMaxTokens(maxTokens int) *AgentBuilder {
	b.config.MaxTokens = maxTokens
	return b
}

func (b *AgentBuilder) WithConversationManager(manager *memory.ConversationManager) *AgentBuilder {
	b.config.ConversationManager = manager
	return b
}

// Build validates the configuration and wires the pipeline stages.
func (b *AgentBuilder) Build() (*Agent, error) {
	if b.config.ChatModel == nil {
		return nil, errors.New("chat model is required")
	}
	if b.config.ClassifierModel == nil {
		b.config.ClassifierModel = b.config.ChatModel
	}
	if b.config.JudgeModel == nil {
		b.config.JudgeModel = b.config.ChatModel
	}
	if b.config.ToolSelector == nil {
		b.config.ToolSelector = b.config.ChatModel
	}

	if b.config.Identity == "" {
		if b.knowledgeBase != nil {
			b.config.Identity = b.knowledgeBase.Identity()
		} else {
			b.config.Identity = knowledge.DefaultIdentity
		}
	}
	if b.config.SystemPrompt == "" {
		b.config.SystemPrompt = knowledge.DefaultSystemPrompt(b.config.Identity)
	}

	var categories []string
	var searchTool MCPTool
	if b.knowledgeBase != nil && len(b.knowledgeBase.Data) > 0 {
		categories = b.knowledgeBase.Categories()
		judge := NewRelevanceJudge(b.config.JudgeModel, b.config.MaxTokens)
		searchTool = NewSearchTool(b.knowledgeBase.Data, judge).Tool()
	} else {
		searchTool = NewUnavailableSearchTool()
	}

	classifier := NewClassifier(b.config.ClassifierModel, categories, b.config.SystemPrompt, b.config.MaxTokens)
	synthesizer := NewSynthesizer(b.config.ChatModel, b.config.Identity, b.config.MaxTokens)

	return &Agent{
		config:      b.config,
		classifier:  classifier,
		synthesizer: synthesizer,
		tools:       []MCPTool{searchTool},
	}, nil
}
