package agent

import (
	"context"
	"testing"

	"github.com/SaiNageswarS/faq-agent/knowledge"
	"github.com/stretchr/testify/assert"
)

func TestBuildRequiresChatModel(t *testing.T) {
	_, err := NewAgentBuilder().Build()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "chat model")
}

func TestBuildDefaultsAuxiliaryModelsToChatModel(t *testing.T) {
	chat := &testLLMClient{model: "chat-model"}

	agent, err := NewAgentBuilder().
		WithChatModel(chat).
		WithKnowledgeBase(testKnowledgeBase()).
		Build()

	assert.NoError(t, err)
	assert.Equal(t, chat, agent.config.ClassifierModel)
	assert.Equal(t, chat, agent.config.JudgeModel)
	assert.Equal(t, chat, agent.config.ToolSelector)
}

func TestBuildIdentityFromKnowledgeBase(t *testing.T) {
	agent, err := NewAgentBuilder().
		WithChatModel(&testLLMClient{model: "chat-model"}).
		WithKnowledgeBase(testKnowledgeBase()).
		Build()

	assert.NoError(t, err)
	assert.Equal(t, "Support Bot", agent.config.Identity)
	assert.Equal(t, "You are Support Bot.", agent.config.SystemPrompt)
}

func TestBuildIdentityDefaultsWithoutKnowledgeBase(t *testing.T) {
	agent, err := NewAgentBuilder().
		WithChatModel(&testLLMClient{model: "chat-model"}).
		Build()

	assert.NoError(t, err)
	assert.Equal(t, knowledge.DefaultIdentity, agent.config.Identity)
}

func TestBuildExplicitIdentityWins(t *testing.T) {
	agent, err := NewAgentBuilder().
		WithChatModel(&testLLMClient{model: "chat-model"}).
		WithKnowledgeBase(testKnowledgeBase()).
		WithIdentity("Custom Bot").
		WithSystemPrompt("Be terse.").
		Build()

	assert.NoError(t, err)
	assert.Equal(t, "Custom Bot", agent.config.Identity)
	assert.Equal(t, "Be terse.", agent.config.SystemPrompt)
}

func TestBuildWithoutKnowledgeBaseUsesUnavailableTool(t *testing.T) {
	agent, err := NewAgentBuilder().
		WithChatModel(&testLLMClient{model: "chat-model"}).
		Build()

	assert.NoError(t, err)
	assert.Len(t, agent.tools, 1)
	assert.Equal(t, SearchToolName, agent.tools[0].Function.Name)

	result := agent.tools[0].Handler(context.Background(), nil)
	assert.Equal(t, msgNoData, result)
}

func TestBuildWithEmptyKnowledgeBaseUsesUnavailableTool(t *testing.T) {
	agent, err := NewAgentBuilder().
		WithChatModel(&testLLMClient{model: "chat-model"}).
		WithKnowledgeBase(&knowledge.Document{}).
		Build()

	assert.NoError(t, err)

	result := agent.tools[0].Handler(context.Background(), nil)
	assert.Equal(t, msgNoData, result)
}

func TestEmptyKnowledgeBaseClassifiesToFallback(t *testing.T) {
	// With no categories, only the fallback label validates.
	classifier := &testLLMClient{response: "Billing"}

	agent, err := NewAgentBuilder().
		WithChatModel(&testLLMClient{model: "chat-model"}).
		WithClassifierModel(classifier).
		Build()
	assert.NoError(t, err)

	category := agent.classifier.Classify(context.Background(), "How do I cancel?")
	assert.Equal(t, FallbackCategory, category)
}
