package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/SaiNageswarS/faq-agent/knowledge"
	"github.com/SaiNageswarS/faq-agent/llm"
	"github.com/SaiNageswarS/faq-agent/memory"
	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
)

// MockProgressReporter implements ProgressReporter for testing
type MockProgressReporter struct {
	events []*AgentStreamChunk
}

func (m *MockProgressReporter) Send(event *AgentStreamChunk) error {
	m.events = append(m.events, event)
	return nil
}

func (m *MockProgressReporter) CompleteEvent() *StreamComplete {
	for _, e := range m.events {
		if e.Complete != nil {
			return e.Complete
		}
	}
	return nil
}

func (m *MockProgressReporter) ErrorEvents() []*StreamError {
	var errs []*StreamError
	for _, e := range m.events {
		if e.Error != nil {
			errs = append(errs, e.Error)
		}
	}
	return errs
}

// Mock LLM client with configurable responses
type testLLMClient struct {
	model        string
	response     string
	responses    []string
	toolCalls    []api.ToolCall
	shouldError  bool
	errorMessage string
	callCount    int
	lastMessages []llm.Message
}

func (m *testLLMClient) Capabilities() llm.Capability {
	return llm.NativeToolCalling
}

func (m *testLLMClient) GetModel() string {
	return m.model
}

func (m *testLLMClient) GenerateInference(
	ctx context.Context,
	messages []llm.Message,
	callback func(chunk string) error,
	opts ...llm.LLMOption,
) error {
	if m.shouldError {
		return errors.New(m.errorMessage)
	}

	m.lastMessages = messages

	response := m.response
	if m.callCount < len(m.responses) {
		response = m.responses[m.callCount]
	}
	m.callCount++

	return callback(response)
}

func (m *testLLMClient) GenerateInferenceWithTools(
	ctx context.Context,
	messages []llm.Message,
	contentCallback func(chunk string) error,
	toolCallback func(toolCalls []api.ToolCall) error,
	opts ...llm.LLMOption,
) error {
	if m.shouldError {
		return errors.New(m.errorMessage)
	}

	m.lastMessages = messages
	m.callCount++

	if len(m.toolCalls) > 0 {
		return toolCallback(m.toolCalls)
	}

	return contentCallback(m.response)
}

func testKnowledgeBase() *knowledge.Document {
	return &knowledge.Document{
		Metadata: knowledge.Metadata{Description: "Support Bot"},
		Data: []knowledge.QAEntry{
			{Question: "How do I cancel?", Answer: "Visit Settings > Billing.", Category: "Billing"},
			{Question: "How do I get a receipt?", Answer: "Receipts are emailed monthly.", Category: "Billing"},
			{Question: "How do I reset my password?", Answer: "Use the forgot password link.", Category: "Account"},
		},
	}
}

func searchCall(query, category string) []api.ToolCall {
	return []api.ToolCall{{
		Function: api.ToolCallFunction{
			Name: SearchToolName,
			Arguments: api.ToolCallFunctionArguments{
				"query":    query,
				"category": category,
			},
		},
	}}
}

func TestExecuteWithToolCall(t *testing.T) {
	chat := &testLLMClient{model: "chat-model", response: "You can cancel from Settings > Billing."}
	classifier := &testLLMClient{model: "mini-model", response: "Billing"}
	judge := &testLLMClient{model: "mini-model", response: `{"evaluations": [{"index": 1, "score": 95}], "most_relevant_index": 1, "max_score": 95}`}
	selector := &testLLMClient{model: "chat-model", toolCalls: searchCall("How do I cancel?", "Billing")}

	agent, err := NewAgentBuilder().
		WithChatModel(chat).
		WithClassifierModel(classifier).
		WithJudgeModel(judge).
		WithToolSelector(selector).
		WithKnowledgeBase(testKnowledgeBase()).
		Build()
	assert.NoError(t, err)

	reporter := &MockProgressReporter{}
	response, err := agent.Execute(context.Background(), reporter, &AnswerRequest{
		SessionID: "s1",
		Question:  "How do I cancel?",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Billing", response.PredictedCategory)
	assert.Equal(t, "You can cancel from Settings > Billing.", response.Answer)
	assert.Equal(t, []string{SearchToolName}, response.ToolsUsed)
	assert.GreaterOrEqual(t, response.ProcessingTime, int64(0))

	// The raw tool result is streamed before the final answer.
	var toolResult *ToolResultChunk
	for _, e := range reporter.events {
		if e.ToolResult != nil {
			toolResult = e.ToolResult
		}
	}
	assert.NotNil(t, toolResult)
	assert.Equal(t, SearchToolName, toolResult.ToolName)
	assert.Equal(t, "Visit Settings > Billing.", toolResult.Result)

	complete := reporter.CompleteEvent()
	assert.NotNil(t, complete)
	assert.Equal(t, response.Answer, complete.Answer)

	// The synthesizer receives the tool result, not the raw QA data.
	assert.Contains(t, chat.lastMessages[0].Content, "Visit Settings > Billing.")
}

func TestExecuteWithoutToolCall(t *testing.T) {
	chat := &testLLMClient{model: "chat-model", response: "Hello! How can I help?"}
	selector := &testLLMClient{model: "chat-model", response: "no search needed"}

	agent, err := NewAgentBuilder().
		WithChatModel(chat).
		WithToolSelector(selector).
		WithKnowledgeBase(testKnowledgeBase()).
		Build()
	assert.NoError(t, err)

	reporter := &MockProgressReporter{}
	response, err := agent.Execute(context.Background(), reporter, &AnswerRequest{
		SessionID: "s1",
		Question:  "Hi there!",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Hello! How can I help?", response.Answer)
	assert.Empty(t, response.ToolsUsed)
	assert.Empty(t, reporter.ErrorEvents())
}

func TestExecuteToolRequestFailure(t *testing.T) {
	chat := &testLLMClient{model: "chat-model", response: "should not be called"}
	selector := &testLLMClient{model: "chat-model", shouldError: true, errorMessage: "provider unavailable"}

	agent, err := NewAgentBuilder().
		WithChatModel(chat).
		WithClassifierModel(&testLLMClient{response: "Billing"}).
		WithToolSelector(selector).
		WithKnowledgeBase(testKnowledgeBase()).
		Build()
	assert.NoError(t, err)

	reporter := &MockProgressReporter{}
	response, err := agent.Execute(context.Background(), reporter, &AnswerRequest{
		SessionID: "s1",
		Question:  "How do I cancel?",
	})

	// A tool request failure terminates the turn but is not a pipeline error.
	assert.NoError(t, err)
	assert.Contains(t, response.Answer, "I'm sorry, an error occurred while processing your request.")
	assert.Contains(t, response.Answer, "provider unavailable")
	assert.Empty(t, response.ToolsUsed)

	// The synthesizer never ran.
	assert.Equal(t, 0, chat.callCount)

	errs := reporter.ErrorEvents()
	assert.Len(t, errs, 1)
	assert.Equal(t, "TOOL_REQUEST_FAILED", errs[0].ErrorCode)
}

func TestExecuteSynthesisFailure(t *testing.T) {
	chat := &testLLMClient{model: "chat-model", shouldError: true, errorMessage: "rate limited"}
	selector := &testLLMClient{model: "chat-model", response: "no search"}

	agent, err := NewAgentBuilder().
		WithChatModel(chat).
		WithClassifierModel(&testLLMClient{response: "Billing"}).
		WithToolSelector(selector).
		WithKnowledgeBase(testKnowledgeBase()).
		Build()
	assert.NoError(t, err)

	reporter := &MockProgressReporter{}
	_, err = agent.Execute(context.Background(), reporter, &AnswerRequest{
		SessionID: "s1",
		Question:  "How do I cancel?",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
	assert.Nil(t, reporter.CompleteEvent())
}

func TestExecuteUnknownToolCallIsSkipped(t *testing.T) {
	chat := &testLLMClient{model: "chat-model", response: "direct answer"}
	selector := &testLLMClient{model: "chat-model", toolCalls: []api.ToolCall{{
		Function: api.ToolCallFunction{Name: "no_such_tool"},
	}}}

	agent, err := NewAgentBuilder().
		WithChatModel(chat).
		WithClassifierModel(&testLLMClient{response: "Billing"}).
		WithToolSelector(selector).
		WithKnowledgeBase(testKnowledgeBase()).
		Build()
	assert.NoError(t, err)

	response, err := agent.Execute(context.Background(), &NoOpProgressReporter{}, &AnswerRequest{
		SessionID: "s1",
		Question:  "How do I cancel?",
	})

	assert.NoError(t, err)
	assert.Equal(t, "direct answer", response.Answer)
	assert.Empty(t, response.ToolsUsed)
}

func TestExecuteToolSelectorSeesFreshInstruction(t *testing.T) {
	selector := &testLLMClient{model: "chat-model", response: "no search"}

	manager := memory.NewConversationManager(10)
	manager.SaveSession(&memory.Conversation{
		ID: "s1",
		Messages: []llm.Message{
			{Role: "user", Content: "earlier question"},
			{Role: "assistant", Content: "earlier answer"},
		},
	})

	agent, err := NewAgentBuilder().
		WithChatModel(&testLLMClient{model: "chat-model", response: "answer"}).
		WithClassifierModel(&testLLMClient{response: "Billing"}).
		WithToolSelector(selector).
		WithKnowledgeBase(testKnowledgeBase()).
		WithConversationManager(manager).
		Build()
	assert.NoError(t, err)

	_, err = agent.Execute(context.Background(), &NoOpProgressReporter{}, &AnswerRequest{
		SessionID: "s1",
		Question:  "How do I cancel?",
	})
	assert.NoError(t, err)

	// The selector sees one instruction message, never the session history.
	assert.Len(t, selector.lastMessages, 1)
	assert.Equal(t, "user", selector.lastMessages[0].Role)
	assert.Contains(t, selector.lastMessages[0].Content, "How do I cancel?")
	assert.Contains(t, selector.lastMessages[0].Content, "Billing")
	assert.NotContains(t, selector.lastMessages[0].Content, "earlier question")
}

func TestExecutePersistsConversation(t *testing.T) {
	manager := memory.NewConversationManager(10)

	agent, err := NewAgentBuilder().
		WithChatModel(&testLLMClient{model: "chat-model", response: "the answer"}).
		WithClassifierModel(&testLLMClient{response: "Billing"}).
		WithToolSelector(&testLLMClient{response: "no search"}).
		WithKnowledgeBase(testKnowledgeBase()).
		WithConversationManager(manager).
		Build()
	assert.NoError(t, err)

	_, err = agent.Execute(context.Background(), &NoOpProgressReporter{}, &AnswerRequest{
		SessionID: "s1",
		Question:  "How do I cancel?",
	})
	assert.NoError(t, err)

	saved := manager.LoadSession("s1")
	assert.Len(t, saved.Messages, 2)
	assert.Equal(t, "user", saved.Messages[0].Role)
	assert.Equal(t, "How do I cancel?", saved.Messages[0].Content)
	assert.Equal(t, "assistant", saved.Messages[1].Role)
	assert.Equal(t, "the answer", saved.Messages[1].Content)

	// Sessions are isolated.
	other := manager.LoadSession("s2")
	assert.Empty(t, other.Messages)
}
