package memory

import (
	"github.com/SaiNageswarS/faq-agent/llm"
)

// Conversation is the mutable state threaded through one pipeline invocation.
// Messages is append-only: turns are never rewritten or removed within an
// invocation. PredictedCategory is written once by the classify stage and
// read by the search stage.
type Conversation struct {
	ID                string
	Messages          []llm.Message
	PredictedCategory string
}

func (m *Conversation) AddUserMessage(content string) {
	m.Messages = append(m.Messages, llm.Message{Role: "user", Content: content})
}

func (m *Conversation) AddAssistantMessage(content string) {
	m.Messages = append(m.Messages, llm.Message{Role: "assistant", Content: content})
}

func (m *Conversation) AddToolResult(content string) {
	m.Messages = append(m.Messages, llm.Message{Role: "user", Content: content, IsToolResult: true})
}

// LastUserMessage returns the content of the most recent genuine user turn,
// skipping tool results.
func (m *Conversation) LastUserMessage() string {
	for i := len(m.Messages) - 1; i >= 0; i-- {
		if m.Messages[i].Role == "user" && !m.Messages[i].IsToolResult {
			return m.Messages[i].Content
		}
	}
	return ""
}
