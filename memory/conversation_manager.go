package memory

import (
	"sync"

	"github.com/SaiNageswarS/faq-agent/llm"
)

// ConversationManager keeps per-session conversations in memory. Sessions are
// independent of each other; nothing is persisted across process restarts.
type ConversationManager struct {
	mu       sync.RWMutex
	sessions map[string][]llm.Message
	maxMsgs  int
}

// NewConversationManager creates a new conversation manager keeping at most
// maxMsgs user turns per session.
func NewConversationManager(maxMsgs int) *ConversationManager {
	return &ConversationManager{
		sessions: make(map[string][]llm.Message),
		maxMsgs:  maxMsgs,
	}
}

// LoadSession returns the conversation for a session id, empty when unknown.
func (cm *ConversationManager) LoadSession(sessionID string) *Conversation {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	msgs := cm.sessions[sessionID]
	conversation := &Conversation{ID: sessionID}
	conversation.Messages = append(conversation.Messages, msgs...)
	return conversation
}

// SaveSession stores the conversation messages for a session, trimmed to the
// session window.
func (cm *ConversationManager) SaveSession(conversation *Conversation) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.sessions[conversation.ID] = cm.trimForSession(conversation.Messages)
}

// trimForSession keeps the last maxMsgs "user" messages and any number of
// "assistant" (and optional "tool") messages that follow them.
// If there are fewer than maxMsgs user messages total, it returns msgs unchanged.
func (cm *ConversationManager) trimForSession(msgs []llm.Message) []llm.Message {
	if cm.maxMsgs <= 0 || len(msgs) == 0 {
		return []llm.Message{}
	}

	// Walk backward and find the boundary index: the position right after the
	// (maxMsgs+1)-th user from the end. Everything after boundary is kept.
	usersSeen := 0
	start := 0 // default: keep all if we don't exceed maxMsgs users
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == "user" && !msgs[i].IsToolResult {
			usersSeen++
			if usersSeen == cm.maxMsgs {
				start = i
				break
			}
		}
	}

	return msgs[start:]
}

// GetMaxMessages returns the maximum number of user messages kept per session.
func (cm *ConversationManager) GetMaxMessages() int {
	return cm.maxMsgs
}
