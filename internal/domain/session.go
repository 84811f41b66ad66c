package domain

import (
	"sync"
	"time"
)

// ConversationSession represents the accumulated conversational state of one session
type ConversationSession struct {
	ID             string    // Opaque session identifier
	LastAccessTime time.Time // For session expiration checking
	timeout        time.Duration
	maxTurns       int

	mu       sync.RWMutex
	messages []ChatMessage
}

// NewConversationSession creates a new conversation session.
// A zero timeout never expires and a zero maxTurns keeps the full history.
func NewConversationSession(id string, timeout time.Duration, maxTurns int) *ConversationSession {
	return &ConversationSession{
		ID:             id,
		LastAccessTime: time.Now(),
		timeout:        timeout,
		maxTurns:       maxTurns,
		messages:       make([]ChatMessage, 0),
	}
}

// IsExpired checks if the session has exceeded the configured timeout
func (s *ConversationSession) IsExpired() bool {
	if s.timeout <= 0 {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.LastAccessTime) > s.timeout
}

// Touch updates LastAccessTime to now
func (s *ConversationSession) Touch() {
	s.mu.Lock()
	s.LastAccessTime = time.Now()
	s.mu.Unlock()
}

// AddTurn appends a human message and the reply as one turn.
// When maxTurns is set and reached, the oldest turn (2 messages) is removed.
func (s *ConversationSession) AddTurn(userMsg, assistantMsg ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxTurns > 0 && len(s.messages) >= s.maxTurns*2 {
		s.messages = s.messages[2:]
	}
	s.messages = append(s.messages, userMsg, assistantMsg)
	s.LastAccessTime = time.Now()
}

// GetHistory returns a copy of the conversation history
func (s *ConversationSession) GetHistory() []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]ChatMessage, len(s.messages))
	copy(history, s.messages)
	return history
}

// TurnCount returns the number of complete turns in the history
func (s *ConversationSession) TurnCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages) / 2
}
