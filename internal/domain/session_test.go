package domain

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

const (
	defaultTimeout  = 30 * time.Minute
	defaultMaxTurns = 10
)

// TestNewConversationSession tests session creation and initialization
func TestNewConversationSession(t *testing.T) {
	session := NewConversationSession("session-1", 0, 0)

	if session.ID != "session-1" {
		t.Errorf("expected ID session-1, got %s", session.ID)
	}

	if len(session.GetHistory()) != 0 {
		t.Errorf("expected empty history, got %d messages", len(session.GetHistory()))
	}

	if session.LastAccessTime.IsZero() {
		t.Error("expected LastAccessTime to be set, got zero value")
	}
}

// TestConversationSessionNeverExpiresWithoutTimeout tests the unbounded default
func TestConversationSessionNeverExpiresWithoutTimeout(t *testing.T) {
	session := NewConversationSession("session-1", 0, 0)
	session.LastAccessTime = time.Now().Add(-72 * time.Hour)

	if session.IsExpired() {
		t.Error("expected session without timeout to never expire")
	}
}

// TestConversationSessionIsExpired tests session expiration check logic
func TestConversationSessionIsExpired(t *testing.T) {
	session := NewConversationSession("session-1", defaultTimeout, defaultMaxTurns)

	if session.IsExpired() {
		t.Error("expected new session to not be expired")
	}

	session.LastAccessTime = time.Now().Add(-31 * time.Minute)
	if !session.IsExpired() {
		t.Error("expected session with LastAccessTime 31 minutes ago to be expired")
	}

	session.Touch()
	if session.IsExpired() {
		t.Error("expected touched session to not be expired")
	}
}

// TestConversationSessionAddTurn tests append order within a turn
func TestConversationSessionAddTurn(t *testing.T) {
	session := NewConversationSession("session-1", 0, 0)

	session.AddTurn(
		ChatMessage{Role: ChatMessageRoleUser, Content: "Hello"},
		ChatMessage{Role: ChatMessageRoleAssistant, Content: "Hi there!"},
	)

	history := session.GetHistory()
	if len(history) != 2 {
		t.Fatalf("expected 2 messages after adding 1 turn, got %d", len(history))
	}
	if history[0].Role != ChatMessageRoleUser || history[0].Content != "Hello" {
		t.Errorf("expected first message to be user message 'Hello', got %v", history[0])
	}
	if history[1].Role != ChatMessageRoleAssistant || history[1].Content != "Hi there!" {
		t.Errorf("expected second message to be assistant message 'Hi there!', got %v", history[1])
	}
}

// TestConversationSessionUnboundedHistory tests that no turn is dropped without maxTurns
func TestConversationSessionUnboundedHistory(t *testing.T) {
	session := NewConversationSession("session-1", 0, 0)

	for i := 0; i < 50; i++ {
		session.AddTurn(
			ChatMessage{Role: ChatMessageRoleUser, Content: fmt.Sprintf("q%d", i)},
			ChatMessage{Role: ChatMessageRoleAssistant, Content: fmt.Sprintf("a%d", i)},
		)
	}

	if session.TurnCount() != 50 {
		t.Fatalf("expected 50 turns, got %d", session.TurnCount())
	}
	history := session.GetHistory()
	for i := 0; i < 50; i++ {
		if history[i*2].Content != fmt.Sprintf("q%d", i) || history[i*2+1].Content != fmt.Sprintf("a%d", i) {
			t.Fatalf("turn %d out of order: %v %v", i, history[i*2], history[i*2+1])
		}
	}
}

// TestAddTurnRespectsInstanceMaxTurns tests FIFO removal when at max turns
func TestAddTurnRespectsInstanceMaxTurns(t *testing.T) {
	customMaxTurns := 2
	session := NewConversationSession("session-1", defaultTimeout, customMaxTurns)

	for i := 0; i < customMaxTurns; i++ {
		session.AddTurn(
			ChatMessage{Role: ChatMessageRoleUser, Content: "message " + string(rune('A'+i))},
			ChatMessage{Role: ChatMessageRoleAssistant, Content: "response " + string(rune('A'+i))},
		)
	}
	session.AddTurn(
		ChatMessage{Role: ChatMessageRoleUser, Content: "new message"},
		ChatMessage{Role: ChatMessageRoleAssistant, Content: "new response"},
	)

	history := session.GetHistory()
	if len(history) != customMaxTurns*2 {
		t.Fatalf("expected %d messages after FIFO removal, got %d", customMaxTurns*2, len(history))
	}
	if history[0].Content != "message B" {
		t.Errorf("expected first message to be 'message B', got %s", history[0].Content)
	}
	if history[len(history)-1].Content != "new response" {
		t.Errorf("expected last message to be 'new response', got %s", history[len(history)-1].Content)
	}
}

// TestGetHistoryReturnsCopy tests that callers cannot mutate the stored history
func TestGetHistoryReturnsCopy(t *testing.T) {
	session := NewConversationSession("session-1", 0, 0)
	session.AddTurn(
		ChatMessage{Role: ChatMessageRoleUser, Content: "Hello"},
		ChatMessage{Role: ChatMessageRoleAssistant, Content: "Hi"},
	)

	history := session.GetHistory()
	history[0].Content = "changed"

	if session.GetHistory()[0].Content != "Hello" {
		t.Error("expected stored history to be unaffected by changes to the returned copy")
	}
}

// TestConversationSessionConcurrentAddTurn tests that concurrent appends keep turns intact
func TestConversationSessionConcurrentAddTurn(t *testing.T) {
	session := NewConversationSession("session-1", 0, 0)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			session.AddTurn(
				ChatMessage{Role: ChatMessageRoleUser, Content: fmt.Sprintf("q%d", i)},
				ChatMessage{Role: ChatMessageRoleAssistant, Content: fmt.Sprintf("a%d", i)},
			)
		}(i)
	}
	wg.Wait()

	history := session.GetHistory()
	if len(history) != 200 {
		t.Fatalf("expected 200 messages, got %d", len(history))
	}
	for i := 0; i < len(history); i += 2 {
		var n int
		if _, err := fmt.Sscanf(history[i].Content, "q%d", &n); err != nil {
			t.Fatalf("expected user message at %d, got %q", i, history[i].Content)
		}
		if history[i+1].Content != fmt.Sprintf("a%d", n) {
			t.Fatalf("turn split at %d: %q followed by %q", i, history[i].Content, history[i+1].Content)
		}
	}
}
