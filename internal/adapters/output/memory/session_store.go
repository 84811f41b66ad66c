package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/sfy45/Gen-UI/internal/domain"
	"github.com/sfy45/Gen-UI/internal/ports/output"
)

// Compile-time check to ensure MemorySessionStore implements SessionStore interface
var _ output.SessionStore = (*MemorySessionStore)(nil)

// turnLock serializes turns for one session id. It is keyed by id, not by
// session, so deleting or expiring a session never hands out a second lock.
type turnLock struct {
	mu   sync.Mutex
	refs int // holders plus waiters; the lock is dropped at zero
}

// MemorySessionStore struct - Output adapter for in-memory session storage
// Sessions live for the process lifetime unless a timeout is configured.
type MemorySessionStore struct {
	sessions sync.Map // sessionID -> *domain.ConversationSession
	timeout  time.Duration
	maxTurns int

	locksMu sync.Mutex
	locks   map[string]*turnLock
}

// NewMemorySessionStore creates a new in-memory session store.
// timeout: idle duration after which sessions expire, 0 disables expiry
// maxTurns: turns retained per session history, 0 keeps everything
func NewMemorySessionStore(timeout time.Duration, maxTurns int) *MemorySessionStore {
	return &MemorySessionStore{
		timeout:  timeout,
		maxTurns: maxTurns,
		locks:    make(map[string]*turnLock),
	}
}

// GetTimeout returns the configured session timeout duration.
func (m *MemorySessionStore) GetTimeout() time.Duration {
	return m.timeout
}

// GetMaxTurns returns the configured maximum conversation turns.
func (m *MemorySessionStore) GetMaxTurns() int {
	return m.maxTurns
}

// GetOrCreate returns the session for sessionID, inserting a new one atomically
// when absent. Expired sessions are replaced (lazy cleanup) unless a turn is in flight.
func (m *MemorySessionStore) GetOrCreate(sessionID string) *domain.ConversationSession {
	return m.session(sessionID, !m.inTurn(sessionID))
}

func (m *MemorySessionStore) session(sessionID string, replaceExpired bool) *domain.ConversationSession {
	for {
		value, ok := m.sessions.Load(sessionID)
		if !ok {
			fresh := domain.NewConversationSession(sessionID, m.timeout, m.maxTurns)
			if value, ok = m.sessions.LoadOrStore(sessionID, fresh); !ok {
				return fresh
			}
		}

		existing := value.(*domain.ConversationSession)
		if !replaceExpired || !existing.IsExpired() {
			existing.Touch()
			return existing
		}

		// Only one caller wins the delete; the rest retry and load its replacement.
		m.sessions.CompareAndDelete(sessionID, existing)
	}
}

// AppendTurn appends a human message and reply to an existing session.
func (m *MemorySessionStore) AppendTurn(sessionID, humanText, replyText string) error {
	value, ok := m.sessions.Load(sessionID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}

	value.(*domain.ConversationSession).AddTurn(
		domain.ChatMessage{Role: domain.ChatMessageRoleUser, Content: humanText},
		domain.ChatMessage{Role: domain.ChatMessageRoleAssistant, Content: replyText},
	)
	return nil
}

// LockSession acquires the turn lock for sessionID and returns the session it guards,
// creating the session if needed. A turn that outlives a delete keeps writing to the
// session it locked, so its reply is dropped along with that session.
func (m *MemorySessionStore) LockSession(sessionID string) (*domain.ConversationSession, func()) {
	l := m.acquire(sessionID)
	l.mu.Lock()

	var once sync.Once
	unlock := func() {
		once.Do(func() {
			l.mu.Unlock()
			m.release(sessionID, l)
		})
	}
	return m.session(sessionID, true), unlock
}

func (m *MemorySessionStore) acquire(sessionID string) *turnLock {
	m.locksMu.Lock()
	defer m.locksMu.Unlock()

	l, ok := m.locks[sessionID]
	if !ok {
		l = &turnLock{}
		m.locks[sessionID] = l
	}
	l.refs++
	return l
}

func (m *MemorySessionStore) release(sessionID string, l *turnLock) {
	m.locksMu.Lock()
	defer m.locksMu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(m.locks, sessionID)
	}
}

func (m *MemorySessionStore) inTurn(sessionID string) bool {
	m.locksMu.Lock()
	defer m.locksMu.Unlock()
	_, ok := m.locks[sessionID]
	return ok
}

// DeleteSession removes a conversation session.
// This operation is idempotent - deleting a non-existent session does not return an error.
// It does not wait for an in-flight turn; the next turn still queues behind it.
func (m *MemorySessionStore) DeleteSession(sessionID string) error {
	m.sessions.Delete(sessionID)
	return nil
}

// Len returns the number of live sessions
func (m *MemorySessionStore) Len() int {
	n := 0
	m.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
