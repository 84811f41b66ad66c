package output

import "github.com/sfy45/Gen-UI/internal/domain"

// SessionStore interface - Output port
// Defines what the application needs for managing conversation sessions.
// Implementations must be safe for concurrent access.
type SessionStore interface {
	// GetOrCreate returns the session for the identifier, creating it on first use.
	// Insert-if-absent is atomic: concurrent first calls observe the same session.
	GetOrCreate(sessionID string) *domain.ConversationSession

	// AppendTurn appends a human message and reply to the named session's history.
	// Fails with domain.ErrSessionNotFound if the session was never created.
	AppendTurn(sessionID, humanText, replyText string) error

	// LockSession acquires the per-session turn lock and returns the session it guards
	// together with the release func. The lock belongs to the identifier, so turns for
	// one id stay serialized across deletes and expiry; different ids never contend.
	LockSession(sessionID string) (session *domain.ConversationSession, unlock func())

	// DeleteSession removes a session. Deleting a missing session is not an error.
	DeleteSession(sessionID string) error
}
