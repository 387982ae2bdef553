package domain

type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseAwaitingChoice   Phase = "awaiting_choice"
	PhaseAwaitingPassword Phase = "awaiting_password"
)

// ConversationState tracks where one user is in the upload flow. It is
// ephemeral and never persisted; a restart drops all in-flight flows.
type ConversationState struct {
	UserID         int64
	Phase          Phase
	PendingFileKey string
	Context        map[string]string
}

// StateStore holds per-user conversation state. Each user's record is read
// and mutated as an atomic unit; records for distinct users never interfere.
type StateStore interface {
	// Get returns the state for userID, creating an Idle state on first use.
	Get(userID int64) ConversationState
	// Update applies fn to the user's state under the store lock.
	Update(userID int64, fn func(state *ConversationState))
	// Reset returns the user's state to Idle and clears any pending key.
	Reset(userID int64)
}
