package navigator

import "sync"

// Session is the per-chat conversational state. The embedded mutex
// serializes handling within one chat: a message that arrives while an
// earlier one is still waiting on a backend call queues behind it.
type Session struct {
	sync.Mutex

	ChatID  int64
	Section Section
	Capture CaptureMode
	Persona Persona
	Tasks   []string
}

// NewSession returns a fresh session positioned at the main menu.
func NewSession(chatID int64) *Session {
	return &Session{
		ChatID:  chatID,
		Section: SectionMain,
		Capture: CaptureNone,
		Persona: PersonaCute,
	}
}

// Store holds sessions keyed by chat id. Sessions are created lazily on
// first access and live for the process lifetime.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns the session for chatID, creating it if needed.
func (st *Store) Get(chatID int64) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[chatID]
	if !ok {
		sess = NewSession(chatID)
		st.sessions[chatID] = sess
	}
	return sess
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
