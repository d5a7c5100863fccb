package bot

import (
	"sync"
	"time"

	"github.com/heartmarshall/todolist-backend/pkg/todoapi"
)

// State is the position of a chat in the dialog.
type State int

const (
	StateStart State = iota
	StateLanguage
	StateMain
	StateTasks
	StateTaskDetails
	StateCreateTitle
	StateCreateDescription
	StateCreateDueDate
	StateCreateCategories
	StateUpdateTitle
	StateUpdateDescription
	StateComments
	StateCreateComment
	StateDeleteComment
	StateCategories
	StateCreateCategory
	StateDeleteCategory
)

// Session is the per-chat dialog state.
type Session struct {
	mu sync.Mutex

	ChatID int64
	Locale string
	State  State

	Username     string
	password     string
	accessToken  string
	refreshToken string

	// Lists shown to the user, addressed by 1-based position.
	tasks      []todoapi.Task
	comments   []todoapi.Comment
	categories []todoapi.Category

	taskID string
	draft  taskDraft
}

// taskDraft collects the answers of the create and update flows. A nil
// title or description means "keep" during an update.
type taskDraft struct {
	title       *string
	description *string
	dueDate     *time.Time
}

func (s *Session) resetDraft() { s.draft = taskDraft{} }

type sessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[int64]*Session)}
}

// get returns the chat's session, creating it on first contact.
func (s *sessionStore) get(chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		sess = &Session{ChatID: chatID, State: StateStart}
		s.sessions[chatID] = sess
	}
	return sess
}
