package form

import (
	"context"
	"sync"
	"time"

	"cardcomposer/internal/catalog"
	"cardcomposer/internal/draft"
	appErrors "cardcomposer/internal/errors"
	"cardcomposer/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Manager hosts the live editing sessions. A client that wants its draft back
// resumes with the session id it was handed last time.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	store     draft.Store
	catalog   catalog.Client
	assist    AssistService
	validate  *validator.Validate
	saveDelay time.Duration
}

func NewManager(store draft.Store, catalogClient catalog.Client, assist AssistService, saveDelay time.Duration) *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		store:     store,
		catalog:   catalogClient,
		assist:    assist,
		validate:  utils.NewValidator(),
		saveDelay: saveDelay,
	}
}

// Open creates a session, or resumes one when id is non-empty. The draft is
// restored exactly once, before the session is visible to any caller, so no
// autosave can race the restore.
func (m *Manager) Open(ctx context.Context, id string) *Session {
	if id == "" {
		id = uuid.NewString()
	}

	m.mu.Lock()
	if existing, ok := m.sessions[id]; ok {
		m.mu.Unlock()
		return existing
	}
	m.mu.Unlock()

	s := newSession(id, m.store, m.catalog, m.assist, m.validate, m.saveDelay)
	s.RestoreDraft(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	// Lost the race to another Open with the same id; keep the first one.
	if existing, ok := m.sessions[id]; ok {
		s.Close()
		return existing
	}

	m.sessions[id] = s

	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, appErrors.NotFoundError("Session not found")
	}

	return s, nil
}

// Remove closes a session and drops it from the registry. The persisted
// draft stays so the client can resume later.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return appErrors.NotFoundError("Session not found")
	}

	s.Close()

	return nil
}

// CloseAll cancels every pending autosave. Called on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.sessions {
		s.Close()
	}
}
