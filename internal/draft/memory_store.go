package draft

import (
	"context"
	"encoding/json"
	"sync"

	"cardcomposer/internal/models"
)

// memoryStore keeps draft slots in process memory. It backs single-node
// deployments without redis and doubles as the test substitute for the port.
type memoryStore struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func NewMemoryStore() Store {
	return &memoryStore{slots: make(map[string][]byte)}
}

func (m *memoryStore) Load(ctx context.Context, sessionID string) (*models.Draft, bool) {

	m.mu.Lock()
	data, ok := m.slots[Key(sessionID)]
	m.mu.Unlock()

	if !ok {
		return nil, false
	}

	var draft models.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, false
	}

	return &draft, true
}

func (m *memoryStore) Save(ctx context.Context, sessionID string, fields map[string]any, keywords []string) error {

	data, err := json.Marshal(models.Draft{Fields: fields, Keywords: keywords})
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.slots[Key(sessionID)] = data
	m.mu.Unlock()

	return nil
}

func (m *memoryStore) Clear(ctx context.Context, sessionID string) error {

	m.mu.Lock()
	delete(m.slots, Key(sessionID))
	m.mu.Unlock()

	return nil
}
