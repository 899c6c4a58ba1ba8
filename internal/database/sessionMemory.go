package database

import (
	"sync"

	"github.com/drivecanvas/designer-backend/internal/editor"
	"github.com/drivecanvas/designer-backend/internal/entity"
)

// SessionMemoryRepository keeps live sessions in process memory: the document
// is session-scoped by design, nothing survives a restart except what the
// client saved through the export endpoint.
type SessionMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*editor.Session
}

func NewSessionRepository() *SessionMemoryRepository {
	return &SessionMemoryRepository{sessions: map[string]*editor.Session{}}
}

func (r *SessionMemoryRepository) Save(session *editor.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

func (r *SessionMemoryRepository) FindByID(id string) (*editor.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *SessionMemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return entity.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *SessionMemoryRepository) All() []*editor.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*editor.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}
