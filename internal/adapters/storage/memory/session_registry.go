package memory

import (
	"sync"

	"github.com/PabloGalante/career-companion/internal/domain"
)

// SessionRegistry holds the one active chat session.
type SessionRegistry struct {
	mu         sync.RWMutex
	session    domain.ChatSession
	generation domain.Generation
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{}
}

func (r *SessionRegistry) Begin() domain.Generation {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	r.session = nil
	return r.generation
}

func (r *SessionRegistry) Attach(gen domain.Generation, session domain.ChatSession) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.generation {
		return false
	}
	r.session = session
	return true
}

func (r *SessionRegistry) Current() (domain.ChatSession, domain.Generation) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.session, r.generation
}

func (r *SessionRegistry) IsCurrent(gen domain.Generation) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return gen == r.generation
}
