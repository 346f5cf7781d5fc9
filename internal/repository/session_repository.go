package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/screenhq/resume-screener/internal/model"
)

var ErrSessionNotFound = fmt.Errorf("session not found")

// SessionRepository holds screening sessions in memory for the lifetime of
// the process. Nothing is persisted across restarts.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*model.ScreeningSession
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[uuid.UUID]*model.ScreeningSession),
	}
}

func (r *SessionRepository) Save(session *model.ScreeningSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
}

func (r *SessionRepository) FindByID(id uuid.UUID) (*model.ScreeningSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// MarkNotified flips one record's notified flag to true. The flag is
// monotonic; the record order and every other record stay untouched.
func (r *SessionRepository) MarkNotified(sessionID, recordID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	record := session.FindRecord(recordID)
	if record == nil {
		return fmt.Errorf("record %s not found in session %s", recordID, sessionID)
	}
	record.Notified = true
	session.UpdatedAt = time.Now()
	return nil
}
