package service

import (
	"log/slog"
	"time"

	"listening-room/internal/domain"
	"listening-room/lib/random"
)

// SessionService issues opaque session identities. Sessions are stateless:
// nothing is stored; a well-formed supplied pair is echoed back, anything
// else gets a freshly minted one.
type SessionService struct {
	log *slog.Logger
	now func() time.Time
}

func NewSessionService(log *slog.Logger) *SessionService {
	if log == nil {
		log = slog.Default()
	}
	return &SessionService{log: log, now: time.Now}
}

func (s *SessionService) IssueSession(suppliedID, suppliedCreated string) domain.Session {
	const op = "service.session.issue"

	if len(suppliedID) == random.SessionIDLength() {
		if createdAt, ok := domain.ParseSessionTime(suppliedCreated); ok {
			return domain.Session{ID: suppliedID, CreatedAt: createdAt}
		}
	}

	session := domain.Session{
		ID:        random.NewSessionID(),
		CreatedAt: s.now(),
	}
	s.log.Info("session issued", "op", op, "session_id", session.ID)
	return session
}
