// Package broadcast fans room events out to live sessions.
package broadcast

import (
	"github.com/yaegerbomb42/famgame/logger"
	"github.com/yaegerbomb42/famgame/session"
)

// SessionBroadcaster implements room.Notifier over the session manager.
type SessionBroadcaster struct {
	sessions *session.Manager
}

func NewSessionBroadcaster(sessions *session.Manager) *SessionBroadcaster {
	return &SessionBroadcaster{sessions: sessions}
}

// Broadcast sends one event to every listed session. Send failures are
// logged and skipped; the read loop notices dead connections on its own.
func (b *SessionBroadcaster) Broadcast(sessionIDs []string, event string, data any) {
	for _, id := range sessionIDs {
		s, ok := b.sessions.Get(id)
		if !ok {
			continue
		}
		if err := s.Send(event, data); err != nil {
			logger.Log.Warnw("broadcast send failed", "session", id, "event", event, "error", err)
		}
	}
}

// SendTo delivers a targeted event to a single session.
func (b *SessionBroadcaster) SendTo(sessionID string, event string, data any) {
	s, ok := b.sessions.Get(sessionID)
	if !ok {
		return
	}
	if err := s.Send(event, data); err != nil {
		logger.Log.Warnw("targeted send failed", "session", sessionID, "event", event, "error", err)
	}
}
