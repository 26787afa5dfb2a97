package room

import "github.com/yaegerbomb42/famgame/models"

// Notifier delivers events to connected clients. Defined here to break
// the import cycle between room and broadcast.
type Notifier interface {
	Broadcast(sessionIDs []string, event string, data any)
	SendTo(sessionID string, event string, data any)
}

// RecordSink archives the summary of a finished mini-game. The live room
// itself is never persisted.
type RecordSink interface {
	SaveGameRecord(record *models.GameRecord)
}
