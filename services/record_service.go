// Package services bridges the orchestrator and the archive backend.
package services

import (
	"github.com/yaegerbomb42/famgame/logger"
	"github.com/yaegerbomb42/famgame/models"
	"github.com/yaegerbomb42/famgame/persistence"
)

// RecordService archives finished game summaries. With no database
// configured it degrades to a no-op, so the orchestrator never has to
// care whether archiving is on.
type RecordService struct {
	db persistence.Database
}

func NewRecordService(db persistence.Database) *RecordService {
	return &RecordService{db: db}
}

// SaveGameRecord writes the record off the orchestrator's lock path.
// Archive failures are logged, never surfaced to the room.
func (s *RecordService) SaveGameRecord(record *models.GameRecord) {
	if s.db == nil {
		return
	}
	go func() {
		if err := s.db.SaveGameRecord(record); err != nil {
			logger.Log.Errorw("failed to archive game record",
				"room", record.RoomCode, "game", record.GameType, "error", err)
		}
	}()
}

// RecentGameRecords returns the latest archived games for a room code.
func (s *RecordService) RecentGameRecords(roomCode string, limit int) ([]models.GameRecord, error) {
	if s.db == nil {
		return nil, nil
	}
	return s.db.RecentGameRecords(roomCode, limit)
}
