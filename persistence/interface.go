// Package persistence archives finished game summaries. Live room state
// never touches it; losing the process loses the rooms by design.
package persistence

import (
	"errors"

	"github.com/yaegerbomb42/famgame/config"
	"github.com/yaegerbomb42/famgame/models"
)

type Database interface {
	SaveGameRecord(record *models.GameRecord) error
	RecentGameRecords(roomCode string, limit int) ([]models.GameRecord, error)
	Close() error
}

var ErrRecordNotFound = errors.New("record not found")

// Open connects the configured archive backend. Driver "none" returns a
// nil Database, which disables archiving entirely.
func Open(cfg config.DatabaseConfig) (Database, error) {
	switch cfg.Driver {
	case "", "none":
		return nil, nil
	case "gorm":
		return NewGormPostgreSQL(cfg.Postgres.Host, cfg.Postgres.Port,
			cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.DBName)
	case "pq":
		return NewPostgreSQL(cfg.Postgres.Host, cfg.Postgres.Port,
			cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.DBName)
	default:
		return nil, errors.New("unknown database driver: " + cfg.Driver)
	}
}
