package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/yaegerbomb42/famgame/models"
)

// PostgreSQL is the plain database/sql archive implementation.
type PostgreSQL struct {
	db *sql.DB
}

func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS game_records (
            id SERIAL PRIMARY KEY,
            room_code VARCHAR(8) NOT NULL,
            game_type VARCHAR(32) NOT NULL,
            players JSONB NOT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE INDEX IF NOT EXISTS idx_game_records_room_code
        ON game_records (room_code)
    `)
	return err
}

func (p *PostgreSQL) SaveGameRecord(record *models.GameRecord) error {
	players, err := json.Marshal(record.Players)
	if err != nil {
		return err
	}
	_, err = p.db.Exec(`
        INSERT INTO game_records (room_code, game_type, players, created_at)
        VALUES ($1, $2, $3, $4)
    `, record.RoomCode, string(record.GameType), players, record.CreatedAt)
	return err
}

func (p *PostgreSQL) RecentGameRecords(roomCode string, limit int) ([]models.GameRecord, error) {
	rows, err := p.db.Query(`
        SELECT room_code, game_type, players, created_at
        FROM game_records
        WHERE room_code = $1
        ORDER BY created_at DESC
        LIMIT $2
    `, roomCode, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.GameRecord
	for rows.Next() {
		var rec models.GameRecord
		var gameType string
		var players []byte
		if err := rows.Scan(&rec.RoomCode, &gameType, &players, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.GameType = models.GameTag(gameType)
		if err := json.Unmarshal(players, &rec.Players); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
