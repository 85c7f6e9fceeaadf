package postgres

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

const (
	createBooksTable = `
		CREATE TABLE IF NOT EXISTS books (
			name VARCHAR(100) NOT NULL,
			academy_id VARCHAR(64) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (name, academy_id)
		);`

	createWordsTable = `
		CREATE TABLE IF NOT EXISTS words (
			id VARCHAR(64) PRIMARY KEY,
			academy_id VARCHAR(64) NOT NULL,
			book_name VARCHAR(100) NOT NULL,
			word_number INT DEFAULT 0,
			english VARCHAR(200) NOT NULL,
			korean VARCHAR(200) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);`

	createGameResultsTable = `
		CREATE TABLE IF NOT EXISTS game_results (
			room_id VARCHAR(64) PRIMARY KEY,
			mode VARCHAR(20) NOT NULL, -- 'battle', 'survival'
			room_name VARCHAR(100),
			host_id VARCHAR(64) NOT NULL,
			winner_id VARCHAR(64),
			scores JSONB NOT NULL,
			started_at TIMESTAMP WITH TIME ZONE,
			finished_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);`

	createIndexes = `
		CREATE INDEX IF NOT EXISTS idx_words_book ON words(academy_id, book_name);
		CREATE INDEX IF NOT EXISTS idx_game_results_winner ON game_results(winner_id);`
)

// initDB, tüm veritabanı tablolarını oluşturur.
func initDB(db *sql.DB) error {
	tables := []struct {
		name  string
		query string
	}{
		{"books", createBooksTable},
		{"words", createWordsTable},
		{"game_results", createGameResultsTable},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create '%s' table: %w", table.name, err)
		}
		zap.L().Debug("Table ready", zap.String("table", table.name))
	}

	if _, err := db.Exec(createIndexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	zap.L().Info("Database initialized successfully")
	return nil
}
