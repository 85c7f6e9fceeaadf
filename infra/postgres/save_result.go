package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"wordgame-service/domain"

	"github.com/lib/pq"
)

const saveGameResultQuery = `
	INSERT INTO game_results (room_id, mode, room_name, host_id, winner_id, scores, started_at, finished_at)
	VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8);`

// SaveGameResult appends the outcome of a finished room. Recording the same
// room twice is ignored.
func (r *Repository) SaveGameResult(ctx context.Context, room *domain.Room) error {
	scores, err := json.Marshal(room.Scores())
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}

	_, err = r.db.ExecContext(ctx, saveGameResultQuery,
		room.ID, string(room.Mode), room.Name, room.HostID, room.WinnerID,
		scores, room.StartedAt, room.FinishedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil
		}
		return fmt.Errorf("failed to save game result: %w", err)
	}
	return nil
}
