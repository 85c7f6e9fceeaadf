package postgres

import (
	"context"
	"fmt"

	"wordgame-service/domain"
)

const fetchPromptsForBookQuery = `
	SELECT id, korean, english
	FROM words
	WHERE book_name = $1 AND academy_id = $2
	ORDER BY word_number, id;`

// FetchPromptsForBook returns every word of the book in catalog order.
func (r *Repository) FetchPromptsForBook(ctx context.Context, book, academyID string) ([]domain.Prompt, error) {
	rows, err := r.db.QueryContext(ctx, fetchPromptsForBookQuery, book, academyID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query words: %v", domain.ErrTransient, err)
	}
	defer rows.Close()

	prompts := make([]domain.Prompt, 0)
	for rows.Next() {
		var p domain.Prompt
		if err := rows.Scan(&p.ID, &p.Term, &p.Answer); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		prompts = append(prompts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read words: %v", domain.ErrTransient, err)
	}
	return prompts, nil
}
