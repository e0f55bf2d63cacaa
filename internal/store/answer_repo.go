package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akale/trivio/internal/answers"
)

// answerRepo implements AnswerRepo over the known_answers table.
type answerRepo struct {
	db *sql.DB
}

func (r *answerRepo) Load(ctx context.Context) (*answers.Set, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT answer FROM known_answers`)
	if err != nil {
		return nil, fmt.Errorf("load known answers: %w", err)
	}
	defer rows.Close()

	set := answers.NewSet()
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("scan known answer: %w", err)
		}
		set.Add(a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load known answers: %w", err)
	}
	return set, nil
}

func (r *answerRepo) Add(ctx context.Context, members []string) error {
	if len(members) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO known_answers (answer) VALUES (?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range members {
		if m == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("insert known answer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *answerRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM known_answers`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count known answers: %w", err)
	}
	return n, nil
}

func (r *answerRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM known_answers`)
	if err != nil {
		return fmt.Errorf("clear known answers: %w", err)
	}
	return nil
}
