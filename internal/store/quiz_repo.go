package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akale/trivio/internal/quiz"
)

// quizRepo implements QuizRepo over the quizzes table.
type quizRepo struct {
	db *sql.DB
}

func (r *quizRepo) Save(ctx context.Context, q *SavedQuiz) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.Number == 0 {
		n, err := r.nextNumber(ctx)
		if err != nil {
			return err
		}
		q.Number = n
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}

	questionsJSON, err := json.Marshal(q.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO quizzes (id, quiz_number, topic, difficulty, time_limit_seconds, questions, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.Number, q.Topic, q.Difficulty, q.TimeLimitSeconds, string(questionsJSON), q.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save quiz: %w", err)
	}
	return nil
}

func (r *quizRepo) Get(ctx context.Context, id string) (*SavedQuiz, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, quiz_number, topic, difficulty, time_limit_seconds, questions, created_at
		 FROM quizzes WHERE id = ?`, id)

	q, err := scanQuiz(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	return q, nil
}

func (r *quizRepo) List(ctx context.Context) ([]SavedQuiz, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, quiz_number, topic, difficulty, time_limit_seconds, questions, created_at
		 FROM quizzes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var out []SavedQuiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return out, nil
}

func (r *quizRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	return nil
}

// nextNumber returns one past the highest quiz number ever assigned.
// Numbers are not reused after deletion.
func (r *quizRepo) nextNumber(ctx context.Context) (int, error) {
	var max sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT MAX(quiz_number) FROM quizzes`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("next quiz number: %w", err)
	}
	return int(max.Int64) + 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuiz(row rowScanner) (*SavedQuiz, error) {
	var q SavedQuiz
	var questionsJSON string
	err := row.Scan(&q.ID, &q.Number, &q.Topic, &q.Difficulty, &q.TimeLimitSeconds, &questionsJSON, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	var questions []quiz.Question
	if err := json.Unmarshal([]byte(questionsJSON), &questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}
	q.Questions = questions
	return &q, nil
}
