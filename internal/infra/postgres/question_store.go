package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quiz-grading-service/internal/domain"
)

const questionColumns = `id, COALESCE(quiz_id, ''), question, type, options, answer, points, is_active, created_at, updated_at`

// QuestionStore keeps questions in Postgres with options and answer as JSONB.
type QuestionStore struct {
	pool *pgxpool.Pool
}

func NewQuestionStore(pool *pgxpool.Pool) *QuestionStore {
	return &QuestionStore{pool: pool}
}

func (s *QuestionStore) CreateQuestion(ctx context.Context, q domain.Question) (domain.Question, error) {
	options, err := json.Marshal(q.Options)
	if err != nil {
		return domain.Question{}, fmt.Errorf("marshal options: %w", err)
	}
	answer, err := domain.MarshalAnswer(q.Answer)
	if err != nil {
		return domain.Question{}, fmt.Errorf("marshal answer: %w", err)
	}

	var quizID *string
	if q.QuizID != "" {
		quizID = &q.QuizID
	}

	q.ID = uuid.NewString()
	err = s.pool.QueryRow(ctx, `
		INSERT INTO questions (id, quiz_id, question, type, options, answer, points, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		q.ID, quizID, q.Question, string(q.Type), []byte(options), []byte(answer), q.Points, q.IsActive,
	).Scan(&q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return domain.Question{}, fmt.Errorf("insert question: %w", err)
	}
	return q, nil
}

func (s *QuestionStore) GetQuestion(ctx context.Context, questionID string) (domain.Question, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = $1`, questionID)
	q, err := scanQuestion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	if err != nil {
		return domain.Question{}, fmt.Errorf("load question: %w", err)
	}
	return q, nil
}

func (s *QuestionStore) ListQuestionsByQuiz(ctx context.Context, quizID string) ([]domain.Question, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+questionColumns+` FROM questions
		WHERE quiz_id = $1 AND is_active
		ORDER BY created_at ASC`, quizID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Question, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func scanQuestion(row pgx.Row) (domain.Question, error) {
	var (
		q          domain.Question
		qType      string
		rawOptions []byte
		rawAnswer  []byte
	)
	if err := row.Scan(&q.ID, &q.QuizID, &q.Question, &qType, &rawOptions, &rawAnswer, &q.Points, &q.IsActive, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return domain.Question{}, err
	}
	q.Type = domain.QuestionType(qType)
	if err := json.Unmarshal(rawOptions, &q.Options); err != nil {
		return domain.Question{}, fmt.Errorf("unmarshal options: %w", err)
	}
	answer, err := domain.DecodeAnswer(q.Type, rawAnswer)
	if err != nil {
		return domain.Question{}, err
	}
	q.Answer = answer
	return q, nil
}
