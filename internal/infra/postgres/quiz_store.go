package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"quiz-grading-service/internal/domain"
)

// quizColumns maps quiz attributes to table columns.
var quizColumns = map[string]string{
	"title":             "title",
	"description":       "description",
	"numberOfQuestions": "number_of_questions",
	"isActive":          "is_active",
	"createdAt":         "created_at",
	"updatedAt":         "updated_at",
}

type quizRow struct {
	bun.BaseModel `bun:"table:quizzes,alias:q"`

	ID                string    `bun:"id,pk"`
	Title             string    `bun:"title,notnull"`
	Description       string    `bun:"description,notnull"`
	NumberOfQuestions int       `bun:"number_of_questions,notnull"`
	IsActive          bool      `bun:"is_active,notnull"`
	CreatedAt         time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt         time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (r quizRow) toDomain() domain.Quiz {
	return domain.Quiz{
		ID:                r.ID,
		Title:             r.Title,
		Description:       r.Description,
		NumberOfQuestions: r.NumberOfQuestions,
		IsActive:          r.IsActive,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// QuizStore persists quizzes in Postgres through bun.
type QuizStore struct {
	db *bun.DB
}

func NewQuizStore(db *bun.DB) *QuizStore {
	return &QuizStore{db: db}
}

func (s *QuizStore) CreateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	row := &quizRow{
		ID:                uuid.NewString(),
		Title:             quiz.Title,
		Description:       quiz.Description,
		NumberOfQuestions: quiz.NumberOfQuestions,
		IsActive:          quiz.IsActive,
	}
	if _, err := s.db.NewInsert().Model(row).Returning("*").Exec(ctx); err != nil {
		return domain.Quiz{}, fmt.Errorf("insert quiz: %w", err)
	}
	return row.toDomain(), nil
}

func (s *QuizStore) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	row := new(quizRow)
	err := s.db.NewSelect().Model(row).Where("q.id = ?", quizID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	return row.toDomain(), nil
}

func (s *QuizStore) ListQuizzes(ctx context.Context, opts domain.QuizListOptions) ([]domain.Quiz, error) {
	var rows []quizRow
	q := s.db.NewSelect().Model(&rows).Column("id").Where("q.is_active = TRUE")

	for _, f := range opts.Fields {
		col, ok := quizColumns[f]
		if !ok {
			return nil, domain.InvalidInputf("unknown field %q", f)
		}
		q = q.Column(col)
	}
	for _, sf := range opts.Sort {
		col, ok := quizColumns[sf.Field]
		if !ok {
			return nil, domain.InvalidInputf("unknown sort field %q", sf.Field)
		}
		if sf.Desc {
			q = q.OrderExpr("? DESC", bun.Ident(col))
		} else {
			q = q.OrderExpr("? ASC", bun.Ident(col))
		}
	}
	if opts.Limit > 0 {
		page := opts.Page
		if page < 1 {
			page = 1
		}
		q = q.Limit(opts.Limit).Offset((page - 1) * opts.Limit)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	out := make([]domain.Quiz, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *QuizStore) QuizStats(ctx context.Context) (domain.QuizStats, error) {
	var stats domain.QuizStats
	err := s.db.NewSelect().
		Model((*quizRow)(nil)).
		ColumnExpr("COUNT(*)").
		ColumnExpr("COUNT(*) FILTER (WHERE q.is_active)").
		ColumnExpr("COALESCE(AVG(q.number_of_questions), 0)::float8").
		Scan(ctx, &stats.TotalQuizzes, &stats.ActiveQuizzes, &stats.AvgQuestions)
	if err != nil {
		return domain.QuizStats{}, fmt.Errorf("quiz stats: %w", err)
	}
	return stats, nil
}
