package app

import (
	"context"
	"strings"

	"quiz-grading-service/internal/domain"
)

const (
	defaultPage  = 1
	defaultLimit = 50
)

var (
	defaultQuizFields = []string{"title", "numberOfQuestions", "isActive", "createdAt"}
	defaultQuizSort   = []domain.SortField{{Field: "createdAt", Desc: true}}

	// quizFields lists the projectable and sortable quiz attributes.
	quizFields = map[string]bool{
		"title":             true,
		"description":       true,
		"numberOfQuestions": true,
		"isActive":          true,
		"createdAt":         true,
		"updatedAt":         true,
	}
)

// QuizStore persists quizzes. ListQuizzes returns active quizzes only.
type QuizStore interface {
	CreateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error)
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
	ListQuizzes(ctx context.Context, opts domain.QuizListOptions) ([]domain.Quiz, error)
	QuizStats(ctx context.Context) (domain.QuizStats, error)
}

// QuizView is a projected quiz; "id" is always present.
type QuizView map[string]any

// QuizService contains the quiz use cases.
type QuizService struct {
	quizzes QuizStore
}

func NewQuizService(quizzes QuizStore) *QuizService {
	return &QuizService{quizzes: quizzes}
}

// CreateQuiz validates and stores a new active quiz.
func (s *QuizService) CreateQuiz(ctx context.Context, in CreateQuizInput) (domain.Quiz, error) {
	in = in.normalized()
	if err := validateQuiz(in); err != nil {
		return domain.Quiz{}, err
	}
	return s.quizzes.CreateQuiz(ctx, domain.Quiz{
		Title:             in.Title,
		Description:       in.Description,
		NumberOfQuestions: in.NumberOfQuestions,
		IsActive:          true,
	})
}

// GetQuiz returns the quiz or an error matching domain.ErrNotFound.
func (s *QuizService) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	return s.quizzes.GetQuiz(ctx, quizID)
}

// ListQuizzes pages through active quizzes, projecting the requested fields.
func (s *QuizService) ListQuizzes(ctx context.Context, opts domain.QuizListOptions) ([]QuizView, error) {
	opts, err := normalizeListOptions(opts)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.quizzes.ListQuizzes(ctx, opts)
	if err != nil {
		return nil, err
	}
	views := make([]QuizView, 0, len(quizzes))
	for _, q := range quizzes {
		views = append(views, project(q, opts.Fields))
	}
	return views, nil
}

// Stats aggregates over every stored quiz, active or not.
func (s *QuizService) Stats(ctx context.Context) (domain.QuizStats, error) {
	return s.quizzes.QuizStats(ctx)
}

func normalizeListOptions(opts domain.QuizListOptions) (domain.QuizListOptions, error) {
	if opts.Page < 1 {
		opts.Page = defaultPage
	}
	if len(opts.Fields) == 0 {
		opts.Fields = defaultQuizFields
	}
	for _, f := range opts.Fields {
		if !quizFields[f] {
			return opts, domain.InvalidInputf("unknown field %q", f)
		}
	}
	if len(opts.Sort) == 0 {
		opts.Sort = defaultQuizSort
	}
	for _, sf := range opts.Sort {
		if !quizFields[sf.Field] {
			return opts, domain.InvalidInputf("unknown sort field %q", sf.Field)
		}
	}
	return opts, nil
}

// ParseFields splits a projection such as "title numberOfQuestions" or "title,isActive".
func ParseFields(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' })
}

// ParseSort reads "-createdAt,title": comma separated, "-" for descending.
func ParseSort(raw string) []domain.SortField {
	var out []domain.SortField
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sf := domain.SortField{Field: part}
		if strings.HasPrefix(part, "-") {
			sf = domain.SortField{Field: part[1:], Desc: true}
		} else if strings.HasPrefix(part, "+") {
			sf.Field = part[1:]
		}
		out = append(out, sf)
	}
	return out
}

func project(q domain.Quiz, fields []string) QuizView {
	view := QuizView{"id": q.ID}
	for _, f := range fields {
		switch f {
		case "title":
			view[f] = q.Title
		case "description":
			view[f] = q.Description
		case "numberOfQuestions":
			view[f] = q.NumberOfQuestions
		case "isActive":
			view[f] = q.IsActive
		case "createdAt":
			view[f] = q.CreatedAt
		case "updatedAt":
			view[f] = q.UpdatedAt
		}
	}
	return view
}
