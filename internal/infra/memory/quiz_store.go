package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"quiz-grading-service/internal/domain"
)

// QuizStore is an in-memory implementation of app.QuizStore.
type QuizStore struct {
	clock func() time.Time

	mu      sync.RWMutex
	quizzes map[string]domain.Quiz
	order   []string
}

func NewQuizStore() *QuizStore {
	return NewQuizStoreWithClock(time.Now)
}

// NewQuizStoreWithClock allows deterministic timestamps in tests.
func NewQuizStoreWithClock(now func() time.Time) *QuizStore {
	return &QuizStore{
		clock:   now,
		quizzes: make(map[string]domain.Quiz),
	}
}

func (s *QuizStore) CreateQuiz(_ context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	quiz.ID = uuid.NewString()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now
	s.quizzes[quiz.ID] = quiz
	s.order = append(s.order, quiz.ID)
	return quiz, nil
}

func (s *QuizStore) GetQuiz(_ context.Context, quizID string) (domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if quiz, ok := s.quizzes[quizID]; ok {
		return quiz, nil
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

func (s *QuizStore) ListQuizzes(_ context.Context, opts domain.QuizListOptions) ([]domain.Quiz, error) {
	s.mu.RLock()
	active := make([]domain.Quiz, 0, len(s.order))
	for _, id := range s.order {
		if q := s.quizzes[id]; q.IsActive {
			active = append(active, q)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(active, func(i, j int) bool {
		for _, sf := range opts.Sort {
			c := compareQuiz(active[i], active[j], sf.Field)
			if c == 0 {
				continue
			}
			if sf.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	if opts.Limit <= 0 {
		return active, nil
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * opts.Limit
	if start >= len(active) {
		return []domain.Quiz{}, nil
	}
	end := start + opts.Limit
	if end > len(active) {
		end = len(active)
	}
	return active[start:end], nil
}

func (s *QuizStore) QuizStats(_ context.Context) (domain.QuizStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.QuizStats{TotalQuizzes: len(s.quizzes)}
	if stats.TotalQuizzes == 0 {
		return stats, nil
	}
	sum := 0
	for _, q := range s.quizzes {
		if q.IsActive {
			stats.ActiveQuizzes++
		}
		sum += q.NumberOfQuestions
	}
	stats.AvgQuestions = float64(sum) / float64(stats.TotalQuizzes)
	return stats, nil
}

func compareQuiz(a, b domain.Quiz, field string) int {
	switch field {
	case "title":
		return strings.Compare(a.Title, b.Title)
	case "description":
		return strings.Compare(a.Description, b.Description)
	case "numberOfQuestions":
		return a.NumberOfQuestions - b.NumberOfQuestions
	case "isActive":
		return boolRank(a.IsActive) - boolRank(b.IsActive)
	case "createdAt":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "updatedAt":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	}
	return 0
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
