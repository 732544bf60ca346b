package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"quiz-grading-service/internal/domain"
)

// QuestionStore is an in-memory implementation of app.QuestionStore.
type QuestionStore struct {
	clock func() time.Time

	mu        sync.RWMutex
	questions map[string]domain.Question
	order     []string // insertion order, which is creation order
}

func NewQuestionStore() *QuestionStore {
	return NewQuestionStoreWithClock(time.Now)
}

// NewQuestionStoreWithClock allows deterministic timestamps in tests.
func NewQuestionStoreWithClock(now func() time.Time) *QuestionStore {
	return &QuestionStore{
		clock:     now,
		questions: make(map[string]domain.Question),
	}
}

func (s *QuestionStore) CreateQuestion(_ context.Context, q domain.Question) (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	q.ID = uuid.NewString()
	q.CreatedAt = now
	q.UpdatedAt = now
	q.Options = append([]string(nil), q.Options...)
	s.questions[q.ID] = q
	s.order = append(s.order, q.ID)
	return q, nil
}

// Put stores a question as-is, keeping its id. Used to seed fixtures.
func (s *QuestionStore) Put(q domain.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[q.ID]; !ok {
		s.order = append(s.order, q.ID)
	}
	s.questions[q.ID] = q
}

func (s *QuestionStore) GetQuestion(_ context.Context, questionID string) (domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if q, ok := s.questions[questionID]; ok {
		return q, nil
	}
	return domain.Question{}, domain.ErrQuestionNotFound
}

func (s *QuestionStore) ListQuestionsByQuiz(_ context.Context, quizID string) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Question, 0)
	for _, id := range s.order {
		q := s.questions[id]
		if q.QuizID == quizID && q.IsActive {
			out = append(out, q)
		}
	}
	return out, nil
}
