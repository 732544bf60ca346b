package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-grading-service/internal/domain"
)

func TestQuestionCacheCaches(t *testing.T) {
	store := NewQuestionStore()
	store.Put(sampleQuestion())
	loader := &countingLoader{QuestionLoader: store}
	cache := NewQuestionCache(loader, time.Minute)

	if _, err := cache.GetQuestion(context.Background(), "q1"); err != nil {
		t.Fatalf("get question: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	q, err := cache.GetQuestion(context.Background(), "q1")
	if err != nil {
		t.Fatalf("get question 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
	if q.Answer != domain.SingleChoiceAnswer("4") {
		t.Fatalf("expected cached answer, got %#v", q.Answer)
	}
}

func TestQuestionCacheExpires(t *testing.T) {
	store := NewQuestionStore()
	store.Put(sampleQuestion())
	loader := &countingLoader{QuestionLoader: store}
	cache := NewQuestionCache(loader, time.Minute)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.clock = func() time.Time { return now }

	_, _ = cache.GetQuestion(context.Background(), "q1")
	now = now.Add(2 * time.Minute)
	_, _ = cache.GetQuestion(context.Background(), "q1")
	if loader.calls != 2 {
		t.Fatalf("expected reload after expiry, loader calls %d", loader.calls)
	}
}

func TestQuestionCacheDoesNotCacheMisses(t *testing.T) {
	loader := &countingLoader{QuestionLoader: NewQuestionStore()}
	cache := NewQuestionCache(loader, time.Minute)

	for i := 0; i < 2; i++ {
		_, err := cache.GetQuestion(context.Background(), "missing")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	}
	if loader.calls != 2 {
		t.Fatalf("expected every miss to reach the loader, got %d", loader.calls)
	}
}

type countingLoader struct {
	QuestionLoader
	calls int
}

func (l *countingLoader) GetQuestion(ctx context.Context, questionID string) (domain.Question, error) {
	l.calls++
	return l.QuestionLoader.GetQuestion(ctx, questionID)
}

func sampleQuestion() domain.Question {
	return domain.Question{
		ID:       "q1",
		QuizID:   "quiz-1",
		Question: "What is 2 + 2?",
		Type:     domain.SingleChoice,
		Options:  []string{"3", "4", "5"},
		Answer:   domain.SingleChoiceAnswer("4"),
		Points:   1,
		IsActive: true,
	}
}
