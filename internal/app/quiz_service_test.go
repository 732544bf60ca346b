package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"quiz-grading-service/internal/app"
	"quiz-grading-service/internal/domain"
	"quiz-grading-service/internal/infra/memory"
)

func TestCreateQuizTrimsAndDefaults(t *testing.T) {
	ctx := context.Background()
	service := app.NewQuizService(memory.NewQuizStore())

	quiz, err := service.CreateQuiz(ctx, app.CreateQuizInput{
		Title:             "   World Capitals  ",
		Description:       "  Geography basics ",
		NumberOfQuestions: 10,
	})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if quiz.ID == "" || quiz.Title != "World Capitals" || quiz.Description != "Geography basics" || !quiz.IsActive {
		t.Fatalf("unexpected quiz %+v", quiz)
	}
	if quiz.CreatedAt.IsZero() {
		t.Fatalf("expected store timestamps")
	}
}

func TestCreateQuizAggregatesProblems(t *testing.T) {
	service := app.NewQuizService(memory.NewQuizStore())

	_, err := service.CreateQuiz(context.Background(), app.CreateQuizInput{
		Title:             "   ",
		Description:       strings.Repeat("d", 501),
		NumberOfQuestions: 0,
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected validation error, got %v", err)
	}
	want := []string{"title is required", "description must be at most 500 characters", "numberOfQuestions must be at least 1"}
	if len(verr.Problems) != len(want) {
		t.Fatalf("expected %v, got %v", want, verr.Problems)
	}
	for i := range want {
		if verr.Problems[i] != want[i] {
			t.Fatalf("expected %q, got %q", want[i], verr.Problems[i])
		}
	}

	_, err = service.CreateQuiz(context.Background(), app.CreateQuizInput{Title: "Ok title", NumberOfQuestions: 101})
	if !errors.Is(err, domain.ErrInvalidInput) || !strings.Contains(err.Error(), "numberOfQuestions must be at most 100") {
		t.Fatalf("expected upper bound error, got %v", err)
	}
}

func TestListQuizzesDefaultsAndProjection(t *testing.T) {
	ctx := context.Background()
	service := app.NewQuizService(memory.NewQuizStore())
	for _, title := range []string{"First quiz", "Second quiz"} {
		if _, err := service.CreateQuiz(ctx, app.CreateQuizInput{Title: title, NumberOfQuestions: 5}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	views, err := service.ListQuizzes(ctx, domain.QuizListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 quizzes, got %d", len(views))
	}
	for _, key := range []string{"id", "title", "numberOfQuestions", "isActive", "createdAt"} {
		if _, ok := views[0][key]; !ok {
			t.Fatalf("expected default field %q in %v", key, views[0])
		}
	}
	if _, ok := views[0]["description"]; ok {
		t.Fatalf("description is not a default field: %v", views[0])
	}

	views, err = service.ListQuizzes(ctx, domain.QuizListOptions{Fields: []string{"description"}, Sort: app.ParseSort("title")})
	if err != nil {
		t.Fatalf("list projected: %v", err)
	}
	if len(views[0]) != 2 || views[0]["description"] != "" {
		t.Fatalf("expected id and description only, got %v", views[0])
	}

	_, err = service.ListQuizzes(ctx, domain.QuizListOptions{Sort: app.ParseSort("-password")})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid sort field, got %v", err)
	}
}

func TestParseSortAndFields(t *testing.T) {
	got := app.ParseSort(" -createdAt, +title ,numberOfQuestions,")
	want := []domain.SortField{{Field: "createdAt", Desc: true}, {Field: "title"}, {Field: "numberOfQuestions"}}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want[i], got[i])
		}
	}

	fields := app.ParseFields("title numberOfQuestions,isActive")
	if len(fields) != 3 || fields[2] != "isActive" {
		t.Fatalf("unexpected fields %v", fields)
	}
}
