package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"quiz-grading-service/internal/app"
	"quiz-grading-service/internal/domain"
	"quiz-grading-service/internal/grading"
	"quiz-grading-service/internal/infra/memory"
)

type testEnv struct {
	quizzes   *app.QuizService
	questions *app.QuestionService
	store     *memory.QuestionStore
	quizID    string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	quizzes := app.NewQuizService(memory.NewQuizStore())
	store := memory.NewQuestionStore()
	engine := grading.NewEngine(memory.NewQuestionCache(store, 5*time.Minute))
	questions := app.NewQuestionService(store, quizzes, engine)

	quiz, err := quizzes.CreateQuiz(context.Background(), app.CreateQuizInput{Title: "General knowledge", NumberOfQuestions: 3})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return testEnv{quizzes: quizzes, questions: questions, store: store, quizID: quiz.ID}
}

func raw(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

func TestCreateQuestionDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.questions.CreateQuestion(ctx, app.CreateQuestionInput{
		QuizID:   env.quizID,
		Question: "  Which one is right?  ",
		Options:  []string{" Wrong ", "Right"},
		Answer:   raw(" Right "),
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	if created.Type != domain.SingleChoice || created.Points != 1 || !created.IsActive {
		t.Fatalf("expected defaults, got %+v", created)
	}
	if created.Question != "Which one is right?" || created.Options[0] != "Wrong" {
		t.Fatalf("expected trimmed fields, got %+v", created)
	}
	if created.Answer != nil {
		t.Fatalf("expected public view without answer")
	}

	stored, err := env.store.GetQuestion(ctx, created.ID)
	if err != nil {
		t.Fatalf("get stored: %v", err)
	}
	if stored.Answer != domain.SingleChoiceAnswer("Right") {
		t.Fatalf("expected stored answer, got %#v", stored.Answer)
	}
}

func TestCreateQuestionWithoutQuiz(t *testing.T) {
	env := newTestEnv(t)
	created, err := env.questions.CreateQuestion(context.Background(), app.CreateQuestionInput{
		Question: "Free-standing question",
		Type:     domain.TextBased,
		Answer:   raw("anything"),
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	if created.QuizID != "" || len(created.Options) != 0 {
		t.Fatalf("unexpected question %+v", created)
	}
}

func TestCreateQuestionRequiresExistingQuiz(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.questions.CreateQuestion(context.Background(), app.CreateQuestionInput{
		QuizID:   "6f1c2b9e-3a44-4f7e-9d1e-0c2a7b8d9e10",
		Question: "Where does this go?",
		Options:  []string{"a", "b"},
		Answer:   raw("a"),
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected quiz not found, got %v", err)
	}
}

func TestCreateQuestionShapeRules(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		name  string
		input app.CreateQuestionInput
		want  string
	}{
		{
			name:  "unknown type",
			input: app.CreateQuestionInput{Question: "Is this true?", Type: "true-false", Options: []string{"t", "f"}, Answer: raw("t")},
			want:  "type must be one of: single-choice, multiple-choice, text-based",
		},
		{
			name:  "single answer not an option",
			input: app.CreateQuestionInput{Question: "Pick one please", Options: []string{"a", "b"}, Answer: raw("c")},
			want:  "single-choice answer must be one of the provided options",
		},
		{
			name:  "too few options",
			input: app.CreateQuestionInput{Question: "Pick one please", Options: []string{"a"}, Answer: raw("a")},
			want:  "choice-based questions must have between 2-6 options",
		},
		{
			name:  "too many options",
			input: app.CreateQuestionInput{Question: "Pick one please", Options: []string{"a", "b", "c", "d", "e", "f", "g"}, Answer: raw("a")},
			want:  "choice-based questions must have between 2-6 options",
		},
		{
			name:  "blank option",
			input: app.CreateQuestionInput{Question: "Pick one please", Options: []string{"a", "  "}, Answer: raw("a")},
			want:  "options[1] is required",
		},
		{
			name:  "multiple answer not a list",
			input: app.CreateQuestionInput{Question: "Pick several", Type: domain.MultipleChoice, Options: []string{"a", "b"}, Answer: raw("a")},
			want:  "multiple-choice questions must have an array of answers",
		},
		{
			name:  "multiple answer empty",
			input: app.CreateQuestionInput{Question: "Pick several", Type: domain.MultipleChoice, Options: []string{"a", "b"}, Answer: raw([]string{})},
			want:  "multiple-choice questions must have at least one correct answer",
		},
		{
			name:  "multiple answer outside options",
			input: app.CreateQuestionInput{Question: "Pick several", Type: domain.MultipleChoice, Options: []string{"a", "b"}, Answer: raw([]string{"a", "z"})},
			want:  "all multiple-choice answers must be from the provided options",
		},
		{
			name:  "multiple answer larger than options",
			input: app.CreateQuestionInput{Question: "Pick several", Type: domain.MultipleChoice, Options: []string{"a", "b"}, Answer: raw([]string{"a", "b", "a"})},
			want:  "cannot have more answers than options",
		},
		{
			name:  "text answer too long",
			input: app.CreateQuestionInput{Question: "Write an essay", Type: domain.TextBased, Answer: raw(strings.Repeat("x", 301))},
			want:  "text-based answer must be 300 characters or less",
		},
		{
			name:  "text answer missing",
			input: app.CreateQuestionInput{Question: "Write something", Type: domain.TextBased},
			want:  "text-based questions must have a string answer",
		},
		{
			name:  "malformed quiz id",
			input: app.CreateQuestionInput{QuizID: "abc", Question: "Pick one please", Options: []string{"a", "b"}, Answer: raw("a")},
			want:  "invalid quizId format",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.questions.CreateQuestion(context.Background(), tc.input)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in %q", tc.want, err.Error())
			}
		})
	}
}

func TestQuestionsByQuizAndSubmit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	single, err := env.questions.CreateQuestion(ctx, app.CreateQuestionInput{
		QuizID: env.quizID, Question: "Pick the correct one", Options: []string{"Wrong", "Correct"}, Answer: raw("Correct"), Points: intPtr(4),
	})
	if err != nil {
		t.Fatalf("create single: %v", err)
	}
	multi, err := env.questions.CreateQuestion(ctx, app.CreateQuestionInput{
		QuizID: env.quizID, Question: "Pick A and B", Type: domain.MultipleChoice, Options: []string{"A", "B", "C"}, Answer: raw([]string{"A", "B"}),
	})
	if err != nil {
		t.Fatalf("create multi: %v", err)
	}

	public, err := env.questions.QuestionsByQuiz(ctx, env.quizID, false)
	if err != nil {
		t.Fatalf("questions by quiz: %v", err)
	}
	if len(public) != 2 || public[0].ID != single.ID || public[0].Answer != nil || public[0].Points != 4 {
		t.Fatalf("unexpected public questions %+v", public)
	}
	full, _ := env.questions.QuestionsByQuiz(ctx, env.quizID, true)
	if full[1].Answer == nil {
		t.Fatalf("expected answers when requested")
	}

	got, err := env.questions.GetQuestion(ctx, multi.ID)
	if err != nil || got.Answer != nil {
		t.Fatalf("expected public question, got %+v (%v)", got, err)
	}

	result, err := env.questions.SubmitAnswers(ctx, env.quizID, []domain.SubmittedAnswer{
		{QuestionID: single.ID, SelectedOptionID: intPtr(1)},
		{QuestionID: multi.ID, SelectedOptionIDs: []int{0, 2}},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 1 || result.Total != 2 {
		t.Fatalf("expected 1/2 regardless of points, got %+v", result)
	}
}

func intPtr(i int) *int { return &i }
