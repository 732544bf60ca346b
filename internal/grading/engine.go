// Package grading scores quiz submissions against stored questions.
package grading

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quiz-grading-service/internal/domain"
)

// QuestionFinder resolves a stored question by id. Missing questions are
// reported with an error matching domain.ErrNotFound.
type QuestionFinder interface {
	GetQuestion(ctx context.Context, questionID string) (domain.Question, error)
}

// Engine grades submissions. It keeps no state between calls and only reads
// from its QuestionFinder, so one Engine can serve concurrent submissions.
type Engine struct {
	questions QuestionFinder
}

func NewEngine(questions QuestionFinder) *Engine {
	return &Engine{questions: questions}
}

// tally is the accumulator of the fold over submitted answers.
type tally struct {
	score int
}

func (t tally) add(correct bool) tally {
	if correct {
		t.score++
	}
	return t
}

// Grade judges every answer in order and returns the number judged correct out
// of the number submitted. The first invalid or unresolvable answer aborts the
// whole submission; no partial result is returned.
func (e *Engine) Grade(ctx context.Context, quizID string, answers []domain.SubmittedAnswer) (domain.GradingResult, error) {
	if len(answers) == 0 {
		return domain.GradingResult{}, domain.InvalidInputf("answers are required")
	}

	acc := tally{}
	for _, submitted := range answers {
		correct, err := e.judge(ctx, quizID, submitted)
		if err != nil {
			return domain.GradingResult{}, err
		}
		acc = acc.add(correct)
	}
	return domain.GradingResult{Score: acc.score, Total: len(answers)}, nil
}

func (e *Engine) judge(ctx context.Context, quizID string, submitted domain.SubmittedAnswer) (bool, error) {
	if submitted.QuestionID == "" {
		return false, domain.InvalidInputf("each answer must have questionId")
	}

	question, err := e.questions.GetQuestion(ctx, submitted.QuestionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.NotFoundf("question not found: %s", submitted.QuestionID)
		}
		return false, fmt.Errorf("load question %s: %w", submitted.QuestionID, err)
	}

	if question.QuizID != quizID {
		return false, domain.InvalidInputf("question %s does not belong to quiz %s", submitted.QuestionID, quizID)
	}

	switch question.Type {
	case domain.TextBased:
		return gradeText(question, submitted)
	case domain.MultipleChoice:
		return gradeMultipleChoice(question, submitted)
	default:
		// single-choice, and any tag we do not recognize, use single-choice rules.
		return gradeSingleChoice(question, submitted)
	}
}

func gradeText(q domain.Question, submitted domain.SubmittedAnswer) (bool, error) {
	if submitted.TextAnswer == nil {
		return false, domain.InvalidInputf("text answer required for question %s", q.ID)
	}
	expected, ok := answerText(q.Answer)
	if !ok {
		return false, nil
	}
	return normalizeText(*submitted.TextAnswer) == normalizeText(expected), nil
}

func gradeSingleChoice(q domain.Question, submitted domain.SubmittedAnswer) (bool, error) {
	if submitted.SelectedOptionID == nil {
		return false, domain.InvalidInputf("selected option ID required for question %s", q.ID)
	}
	chosen, err := optionAt(q, *submitted.SelectedOptionID)
	if err != nil {
		return false, err
	}
	expected, ok := answerText(q.Answer)
	return ok && chosen == expected, nil
}

func gradeMultipleChoice(q domain.Question, submitted domain.SubmittedAnswer) (bool, error) {
	if submitted.SelectedOptionIDs == nil {
		return false, domain.InvalidInputf("selected option IDs array required for question %s", q.ID)
	}
	chosen := make(map[string]struct{}, len(submitted.SelectedOptionIDs))
	for _, idx := range submitted.SelectedOptionIDs {
		opt, err := optionAt(q, idx)
		if err != nil {
			return false, err
		}
		chosen[opt] = struct{}{}
	}

	expected := answerSet(q.Answer)
	if len(chosen) != len(expected) {
		return false, nil
	}
	for opt := range chosen {
		if _, ok := expected[opt]; !ok {
			return false, nil
		}
	}
	return true, nil
}

func optionAt(q domain.Question, idx int) (string, error) {
	if idx < 0 || idx >= len(q.Options) {
		return "", domain.InvalidInputf("invalid option index %d for question %s", idx, q.ID)
	}
	return q.Options[idx], nil
}

// answerText returns the stored answer when it has a single-string shape.
func answerText(a domain.Answer) (string, bool) {
	switch v := a.(type) {
	case domain.TextAnswer:
		return string(v), true
	case domain.SingleChoiceAnswer:
		return string(v), true
	default:
		return "", false
	}
}

// answerSet coerces the stored answer into a set of correct options.
func answerSet(a domain.Answer) map[string]struct{} {
	switch v := a.(type) {
	case domain.MultipleChoiceAnswer:
		return v.Set()
	case domain.SingleChoiceAnswer:
		return map[string]struct{}{string(v): {}}
	case domain.TextAnswer:
		return map[string]struct{}{string(v): {}}
	default:
		return map[string]struct{}{}
	}
}

func normalizeText(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}
