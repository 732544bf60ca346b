package app

import (
	"context"

	"quiz-grading-service/internal/domain"
)

const defaultPoints = 1

// QuestionStore persists questions. ListQuestionsByQuiz returns active questions
// ordered by creation time.
type QuestionStore interface {
	CreateQuestion(ctx context.Context, q domain.Question) (domain.Question, error)
	GetQuestion(ctx context.Context, questionID string) (domain.Question, error)
	ListQuestionsByQuiz(ctx context.Context, quizID string) ([]domain.Question, error)
}

// QuizFinder checks that a quiz exists.
type QuizFinder interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// Grader scores a submission for a quiz.
type Grader interface {
	Grade(ctx context.Context, quizID string, answers []domain.SubmittedAnswer) (domain.GradingResult, error)
}

// QuestionService contains the question and submission use cases.
type QuestionService struct {
	questions QuestionStore
	quizzes   QuizFinder
	grader    Grader
}

func NewQuestionService(questions QuestionStore, quizzes QuizFinder, grader Grader) *QuestionService {
	return &QuestionService{questions: questions, quizzes: quizzes, grader: grader}
}

// CreateQuestion validates the payload, checks the owning quiz when one is
// given, and stores the question. The returned question has no answer.
func (s *QuestionService) CreateQuestion(ctx context.Context, in CreateQuestionInput) (domain.Question, error) {
	in = in.normalized()
	answer, err := validateQuestion(in)
	if err != nil {
		return domain.Question{}, err
	}

	if in.QuizID != "" {
		if _, err := s.quizzes.GetQuiz(ctx, in.QuizID); err != nil {
			return domain.Question{}, err
		}
	}

	points := defaultPoints
	if in.Points != nil {
		points = *in.Points
	}
	options := in.Options
	if options == nil {
		options = []string{}
	}

	created, err := s.questions.CreateQuestion(ctx, domain.Question{
		QuizID:   in.QuizID,
		Question: in.Question,
		Type:     in.Type,
		Options:  options,
		Answer:   answer,
		Points:   points,
		IsActive: true,
	})
	if err != nil {
		return domain.Question{}, err
	}
	return created.Public(), nil
}

// GetQuestion returns a question without its answer.
func (s *QuestionService) GetQuestion(ctx context.Context, questionID string) (domain.Question, error) {
	q, err := s.questions.GetQuestion(ctx, questionID)
	if err != nil {
		return domain.Question{}, err
	}
	return q.Public(), nil
}

// QuestionsByQuiz lists the active questions of a quiz oldest first, stripping
// answers unless includeAnswers is set.
func (s *QuestionService) QuestionsByQuiz(ctx context.Context, quizID string, includeAnswers bool) ([]domain.Question, error) {
	questions, err := s.questions.ListQuestionsByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !includeAnswers {
		for i := range questions {
			questions[i] = questions[i].Public()
		}
	}
	return questions, nil
}

// SubmitAnswers grades a submission against the quiz.
func (s *QuestionService) SubmitAnswers(ctx context.Context, quizID string, answers []domain.SubmittedAnswer) (domain.GradingResult, error) {
	return s.grader.Grade(ctx, quizID, answers)
}
