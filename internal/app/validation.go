package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"quiz-grading-service/internal/domain"
)

const maxTextAnswerLength = 300

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// CreateQuizInput is the payload accepted by CreateQuiz.
type CreateQuizInput struct {
	Title             string `json:"title" validate:"required,min=3,max=200"`
	Description       string `json:"description" validate:"max=500"`
	NumberOfQuestions int    `json:"numberOfQuestions" validate:"min=1,max=100"`
}

// CreateQuestionInput is the payload accepted by CreateQuestion. Answer is kept
// raw because its shape depends on Type.
type CreateQuestionInput struct {
	QuizID   string              `json:"quizId" validate:"omitempty,uuid"`
	Question string              `json:"question" validate:"required,min=5,max=500"`
	Type     domain.QuestionType `json:"type" validate:"omitempty,oneof=single-choice multiple-choice text-based"`
	Options  []string            `json:"options" validate:"omitempty,dive,required"`
	Answer   json.RawMessage     `json:"answer"`
	Points   *int                `json:"points" validate:"omitempty,min=1,max=10"`
}

func (in CreateQuizInput) normalized() CreateQuizInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

func (in CreateQuestionInput) normalized() CreateQuestionInput {
	in.QuizID = strings.TrimSpace(in.QuizID)
	in.Question = strings.TrimSpace(in.Question)
	if in.Type == "" {
		in.Type = domain.SingleChoice
	}
	if in.Options != nil {
		opts := make([]string, len(in.Options))
		for i, opt := range in.Options {
			opts[i] = strings.TrimSpace(opt)
		}
		in.Options = opts
	}
	return in
}

func validateQuiz(in CreateQuizInput) error {
	if problems := structProblems(in); len(problems) > 0 {
		return &domain.ValidationError{Problems: problems}
	}
	return nil
}

// validateQuestion checks field rules and the cross-field type/options/answer
// rules, returning the decoded answer when everything holds.
func validateQuestion(in CreateQuestionInput) (domain.Answer, error) {
	problems := structProblems(in)

	var answer domain.Answer
	if in.Type.Known() {
		var shape []string
		answer, shape = checkAnswerShape(in)
		problems = append(problems, shape...)
	}
	if len(problems) > 0 {
		return nil, &domain.ValidationError{Problems: problems}
	}
	return answer, nil
}

func checkAnswerShape(in CreateQuestionInput) (domain.Answer, []string) {
	var problems []string

	if in.Type == domain.TextBased {
		if len(in.Options) > 0 {
			problems = append(problems, "text-based questions should not have options")
		}
		var text string
		if err := json.Unmarshal(in.Answer, &text); err != nil || len(in.Answer) == 0 {
			return nil, append(problems, "text-based questions must have a string answer")
		}
		text = strings.TrimSpace(text)
		switch {
		case text == "":
			problems = append(problems, "text-based questions cannot have an empty answer")
		case len([]rune(text)) > maxTextAnswerLength:
			problems = append(problems, fmt.Sprintf("text-based answer must be %d characters or less", maxTextAnswerLength))
		}
		return domain.TextAnswer(text), problems
	}

	if len(in.Options) < 2 || len(in.Options) > 6 {
		problems = append(problems, "choice-based questions must have between 2-6 options")
	}

	if in.Type == domain.SingleChoice {
		var choice string
		if err := json.Unmarshal(in.Answer, &choice); err != nil || strings.TrimSpace(choice) == "" {
			return nil, append(problems, "single-choice questions must have a string answer")
		}
		choice = strings.TrimSpace(choice)
		if !contains(in.Options, choice) {
			problems = append(problems, "single-choice answer must be one of the provided options")
		}
		return domain.SingleChoiceAnswer(choice), problems
	}

	var choices []string
	if err := json.Unmarshal(in.Answer, &choices); err != nil || choices == nil {
		return nil, append(problems, "multiple-choice questions must have an array of answers")
	}
	if len(choices) == 0 {
		return nil, append(problems, "multiple-choice questions must have at least one correct answer")
	}
	for i := range choices {
		choices[i] = strings.TrimSpace(choices[i])
	}
	for _, c := range choices {
		if !contains(in.Options, c) {
			problems = append(problems, "all multiple-choice answers must be from the provided options")
			break
		}
	}
	if len(choices) > len(in.Options) {
		problems = append(problems, "cannot have more answers than options")
	}
	return domain.MultipleChoiceAnswer(choices), problems
}

func structProblems(s any) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describe(fe))
	}
	return problems
}

func describe(fe validator.FieldError) string {
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", fe.Field(), fe.Param(), unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", fe.Field(), fe.Param(), unit)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "uuid":
		return "invalid " + fe.Field() + " format"
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
