package domain

import (
	"encoding/json"
	"time"
)

// QuestionType tags how a question is answered and graded.
type QuestionType string

const (
	SingleChoice   QuestionType = "single-choice"
	MultipleChoice QuestionType = "multiple-choice"
	TextBased      QuestionType = "text-based"
)

// Known reports whether t is one of the supported tags.
func (t QuestionType) Known() bool {
	switch t {
	case SingleChoice, MultipleChoice, TextBased:
		return true
	}
	return false
}

// Quiz is a named collection of questions.
type Quiz struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	NumberOfQuestions int       `json:"numberOfQuestions"`
	IsActive          bool      `json:"isActive"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// QuizStats summarizes every stored quiz.
type QuizStats struct {
	TotalQuizzes  int     `json:"totalQuizzes"`
	ActiveQuizzes int     `json:"activeQuizzes"`
	AvgQuestions  float64 `json:"avgQuestions"`
}

// SortField orders quiz listings.
type SortField struct {
	Field string
	Desc  bool
}

// QuizListOptions controls paging, projection and ordering of quiz listings.
type QuizListOptions struct {
	Page   int
	Limit  int // <= 0 disables paging
	Fields []string
	Sort   []SortField
}

// Question is a single gradable item. Answer's concrete variant follows Type.
type Question struct {
	ID        string       `json:"id"`
	QuizID    string       `json:"quizId"`
	Question  string       `json:"question"`
	Type      QuestionType `json:"type"`
	Options   []string     `json:"options"`
	Answer    Answer       `json:"-"`
	Points    int          `json:"points"`
	IsActive  bool         `json:"isActive"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type questionJSON struct {
	ID        string          `json:"id"`
	QuizID    string          `json:"quizId"`
	Question  string          `json:"question"`
	Type      QuestionType    `json:"type"`
	Options   []string        `json:"options"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Points    int             `json:"points"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// MarshalJSON includes the answer when one is set; use Public to strip it.
func (q Question) MarshalJSON() ([]byte, error) {
	out := questionJSON{
		ID:        q.ID,
		QuizID:    q.QuizID,
		Question:  q.Question,
		Type:      q.Type,
		Options:   q.Options,
		Points:    q.Points,
		IsActive:  q.IsActive,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
	if out.Options == nil {
		out.Options = []string{}
	}
	if q.Answer != nil {
		raw, err := MarshalAnswer(q.Answer)
		if err != nil {
			return nil, err
		}
		out.Answer = raw
	}
	return json.Marshal(out)
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var in questionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*q = Question{
		ID:        in.ID,
		QuizID:    in.QuizID,
		Question:  in.Question,
		Type:      in.Type,
		Options:   in.Options,
		Points:    in.Points,
		IsActive:  in.IsActive,
		CreatedAt: in.CreatedAt,
		UpdatedAt: in.UpdatedAt,
	}
	if len(in.Answer) > 0 && string(in.Answer) != "null" {
		answer, err := DecodeAnswer(in.Type, in.Answer)
		if err != nil {
			return err
		}
		q.Answer = answer
	}
	return nil
}

// Public returns a copy without the stored answer.
func (q Question) Public() Question {
	q.Answer = nil
	return q
}

// SubmittedAnswer is one entry of a submission. Which selector is read depends on
// the stored question's type; nil means the field was absent.
type SubmittedAnswer struct {
	QuestionID        string  `json:"questionId"`
	SelectedOptionID  *int    `json:"selectedOptionId,omitempty"`
	SelectedOptionIDs []int   `json:"selectedOptionIds,omitempty"`
	TextAnswer        *string `json:"textAnswer,omitempty"`
}

// GradingResult is the outcome of grading a submission.
type GradingResult struct {
	Score int `json:"score"`
	Total int `json:"total"`
}
