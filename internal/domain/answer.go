package domain

import (
	"encoding/json"
	"fmt"
)

// Answer is the stored correct answer of a question. The variant is chosen by the
// question type: TextAnswer, SingleChoiceAnswer or MultipleChoiceAnswer.
type Answer interface {
	answer()
}

// TextAnswer is compared case-insensitively after trimming.
type TextAnswer string

// SingleChoiceAnswer must equal one of the question options.
type SingleChoiceAnswer string

// MultipleChoiceAnswer is the set of correct options.
type MultipleChoiceAnswer []string

func (TextAnswer) answer()           {}
func (SingleChoiceAnswer) answer()   {}
func (MultipleChoiceAnswer) answer() {}

// Set returns the distinct options of the answer.
func (a MultipleChoiceAnswer) Set() map[string]struct{} {
	set := make(map[string]struct{}, len(a))
	for _, opt := range a {
		set[opt] = struct{}{}
	}
	return set
}

// DecodeAnswer reads a stored answer for a question of type t. Multiple-choice
// answers stored as a single string are coerced into a one-element set. Unknown
// types fall back to the single-choice shape, or multiple-choice if stored as a list.
func DecodeAnswer(t QuestionType, raw json.RawMessage) (Answer, error) {
	switch t {
	case TextBased:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decode text answer: %w", err)
		}
		return TextAnswer(s), nil
	case MultipleChoice:
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			return MultipleChoiceAnswer(list), nil
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decode multiple-choice answer: %w", err)
		}
		return MultipleChoiceAnswer{s}, nil
	default:
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return SingleChoiceAnswer(s), nil
		}
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("decode answer: %w", err)
		}
		return MultipleChoiceAnswer(list), nil
	}
}

// MarshalAnswer encodes an answer in its stored JSON shape.
func MarshalAnswer(a Answer) (json.RawMessage, error) {
	switch v := a.(type) {
	case TextAnswer:
		return json.Marshal(string(v))
	case SingleChoiceAnswer:
		return json.Marshal(string(v))
	case MultipleChoiceAnswer:
		list := []string(v)
		if list == nil {
			list = []string{}
		}
		return json.Marshal(list)
	case nil:
		return json.RawMessage("null"), nil
	default:
		return nil, fmt.Errorf("unsupported answer variant %T", a)
	}
}
