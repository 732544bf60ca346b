package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput marks malformed requests and submissions.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks references to entities that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrQuizNotFound indicates the quiz could not be loaded.
	ErrQuizNotFound = &Error{Kind: ErrNotFound, Message: "quiz not found"}
	// ErrQuestionNotFound indicates the question could not be loaded.
	ErrQuestionNotFound = &Error{Kind: ErrNotFound, Message: "question not found"}
)

// Error carries a user-facing message; errors.Is matches on Kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// InvalidInputf builds an ErrInvalidInput error with a formatted message.
func InvalidInputf(format string, args ...any) error {
	return &Error{Kind: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds an ErrNotFound error with a formatted message.
func NotFoundf(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// ValidationError aggregates field problems found while validating a create request.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string { return strings.Join(e.Problems, ", ") }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
