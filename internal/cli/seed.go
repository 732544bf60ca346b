package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"quiz-grading-service/internal/app"
	"quiz-grading-service/internal/config"
	"quiz-grading-service/internal/domain"
)

// NewSeedCmd inserts a sample quiz into the configured store.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert a sample quiz with one question of each type",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			svc, err := buildServices(ctx, cfg)
			if err != nil {
				return err
			}
			defer svc.close()

			ids, err := seedSample(ctx, svc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "quiz %s\n", ids.quizID)
			for _, id := range ids.questionIDs {
				fmt.Fprintf(cmd.OutOrStdout(), "  question %s\n", id)
			}
			return nil
		},
	}
}

type seeded struct {
	quizID      string
	questionIDs []string
}

func seedSample(ctx context.Context, svc *services) (seeded, error) {
	quiz, err := svc.quizzes.CreateQuiz(ctx, app.CreateQuizInput{
		Title:             "Sample quiz",
		Description:       "One question of each type",
		NumberOfQuestions: 3,
	})
	if err != nil {
		return seeded{}, fmt.Errorf("seed quiz: %w", err)
	}

	out := seeded{quizID: quiz.ID}
	for _, in := range sampleQuestions(quiz.ID) {
		q, err := svc.questions.CreateQuestion(ctx, in)
		if err != nil {
			return seeded{}, fmt.Errorf("seed question: %w", err)
		}
		out.questionIDs = append(out.questionIDs, q.ID)
	}
	return out, nil
}

func sampleQuestions(quizID string) []app.CreateQuestionInput {
	answer := func(v any) json.RawMessage {
		data, _ := json.Marshal(v)
		return data
	}
	return []app.CreateQuestionInput{
		{
			QuizID:   quizID,
			Question: "What is 2 + 2?",
			Type:     domain.SingleChoice,
			Options:  []string{"3", "4", "5"},
			Answer:   answer("4"),
		},
		{
			QuizID:   quizID,
			Question: "Which of these are prime numbers?",
			Type:     domain.MultipleChoice,
			Options:  []string{"2", "4", "5", "9"},
			Answer:   answer([]string{"2", "5"}),
		},
		{
			QuizID:   quizID,
			Question: "What is the capital of France?",
			Type:     domain.TextBased,
			Answer:   answer("Paris"),
		},
	}
}
