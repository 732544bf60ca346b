package cli

import (
	"context"
	"testing"

	"quiz-grading-service/internal/config"
	"quiz-grading-service/internal/domain"
)

func TestSeedSampleIsGradable(t *testing.T) {
	ctx := context.Background()
	svc, err := buildServices(ctx, config.Config{})
	if err != nil {
		t.Fatalf("build services: %v", err)
	}
	defer svc.close()
	if svc.persistent {
		t.Fatalf("expected in-memory stores without postgres url")
	}

	ids, err := seedSample(ctx, svc)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(ids.questionIDs) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(ids.questionIDs))
	}

	one, text := 1, "paris"
	res, err := svc.questions.SubmitAnswers(ctx, ids.quizID, []domain.SubmittedAnswer{
		{QuestionID: ids.questionIDs[0], SelectedOptionID: &one},
		{QuestionID: ids.questionIDs[1], SelectedOptionIDs: []int{2, 0}},
		{QuestionID: ids.questionIDs[2], TextAnswer: &text},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Score != 3 || res.Total != 3 {
		t.Fatalf("expected 3/3, got %+v", res)
	}
}

func TestMigrateRequiresPostgres(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"migrate", "--config", "../../config/config.yaml"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	t.Setenv("DATABASE_URL", "")
	if err := cmd.Execute(); err == nil || err.Error() != "postgres url not configured" {
		t.Fatalf("expected missing postgres error, got %v", err)
	}
}
