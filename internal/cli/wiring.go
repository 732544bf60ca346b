package cli

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"quiz-grading-service/internal/app"
	"quiz-grading-service/internal/config"
	"quiz-grading-service/internal/grading"
	"quiz-grading-service/internal/infra/memory"
	"quiz-grading-service/internal/infra/postgres"
	rediscache "quiz-grading-service/internal/infra/redis"
)

// services bundles the use cases built from config.
type services struct {
	quizzes   *app.QuizService
	questions *app.QuestionService
	// persistent is false when backed by the in-memory stores.
	persistent bool
	close      func()
}

func buildServices(ctx context.Context, cfg config.Config) (*services, error) {
	var (
		quizStore     app.QuizStore
		questionStore app.QuestionStore
		closers       []func()
	)

	if cfg.Postgres.URL != "" {
		db := postgres.OpenBun(cfg.Postgres.URL)
		closers = append(closers, func() { _ = db.Close() })
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}

		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			db.Close()
			return nil, err
		}
		closers = append(closers, pool.Close)

		quizStore = postgres.NewQuizStore(db)
		questionStore = postgres.NewQuestionStore(pool)
	} else {
		quizStore = memory.NewQuizStore()
		questionStore = memory.NewQuestionStore()
	}

	cacheTTL := config.TTLDuration(cfg.Cache.TTL, 10*time.Minute)
	var finder grading.QuestionFinder
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, func() { _ = client.Close() })
		finder = rediscache.NewQuestionCache(client, questionStore, cacheTTL)
	} else {
		finder = memory.NewQuestionCache(questionStore, cacheTTL)
	}

	quizzes := app.NewQuizService(quizStore)
	questions := app.NewQuestionService(questionStore, quizzes, grading.NewEngine(finder))
	return &services{
		quizzes:    quizzes,
		questions:  questions,
		persistent: cfg.Postgres.URL != "",
		close: func() {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		},
	}, nil
}
