package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quiz-grading-service/internal/domain"
)

// QuestionLoader fetches a question from its backing store.
type QuestionLoader interface {
	GetQuestion(ctx context.Context, questionID string) (domain.Question, error)
}

// QuestionCache caches full question documents (answer included) in Redis and
// falls back to a loader on cache miss.
// Questions are stored as JSON: SET question:{questionID} {json} EX ttl
type QuestionCache struct {
	client *redis.Client
	loader QuestionLoader
	ttl    time.Duration
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewQuestionCache(client *redis.Client, loader QuestionLoader, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuestionCache) GetQuestion(ctx context.Context, questionID string) (domain.Question, error) {
	if q, ok := c.cached(ctx, questionID); ok {
		return q, nil
	}

	result, err, _ := c.sf.Do(questionID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if q, ok := c.cached(ctx, questionID); ok {
			return q, nil
		}

		q, err := c.loader.GetQuestion(ctx, questionID)
		if err != nil {
			return domain.Question{}, err
		}

		data, err := json.Marshal(q)
		if err != nil {
			return q, nil
		}
		if err := c.client.Set(ctx, c.key(questionID), data, c.ttlWithJitter()).Err(); err != nil {
			log.Printf("cache question %s: %v", questionID, err)
		}
		return q, nil
	})
	if err != nil {
		return domain.Question{}, err
	}
	return result.(domain.Question), nil
}

// cached reads a question from Redis. Any Redis failure is treated as a miss.
func (c *QuestionCache) cached(ctx context.Context, questionID string) (domain.Question, bool) {
	data, err := c.client.Get(ctx, c.key(questionID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("read cached question %s: %v", questionID, err)
		}
		return domain.Question{}, false
	}
	var q domain.Question
	if err := json.Unmarshal(data, &q); err != nil {
		return domain.Question{}, false
	}
	return q, true
}

func (c *QuestionCache) key(questionID string) string {
	return "question:" + questionID
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
