package aptitude

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"

	"github.com/careerforge/careerforge/internal/domains/aptitude"
	"github.com/careerforge/careerforge/pkg/engine"
)

// RedisAnswerKeyStore keeps each generated test's full question set
// under a TTL'd key so evaluation sees the exact questions served.
type RedisAnswerKeyStore struct {
	rc *redis.Client
}

func NewRedisAnswerKeyStore(rc *redis.Client) aptitude.AnswerKeyStore {
	return &RedisAnswerKeyStore{rc: rc}
}

func testKey(testID string) string {
	return fmt.Sprintf("aptitude:test:%s", testID)
}

// Save implements aptitude.AnswerKeyStore
func (s *RedisAnswerKeyStore) Save(testID string, questions []engine.AptitudeQuestion, ttl time.Duration) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("marshal answer key: %w", err)
	}
	if err := s.rc.Set(testKey(testID), data, ttl).Err(); err != nil {
		return fmt.Errorf("store answer key: %w", err)
	}
	return nil
}

// Get implements aptitude.AnswerKeyStore
func (s *RedisAnswerKeyStore) Get(testID string) ([]engine.AptitudeQuestion, error) {
	raw, err := s.rc.Get(testKey(testID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, aptitude.ErrTestNotFound
		}
		return nil, fmt.Errorf("fetch answer key: %w", err)
	}
	var questions []engine.AptitudeQuestion
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return nil, fmt.Errorf("decode answer key: %w", err)
	}
	return questions, nil
}
