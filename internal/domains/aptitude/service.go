package aptitude

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careerforge/careerforge/pkg/Logger"
	"github.com/careerforge/careerforge/pkg/engine"
	"github.com/careerforge/careerforge/pkg/engine/static"
)

var ErrTestNotFound = errors.New("aptitude test not found or expired")

// DefaultTTL bounds how long a generated test stays answerable.
const DefaultTTL = 2 * time.Hour

// AnswerKeyStore holds the full question set (answers included) for a
// generated test so evaluation can match the exact questions served.
type AnswerKeyStore interface {
	Save(testID string, questions []engine.AptitudeQuestion, ttl time.Duration) error
	Get(testID string) ([]engine.AptitudeQuestion, error)
}

// GenerateRequest asks for a fresh aptitude test.
type GenerateRequest struct {
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

// GenerateResponse returns the public question set. Correct answers and
// explanations are held server-side under the test ID.
type GenerateResponse struct {
	TestID    string                    `json:"test_id"`
	ExpiresIn int                       `json:"expires_in_seconds"`
	Questions []engine.AptitudeQuestion `json:"questions"`
}

// AnswerSubmission is one candidate answer to a question of a test.
type AnswerSubmission struct {
	TestID     string `json:"test_id" binding:"required"`
	QuestionID string `json:"question_id" binding:"required"`
	UserAnswer string `json:"user_answer" binding:"required"`
}

// AnswerResult is the per-question evaluation.
type AnswerResult struct {
	QuestionID    string `json:"question_id"`
	Correct       bool   `json:"correct"`
	Score         int    `json:"score"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

type Service interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
	Evaluate(ctx context.Context, sub AnswerSubmission) (*AnswerResult, error)
	BatchEvaluate(ctx context.Context, testID string, subs []AnswerSubmission) ([]AnswerResult, error)
}

type service struct {
	engines engine.Invoker
	store   AnswerKeyStore
	logger  *Logger.Logger
	ttl     time.Duration
}

func New(engines engine.Invoker, store AnswerKeyStore, logger *Logger.Logger) Service {
	return &service{engines: engines, store: store, logger: logger, ttl: DefaultTTL}
}

// Generate implements Service
func (s *service) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}
	count := req.Count
	if count <= 0 || count > 30 {
		count = 10
	}

	questions := s.generate(ctx, difficulty, count)

	testID := uuid.New().String()
	if err := s.store.Save(testID, questions, s.ttl); err != nil {
		return nil, fmt.Errorf("store answer key: %w", err)
	}

	s.logger.Infof("aptitude test %s generated: %d questions, difficulty %s",
		testID, len(questions), difficulty)

	return &GenerateResponse{
		TestID:    testID,
		ExpiresIn: int(s.ttl.Seconds()),
		Questions: publicQuestions(questions),
	}, nil
}

// Evaluate implements Service
func (s *service) Evaluate(ctx context.Context, sub AnswerSubmission) (*AnswerResult, error) {
	questions, err := s.store.Get(sub.TestID)
	if err != nil {
		return nil, err
	}
	result := evaluateOne(questions, sub)
	return &result, nil
}

// BatchEvaluate implements Service
func (s *service) BatchEvaluate(ctx context.Context, testID string, subs []AnswerSubmission) ([]AnswerResult, error) {
	questions, err := s.store.Get(testID)
	if err != nil {
		return nil, err
	}
	out := make([]AnswerResult, 0, len(subs))
	for _, sub := range subs {
		out = append(out, evaluateOne(questions, sub))
	}
	return out, nil
}

func (s *service) generate(ctx context.Context, difficulty string, count int) []engine.AptitudeQuestion {
	result, err := s.engines.Invoke(ctx, engine.OpAptitudeGeneration, engine.Payload{
		Difficulty: difficulty,
		Count:      count,
	})
	if err != nil {
		s.logger.Warnf("aptitude generation unavailable, using seed set: %v", err)
		return static.AptitudeQuestions(difficulty)
	}
	return result.Aptitude
}

func evaluateOne(questions []engine.AptitudeQuestion, sub AnswerSubmission) AnswerResult {
	for _, q := range questions {
		if q.ID != sub.QuestionID {
			continue
		}
		correct := strings.EqualFold(strings.TrimSpace(sub.UserAnswer), strings.TrimSpace(q.CorrectAnswer))
		score := 0
		if correct {
			score = 100
		}
		return AnswerResult{
			QuestionID:    sub.QuestionID,
			Correct:       correct,
			Score:         score,
			UserAnswer:    sub.UserAnswer,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
	}
	return AnswerResult{
		QuestionID:    sub.QuestionID,
		UserAnswer:    sub.UserAnswer,
		CorrectAnswer: "Unknown",
		Explanation:   "Question not found in this test",
	}
}

func publicQuestions(questions []engine.AptitudeQuestion) []engine.AptitudeQuestion {
	out := make([]engine.AptitudeQuestion, len(questions))
	for i, q := range questions {
		q.CorrectAnswer = ""
		q.Explanation = ""
		out[i] = q
	}
	return out
}
