package interview

import (
	"context"
	"strconv"
	"time"

	"github.com/looplab/fsm"

	"github.com/careerforge/careerforge/pkg/engine"
)

// MaxQuestions is the fixed interview length: one opener plus seven
// adaptive follow-ups.
const MaxQuestions = 8

// Session lifecycle states.
const (
	StateCreated   = "created"
	StateActive    = "active"
	StateCompleted = "completed"
)

// Session lifecycle events.
const (
	EventStart    = "start"
	EventAnswer   = "answer"
	EventComplete = "complete"
)

// Session is one mock-interview run.
type Session struct {
	ID              string
	UserID          string
	Role            string
	InterviewType   string
	State           string
	Context         engine.CandidateContext
	History         []engine.Exchange
	Answers         []AnswerRecord
	Evaluations     []engine.Evaluation
	CurrentQuestion int
	Summary         string
	TechnicalScore  float64
	CommScore       float64
	RelevanceScore  float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AnswerRecord keeps the full detail for one answered question.
type AnswerRecord struct {
	QuestionID string            `json:"question_id"`
	Question   string            `json:"question"`
	Transcript string            `json:"transcript"`
	Metrics    map[string]any    `json:"metrics,omitempty"`
	Evaluation engine.Evaluation `json:"evaluation"`
}

// Fire moves the session through its state machine. Illegal transitions
// (answering a completed session, completing twice) come back as errors
// without mutating State.
func (s *Session) Fire(ctx context.Context, event string) error {
	machine := fsm.NewFSM(s.State, fsm.Events{
		{Name: EventStart, Src: []string{StateCreated}, Dst: StateActive},
		{Name: EventAnswer, Src: []string{StateActive}, Dst: StateActive},
		{Name: EventComplete, Src: []string{StateActive}, Dst: StateCompleted},
	}, fsm.Callbacks{})

	if err := machine.Event(ctx, event); err != nil {
		// fsm reports same-state transitions (answer while active) as
		// NoTransitionError; for us that is the expected steady state.
		if _, ok := err.(fsm.NoTransitionError); ok {
			return nil
		}
		return err
	}
	s.State = machine.Current()
	return nil
}

// LastQuestion returns the most recent question text in the transcript.
func (s *Session) LastQuestion() string {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Kind == "question" {
			return s.History[i].Content
		}
	}
	return ""
}

// Questions reassembles the asked questions from the transcript.
func (s *Session) Questions() []engine.Question {
	var out []engine.Question
	for _, e := range s.History {
		if e.Kind != "question" {
			continue
		}
		out = append(out, engine.Question{
			ID:         questionID(e.QuestionNumber),
			Text:       e.Content,
			Type:       "conversational",
			Difficulty: "medium",
		})
	}
	return out
}

func questionID(n int) string {
	return "q" + strconv.Itoa(n)
}
