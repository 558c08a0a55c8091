package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/careerforge/careerforge/pkg/Logger"
	"github.com/careerforge/careerforge/pkg/engine"
	"github.com/careerforge/careerforge/pkg/engine/prompt"
	"github.com/careerforge/careerforge/pkg/engine/static"
)

var ErrSessionClosed = errors.New("interview session is not active")

// Answers shorter than this are rated at the floor without spending an
// engine call.
const minAnswerLen = 10

// StartRequest begins an interview for a resume-derived profile.
type StartRequest struct {
	UserID  string
	Profile engine.Profile
}

// StartResponse returns the new session and its opening question.
type StartResponse struct {
	SessionID string                  `json:"session_id"`
	Question  engine.Question         `json:"question"`
	Context   engine.CandidateContext `json:"candidate_context"`
}

// AnswerRequest submits the candidate's answer to the current question.
type AnswerRequest struct {
	SessionID  string
	QuestionID string
	Transcript string
	Metrics    map[string]any
}

// AnswerResponse carries the evaluation and, until question 8, the next
// question.
type AnswerResponse struct {
	Evaluation   engine.Evaluation `json:"evaluation"`
	NextQuestion *engine.Question  `json:"next_question,omitempty"`
	Completed    bool              `json:"completed"`
}

// SessionReport is the full end-of-interview view.
type SessionReport struct {
	SessionID     string              `json:"session_id"`
	Role          string              `json:"role"`
	InterviewType string              `json:"interview_type"`
	State         string              `json:"state"`
	Questions     []engine.Question   `json:"questions"`
	Answers       []AnswerRecord      `json:"answers"`
	Evaluations   []engine.Evaluation `json:"evaluations"`
	Report        engine.Report       `json:"report"`
	CreatedAt     string              `json:"created_at"`
}

// ReportSummary is one row of the report listing.
type ReportSummary struct {
	SessionID      string  `json:"session_id"`
	Role           string  `json:"role"`
	InterviewType  string  `json:"interview_type"`
	State          string  `json:"state"`
	CreatedAt      string  `json:"created_at"`
	OverallScore   float64 `json:"overall_score"`
	TechnicalScore float64 `json:"technical_score"`
	CommScore      float64 `json:"communication_score"`
	RelevanceScore float64 `json:"relevance_score"`
	QuestionsCount int     `json:"questions_count"`
}

// Service runs the adaptive 8-question interview loop.
type Service interface {
	Start(ctx context.Context, req StartRequest) (*StartResponse, error)
	Answer(ctx context.Context, req AnswerRequest) (*AnswerResponse, error)
	Report(ctx context.Context, sessionID string) (*SessionReport, error)
	ListReports(ctx context.Context) ([]ReportSummary, error)
}

type service struct {
	engines engine.Invoker
	repo    SessionRepository
	logger  *Logger.Logger
}

func New(engines engine.Invoker, repo SessionRepository, logger *Logger.Logger) Service {
	return &service{engines: engines, repo: repo, logger: logger}
}

// Start implements Service
func (s *service) Start(ctx context.Context, req StartRequest) (*StartResponse, error) {
	profile := req.Profile
	if profile.Role == "" {
		profile.Role = "Software Engineer"
	}
	if profile.InterviewType == "" {
		profile.InterviewType = "mixed"
	}

	candidateCtx := s.extractContext(ctx, profile)

	question := s.firstQuestion(ctx, &candidateCtx)

	session := &Session{
		ID:              uuid.New().String(),
		UserID:          req.UserID,
		Role:            profile.Role,
		InterviewType:   profile.InterviewType,
		State:           StateCreated,
		Context:         candidateCtx,
		CurrentQuestion: 1,
		History: []engine.Exchange{
			{Kind: "question", Content: question.Text, QuestionNumber: 1},
		},
	}
	if err := session.Fire(ctx, EventStart); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	if err := s.repo.Create(session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.logger.Infof("interview started: session %s, role %s, level %s",
		session.ID, candidateCtx.Role, candidateCtx.ExperienceLevel)

	return &StartResponse{
		SessionID: session.ID,
		Question:  question,
		Context:   candidateCtx,
	}, nil
}

// Answer implements Service
func (s *service) Answer(ctx context.Context, req AnswerRequest) (*AnswerResponse, error) {
	session, err := s.repo.Get(req.SessionID)
	if err != nil {
		return nil, err
	}
	if session.State != StateActive {
		return nil, ErrSessionClosed
	}

	questionText := session.LastQuestion()
	if questionText == "" {
		questionText = "Please tell me about your experience."
	}

	evaluation := s.evaluate(ctx, session, questionText, req.Transcript)

	session.History = append(session.History, engine.Exchange{
		Kind:           "answer",
		Content:        req.Transcript,
		QuestionNumber: session.CurrentQuestion,
	})
	session.Answers = append(session.Answers, AnswerRecord{
		QuestionID: req.QuestionID,
		Question:   questionText,
		Transcript: req.Transcript,
		Metrics:    req.Metrics,
		Evaluation: evaluation,
	})
	session.Evaluations = append(session.Evaluations, evaluation)

	resp := &AnswerResponse{Evaluation: evaluation}

	if session.CurrentQuestion < MaxQuestions {
		session.CurrentQuestion++
		next := s.nextQuestion(ctx, session)
		session.History = append(session.History, engine.Exchange{
			Kind:           "question",
			Content:        next.Text,
			QuestionNumber: session.CurrentQuestion,
		})
		if err := session.Fire(ctx, EventAnswer); err != nil {
			return nil, err
		}
		resp.NextQuestion = &next
	} else {
		if err := session.Fire(ctx, EventComplete); err != nil {
			return nil, err
		}
		resp.Completed = true
		s.logger.Infof("interview completed: session %s after %d questions",
			session.ID, MaxQuestions)
	}

	if err := s.repo.Update(session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return resp, nil
}

// Report implements Service
func (s *service) Report(ctx context.Context, sessionID string) (*SessionReport, error) {
	session, err := s.repo.Get(sessionID)
	if err != nil {
		return nil, err
	}

	report := s.finalReport(ctx, session)

	session.Summary = report.OverallSummary
	session.TechnicalScore = float64(report.TechnicalScore)
	session.CommScore = float64(report.CommunicationScore)
	session.RelevanceScore = float64(report.RelevanceScore)
	if err := s.repo.Update(session); err != nil {
		s.logger.Errorf("failed to persist report for session %s: %v", sessionID, err)
	}

	return &SessionReport{
		SessionID:     session.ID,
		Role:          session.Role,
		InterviewType: session.InterviewType,
		State:         session.State,
		Questions:     session.Questions(),
		Answers:       session.Answers,
		Evaluations:   session.Evaluations,
		Report:        report,
		CreatedAt:     session.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}

// ListReports implements Service
func (s *service) ListReports(ctx context.Context) ([]ReportSummary, error) {
	sessions, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	out := make([]ReportSummary, 0, len(sessions))
	for _, session := range sessions {
		tech, comm, rel := prompt.AverageScores(session.Evaluations)
		out = append(out, ReportSummary{
			SessionID:      session.ID,
			Role:           session.Role,
			InterviewType:  session.InterviewType,
			State:          session.State,
			CreatedAt:      session.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			OverallScore:   (tech + comm + rel) / 3,
			TechnicalScore: tech,
			CommScore:      comm,
			RelevanceScore: rel,
			QuestionsCount: len(session.Questions()),
		})
	}
	return out, nil
}

func (s *service) extractContext(ctx context.Context, profile engine.Profile) engine.CandidateContext {
	result, err := s.engines.Invoke(ctx, engine.OpContextExtraction, engine.Payload{Profile: profile})
	if err != nil {
		s.logger.Warnf("context extraction unavailable, using static context: %v", err)
		return static.Context(profile)
	}
	return *result.Context
}

func (s *service) firstQuestion(ctx context.Context, candidateCtx *engine.CandidateContext) engine.Question {
	result, err := s.engines.Invoke(ctx, engine.OpFirstQuestion, engine.Payload{
		Context:        candidateCtx,
		QuestionNumber: 1,
	})
	if err != nil {
		s.logger.Warnf("first question generation failed, using static opener: %v", err)
		return static.FirstQuestion(candidateCtx.Role)
	}
	return *result.Question
}

func (s *service) nextQuestion(ctx context.Context, session *Session) engine.Question {
	result, err := s.engines.Invoke(ctx, engine.OpNextQuestion, engine.Payload{
		Context:        &session.Context,
		History:        session.History,
		QuestionNumber: session.CurrentQuestion,
	})
	if err != nil {
		s.logger.Warnf("question %d generation failed for session %s, using static ladder: %v",
			session.CurrentQuestion, session.ID, err)
		return static.NextQuestion(session.CurrentQuestion, session.Role)
	}
	return *result.Question
}

func (s *service) evaluate(ctx context.Context, session *Session, questionText, answer string) engine.Evaluation {
	if len(strings.TrimSpace(answer)) < minAnswerLen {
		return static.ShortAnswerEvaluation(session.Role)
	}

	result, err := s.engines.Invoke(ctx, engine.OpAnswerEvaluation, engine.Payload{
		Context:      &session.Context,
		QuestionText: questionText,
		Answer:       answer,
	})
	if err != nil {
		s.logger.Warnf("answer evaluation failed for session %s, using static scoring: %v",
			session.ID, err)
		return static.Evaluation(session.Role, answer)
	}
	return *result.Evaluation
}

func (s *service) finalReport(ctx context.Context, session *Session) engine.Report {
	if len(session.Evaluations) == 0 {
		return static.Report(nil)
	}
	result, err := s.engines.Invoke(ctx, engine.OpFinalReport, engine.Payload{
		Context:     &session.Context,
		History:     session.History,
		Evaluations: session.Evaluations,
	})
	if err != nil {
		s.logger.Warnf("final report generation failed for session %s, using averages: %v",
			session.ID, err)
		return static.Report(session.Evaluations)
	}
	return *result.Report
}
