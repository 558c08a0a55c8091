package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/careerforge/careerforge/pkg/engine"
)

// ErrNoJSON is returned when the model output contains no JSON value at
// all. Adapters surface it as a response-invalid failure.
var ErrNoJSON = errors.New("no JSON found in model output")

// ExtractObject slices the first '{' to the last '}' out of raw model
// output. Models routinely wrap the JSON in prose or code fences.
func ExtractObject(raw string) ([]byte, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, ErrNoJSON
	}
	return []byte(raw[start : end+1]), nil
}

// ExtractArray slices the first '[' to the last ']' out of raw model output.
func ExtractArray(raw string) ([]byte, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil, ErrNoJSON
	}
	return []byte(raw[start : end+1]), nil
}

// ParseResult decodes the raw model output for op into the result shape
// callers expect. A parse failure is returned as an error, never coerced
// into a default result.
func ParseResult(op engine.Operation, p engine.Payload, raw string, id engine.ID) (engine.Result, error) {
	now := time.Now()

	switch op {
	case engine.OpContextExtraction:
		data, err := ExtractObject(raw)
		if err != nil {
			return engine.Result{}, err
		}
		var domain engine.DomainAnalysis
		if err := json.Unmarshal(data, &domain); err != nil {
			return engine.Result{}, fmt.Errorf("decode domain analysis: %w", err)
		}
		return engine.Result{Context: &engine.CandidateContext{
			Role:            p.Profile.Role,
			InterviewType:   p.Profile.InterviewType,
			ExperienceYears: p.Profile.ExperienceYears,
			ExperienceLevel: ExperienceLevel(p.Profile.ExperienceYears),
			Skills:          p.Profile.Skills,
			Domain:          domain,
			Engine:          id,
			CreatedAt:       now,
		}}, nil

	case engine.OpFirstQuestion, engine.OpNextQuestion:
		data, err := ExtractObject(raw)
		if err != nil {
			return engine.Result{}, err
		}
		var q engine.Question
		if err := json.Unmarshal(data, &q); err != nil {
			return engine.Result{}, fmt.Errorf("decode question: %w", err)
		}
		if strings.TrimSpace(q.Text) == "" {
			return engine.Result{}, fmt.Errorf("question text missing in model output")
		}
		if q.ID == "" {
			q.ID = fmt.Sprintf("q%d", max(p.QuestionNumber, 1))
		}
		q.CreatedAt = now
		return engine.Result{Question: &q}, nil

	case engine.OpAnswerEvaluation:
		data, err := ExtractObject(raw)
		if err != nil {
			return engine.Result{}, err
		}
		var e engine.Evaluation
		if err := json.Unmarshal(data, &e); err != nil {
			return engine.Result{}, fmt.Errorf("decode evaluation: %w", err)
		}
		e.Technical = clampScore(e.Technical)
		e.Communication = clampScore(e.Communication)
		e.Relevance = clampScore(e.Relevance)
		e.CreatedAt = now
		return engine.Result{Evaluation: &e}, nil

	case engine.OpFinalReport:
		data, err := ExtractObject(raw)
		if err != nil {
			return engine.Result{}, err
		}
		var r engine.Report
		if err := json.Unmarshal(data, &r); err != nil {
			return engine.Result{}, fmt.Errorf("decode report: %w", err)
		}
		return engine.Result{Report: &r}, nil

	case engine.OpJobFit:
		data, err := ExtractObject(raw)
		if err != nil {
			return engine.Result{}, err
		}
		var fit engine.JobFitAnalysis
		if err := json.Unmarshal(data, &fit); err != nil {
			return engine.Result{}, fmt.Errorf("decode job fit analysis: %w", err)
		}
		fit.OverallFitScore = clampScore(fit.OverallFitScore)
		fit.SkillMatchPct = clampScore(fit.SkillMatchPct)
		fit.ExperienceMatchPct = clampScore(fit.ExperienceMatchPct)
		return engine.Result{JobFit: &fit}, nil

	case engine.OpAptitudeGeneration:
		data, err := ExtractArray(raw)
		if err != nil {
			return engine.Result{}, err
		}
		var questions []engine.AptitudeQuestion
		if err := json.Unmarshal(data, &questions); err != nil {
			return engine.Result{}, fmt.Errorf("decode aptitude questions: %w", err)
		}
		if len(questions) == 0 {
			return engine.Result{}, fmt.Errorf("empty aptitude question set in model output")
		}
		for i := range questions {
			questions[i].ID = fmt.Sprintf("apt_%d", i+1)
			if questions[i].Difficulty == "" {
				questions[i].Difficulty = p.Difficulty
			}
		}
		return engine.Result{Aptitude: questions}, nil
	}

	return engine.Result{}, fmt.Errorf("no parser for operation %q", op)
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
