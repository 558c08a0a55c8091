package prompt

import (
	"errors"
	"testing"

	"github.com/careerforge/careerforge/pkg/engine"
)

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, false},
		{"prose wrapped", "Sure! Here you go:\n```json\n{\"a\":1}\n```\nHope it helps.", `{"a":1}`, false},
		{"nested braces", `prefix {"outer":{"inner":2}} suffix`, `{"outer":{"inner":2}}`, false},
		{"no json", "I could not produce an answer.", "", true},
		{"closing before opening", "} {", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractObject(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrNoJSON) {
					t.Fatalf("expected ErrNoJSON, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractObject: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractArray(t *testing.T) {
	got, err := ExtractArray("here: [1,2,3] done")
	if err != nil {
		t.Fatalf("ExtractArray: %v", err)
	}
	if string(got) != "[1,2,3]" {
		t.Errorf("got %q", got)
	}
	if _, err := ExtractArray("nothing here"); !errors.Is(err, ErrNoJSON) {
		t.Fatalf("expected ErrNoJSON, got %v", err)
	}
}

func TestParseResultContextExtraction(t *testing.T) {
	payload := engine.Payload{Profile: engine.Profile{
		Role:            "Data Engineer",
		InterviewType:   "technical",
		ExperienceYears: 6,
		Skills:          []string{"Python", "Spark"},
	}}
	raw := `{"primary_domain":"data","technical_depth":"advanced","key_technologies":["Spark"]}`

	result, err := ParseResult(engine.OpContextExtraction, payload, raw, engine.Cloud)
	if err != nil {
		t.Fatalf("ParseResult: %v", err)
	}
	ctx := result.Context
	if ctx.Role != "Data Engineer" || ctx.ExperienceYears != 6 {
		t.Fatalf("profile fields not carried through: %+v", ctx)
	}
	if ctx.ExperienceLevel != "Senior" {
		t.Errorf("experience level = %q, want Senior", ctx.ExperienceLevel)
	}
	if ctx.Domain.PrimaryDomain != "data" {
		t.Errorf("domain = %q", ctx.Domain.PrimaryDomain)
	}
	if ctx.Engine != engine.Cloud {
		t.Errorf("engine = %q, want %q", ctx.Engine, engine.Cloud)
	}
}

func TestParseResultQuestion(t *testing.T) {
	raw := `{"text":"Walk me through a recent project.","type":"introductory","difficulty":"easy"}`
	result, err := ParseResult(engine.OpNextQuestion, engine.Payload{QuestionNumber: 4}, raw, engine.Local)
	if err != nil {
		t.Fatalf("ParseResult: %v", err)
	}
	if result.Question.ID != "q4" {
		t.Errorf("defaulted ID = %q, want q4", result.Question.ID)
	}

	// Missing text is a hard failure, not a defaulted question.
	if _, err := ParseResult(engine.OpFirstQuestion, engine.Payload{}, `{"id":"q1","text":"  "}`, engine.Local); err == nil {
		t.Fatal("expected error for blank question text")
	}
}

func TestParseResultEvaluationClampsScores(t *testing.T) {
	raw := `{"technical":150,"communication":-20,"relevance":85,"expected_answer":"specifics"}`
	result, err := ParseResult(engine.OpAnswerEvaluation, engine.Payload{}, raw, engine.Local)
	if err != nil {
		t.Fatalf("ParseResult: %v", err)
	}
	e := result.Evaluation
	if e.Technical != 100 || e.Communication != 0 || e.Relevance != 85 {
		t.Fatalf("clamped scores = %d/%d/%d, want 100/0/85", e.Technical, e.Communication, e.Relevance)
	}
}

func TestParseResultJobFit(t *testing.T) {
	raw := `{"overall_fit_score":72,"skill_match_percentage":240,"experience_match_percentage":90,"role_suitability":"Good fit","missing_skills":["Kafka"],"matched_skills":["Go"]}`
	result, err := ParseResult(engine.OpJobFit, engine.Payload{}, raw, engine.Cloud)
	if err != nil {
		t.Fatalf("ParseResult: %v", err)
	}
	fit := result.JobFit
	if fit.SkillMatchPct != 100 {
		t.Errorf("skill match = %d, want clamped 100", fit.SkillMatchPct)
	}
	if fit.OverallFitScore != 72 || len(fit.MissingSkills) != 1 {
		t.Errorf("unexpected fit: %+v", fit)
	}
}

func TestParseResultAptitude(t *testing.T) {
	raw := `[
		{"question":"2+2?","options":["A) 3","B) 4","C) 5","D) 6"],"correct_answer":"B) 4","explanation":"arithmetic","type":"quantitative"},
		{"id":"weird-id","question":"Next in 1,1,2,3,5?","options":["A) 6","B) 7","C) 8","D) 9"],"correct_answer":"C) 8","explanation":"fibonacci","type":"pattern"}
	]`
	result, err := ParseResult(engine.OpAptitudeGeneration, engine.Payload{Difficulty: "hard"}, raw, engine.Local)
	if err != nil {
		t.Fatalf("ParseResult: %v", err)
	}
	qs := result.Aptitude
	if len(qs) != 2 {
		t.Fatalf("questions = %d, want 2", len(qs))
	}
	// IDs are renumbered to a stable scheme regardless of model output.
	if qs[0].ID != "apt_1" || qs[1].ID != "apt_2" {
		t.Errorf("ids = %q, %q", qs[0].ID, qs[1].ID)
	}
	if qs[0].Difficulty != "hard" {
		t.Errorf("difficulty not defaulted: %q", qs[0].Difficulty)
	}

	if _, err := ParseResult(engine.OpAptitudeGeneration, engine.Payload{}, `[]`, engine.Local); err == nil {
		t.Fatal("expected error for empty question set")
	}
}

func TestParseResultMalformedJSON(t *testing.T) {
	if _, err := ParseResult(engine.OpAnswerEvaluation, engine.Payload{}, `{"technical": "high"}`, engine.Local); err == nil {
		t.Fatal("expected decode error for non-numeric score")
	}
}
