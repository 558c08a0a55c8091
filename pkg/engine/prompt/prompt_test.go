package prompt

import (
	"strings"
	"testing"

	"github.com/careerforge/careerforge/pkg/engine"
)

func TestBuildKnobsPerOperation(t *testing.T) {
	payload := engine.Payload{
		Profile: engine.Profile{Role: "Backend Engineer", Skills: []string{"Go"}},
		Context: &engine.CandidateContext{Role: "Backend Engineer", ExperienceLevel: "Senior"},
		Job:     &engine.JobDescription{Title: "Platform Engineer"},
	}

	tests := []struct {
		op          engine.Operation
		temperature float32
		maxTokens   int
	}{
		{engine.OpContextExtraction, 0.2, 500},
		{engine.OpFirstQuestion, 0.3, 300},
		{engine.OpNextQuestion, 0.5, 400},
		{engine.OpAnswerEvaluation, 0.1, 200},
		{engine.OpFinalReport, 0.2, 400},
		{engine.OpJobFit, 0.2, 400},
		{engine.OpAptitudeGeneration, 0.4, 2000},
	}
	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			spec, err := Build(tt.op, payload)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if spec.Temperature != tt.temperature {
				t.Errorf("temperature = %v, want %v", spec.Temperature, tt.temperature)
			}
			if spec.MaxTokens != tt.maxTokens {
				t.Errorf("max tokens = %d, want %d", spec.MaxTokens, tt.maxTokens)
			}
			if spec.Text == "" {
				t.Error("empty prompt text")
			}
		})
	}
}

func TestBuildUnknownOperation(t *testing.T) {
	if _, err := Build("tarot_reading", engine.Payload{}); err == nil {
		t.Fatal("expected error for unknown operation")
	}
}

func TestBuildNextQuestionUsesHistory(t *testing.T) {
	spec, err := Build(engine.OpNextQuestion, engine.Payload{
		Context:        &engine.CandidateContext{Role: "SRE"},
		QuestionNumber: 3,
		History: []engine.Exchange{
			{Kind: "question", Content: "Tell me about etcd.", QuestionNumber: 2},
			{Kind: "answer", Content: "It's a consistent key-value store.", QuestionNumber: 2},
		},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(spec.Text, "question #3 of 8") {
		t.Errorf("prompt missing question number: %q", spec.Text)
	}
	if !strings.Contains(spec.Text, "Q2: Tell me about etcd.") {
		t.Errorf("prompt missing history: %q", spec.Text)
	}
}

func TestTranscript(t *testing.T) {
	history := []engine.Exchange{
		{Kind: "question", Content: "one", QuestionNumber: 1},
		{Kind: "answer", Content: "alpha", QuestionNumber: 1},
		{Kind: "question", Content: "two", QuestionNumber: 2},
		{Kind: "answer", Content: "beta", QuestionNumber: 2},
		{Kind: "question", Content: "three", QuestionNumber: 3},
	}

	got := Transcript(history, 4)
	if strings.Contains(got, "Q1:") {
		t.Errorf("transcript should only keep the last 4 entries: %q", got)
	}
	for _, want := range []string{"A1: alpha", "Q2: two", "A2: beta", "Q3: three"} {
		if !strings.Contains(got, want) {
			t.Errorf("transcript missing %q: %q", want, got)
		}
	}

	long := strings.Repeat("x", 300)
	got = Transcript([]engine.Exchange{{Kind: "answer", Content: long, QuestionNumber: 1}}, 4)
	if !strings.Contains(got, strings.Repeat("x", 200)+"...") {
		t.Error("long answers should be truncated to 200 runes")
	}
	if strings.Contains(got, strings.Repeat("x", 201)) {
		t.Error("truncation limit exceeded")
	}
}

func TestAverageScores(t *testing.T) {
	tech, comm, rel := AverageScores(nil)
	if tech != 0 || comm != 0 || rel != 0 {
		t.Fatal("empty evaluations should average to zero")
	}

	tech, comm, rel = AverageScores([]engine.Evaluation{
		{Technical: 80, Communication: 60, Relevance: 70},
		{Technical: 90, Communication: 80, Relevance: 90},
	})
	if tech != 85 || comm != 70 || rel != 80 {
		t.Fatalf("averages = %v/%v/%v, want 85/70/80", tech, comm, rel)
	}
}

func TestExperienceLevel(t *testing.T) {
	tests := []struct {
		years int
		want  string
	}{
		{0, "Junior"},
		{1, "Junior"},
		{2, "Mid-Level"},
		{4, "Mid-Level"},
		{5, "Senior"},
		{9, "Senior"},
		{10, "Lead/Principal"},
		{25, "Lead/Principal"},
	}
	for _, tt := range tests {
		if got := ExperienceLevel(tt.years); got != tt.want {
			t.Errorf("ExperienceLevel(%d) = %q, want %q", tt.years, got, tt.want)
		}
	}
}
