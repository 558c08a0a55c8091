package static

import (
	"strings"
	"testing"

	"github.com/careerforge/careerforge/pkg/engine"
)

func TestNextQuestionLadder(t *testing.T) {
	q := NextQuestion(2, "DevOps Engineer")
	if q.ID != "q2" {
		t.Errorf("id = %q", q.ID)
	}
	if !strings.Contains(q.Text, "DevOps Engineer") {
		t.Errorf("role not substituted: %q", q.Text)
	}

	for n := 3; n <= 8; n++ {
		q := NextQuestion(n, "ignored")
		if q.Text == "" || strings.Contains(q.Text, "%s") {
			t.Errorf("question %d malformed: %q", n, q.Text)
		}
	}

	if q := NextQuestion(12, "x"); q.Text != "Tell me more about your experience." {
		t.Errorf("out-of-ladder fallback = %q", q.Text)
	}
}

func TestEvaluationScoresByLength(t *testing.T) {
	short := Evaluation("SRE", "yes definitely")
	if short.Technical != 40 {
		t.Errorf("floor = %d, want 40", short.Technical)
	}

	long := Evaluation("SRE", strings.Repeat("word ", 60))
	if long.Technical != 85 {
		t.Errorf("ceiling = %d, want 85", long.Technical)
	}

	mid := Evaluation("SRE", strings.Repeat("word ", 30))
	if mid.Technical != 60 {
		t.Errorf("mid = %d, want 60", mid.Technical)
	}
}

func TestShortAnswerEvaluation(t *testing.T) {
	e := ShortAnswerEvaluation("Backend Engineer")
	if e.Technical != 20 || e.Communication != 20 || e.Relevance != 20 {
		t.Fatalf("scores = %d/%d/%d, want all 20", e.Technical, e.Communication, e.Relevance)
	}
}

func TestReportAverages(t *testing.T) {
	r := Report(nil)
	if r.OverallSummary == "" || r.TechnicalScore != 0 {
		t.Fatalf("empty report malformed: %+v", r)
	}

	r = Report([]engine.Evaluation{
		{Technical: 80, Communication: 70, Relevance: 60},
		{Technical: 60, Communication: 70, Relevance: 80},
	})
	if r.TechnicalScore != 70 || r.CommunicationScore != 70 || r.RelevanceScore != 70 {
		t.Fatalf("averages = %d/%d/%d, want 70/70/70", r.TechnicalScore, r.CommunicationScore, r.RelevanceScore)
	}
	if len(r.Recommendations) == 0 {
		t.Error("expected recommendations")
	}
}

func TestJobFit(t *testing.T) {
	ctx := &engine.CandidateContext{
		Skills:          []string{"Go", "Docker", "PostgreSQL"},
		ExperienceYears: 3,
	}
	job := &engine.JobDescription{
		RequiredSkills:          []string{"go", "Kubernetes"},
		RequiredExperienceYears: 6,
	}

	fit := JobFit(ctx, job)
	if fit.SkillMatchPct != 50 {
		t.Errorf("skill match = %d, want 50", fit.SkillMatchPct)
	}
	if fit.ExperienceMatchPct != 50 {
		t.Errorf("experience match = %d, want 50", fit.ExperienceMatchPct)
	}
	if len(fit.MatchedSkills) != 1 || fit.MatchedSkills[0] != "go" {
		t.Errorf("matched = %v", fit.MatchedSkills)
	}
	if len(fit.MissingSkills) != 1 || fit.MissingSkills[0] != "Kubernetes" {
		t.Errorf("missing = %v", fit.MissingSkills)
	}

	// Experience beyond the requirement caps at 100.
	over := JobFit(&engine.CandidateContext{ExperienceYears: 20}, &engine.JobDescription{RequiredExperienceYears: 5})
	if over.ExperienceMatchPct != 100 {
		t.Errorf("capped experience match = %d, want 100", over.ExperienceMatchPct)
	}

	// No listed requirements fall back to neutral defaults.
	neutral := JobFit(&engine.CandidateContext{}, &engine.JobDescription{})
	if neutral.SkillMatchPct != 50 || neutral.ExperienceMatchPct != 75 {
		t.Errorf("defaults = %d/%d, want 50/75", neutral.SkillMatchPct, neutral.ExperienceMatchPct)
	}
}

func TestContextDefaults(t *testing.T) {
	ctx := Context(engine.Profile{
		Role:            "Frontend Developer",
		ExperienceYears: 7,
		Skills:          []string{"React", "TypeScript", "CSS", "GraphQL"},
	})
	if ctx.ExperienceLevel != "Senior" {
		t.Errorf("level = %q", ctx.ExperienceLevel)
	}
	if ctx.Domain.PrimaryDomain != "fullstack" {
		t.Errorf("domain = %q", ctx.Domain.PrimaryDomain)
	}
	if len(ctx.Domain.KeyTechnologies) != 3 {
		t.Errorf("key technologies = %v, want first 3 skills", ctx.Domain.KeyTechnologies)
	}
}
