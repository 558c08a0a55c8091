package jobfit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerforge/careerforge/pkg/Logger"
	"github.com/careerforge/careerforge/pkg/engine"
)

type stubInvoker struct {
	result engine.Result
	err    error
}

func (s *stubInvoker) Invoke(ctx context.Context, op engine.Operation, p engine.Payload) (engine.Result, error) {
	if s.err != nil {
		return engine.Result{}, s.err
	}
	return s.result, nil
}

func testRequest() Request {
	return Request{
		Profile: engine.Profile{
			Role:            "Full Stack Developer",
			ExperienceYears: 4,
			Skills:          []string{"JavaScript", "React", "PostgreSQL", "Leadership"},
			Education:       []string{"BSc Computer Science"},
		},
		Job: engine.JobDescription{
			Title:                   "Senior Software Engineer",
			RequiredSkills:          []string{"JavaScript", "Python", "PostgreSQL"},
			PreferredSkills:         []string{"React", "AWS"},
			RequiredExperienceYears: 5,
		},
		RequiredDegree: "Bachelor's",
		RequiredField:  "Computer Science",
	}
}

func TestAnalyzeUsesEngineVerdict(t *testing.T) {
	invoker := &stubInvoker{result: engine.Result{JobFit: &engine.JobFitAnalysis{
		OverallFitScore: 81,
		SkillMatchPct:   66,
		RoleSuitability: "Strong fit",
		MatchedSkills:   []string{"JavaScript", "PostgreSQL"},
		MissingSkills:   []string{"Python"},
	}}}
	svc := New(invoker, Logger.NewNop())

	analysis, err := svc.Analyze(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, 81, analysis.OverallFitScore)
	assert.Equal(t, "Strong fit", analysis.RoleSuitability)
	assert.Equal(t, "Mid-Level", analysis.ExperienceLevel)
}

func TestAnalyzeFallsBackToSkillOverlap(t *testing.T) {
	invoker := &stubInvoker{err: &engine.AllUnavailableError{Op: engine.OpJobFit}}
	svc := New(invoker, Logger.NewNop())

	analysis, err := svc.Analyze(context.Background(), testRequest())
	require.NoError(t, err, "engine outage must not fail the analysis")
	// 2 of 3 required skills present.
	assert.Equal(t, 66, analysis.SkillMatchPct)
	assert.Contains(t, analysis.MissingSkills, "Python")
}

func TestSkillBreakdownCategories(t *testing.T) {
	req := testRequest()
	breakdown := skillBreakdown(req.Profile.Skills, req.Job.RequiredSkills, req.Job.PreferredSkills)

	langs := breakdown["programming_languages"]
	assert.Equal(t, []string{"JavaScript"}, langs.CandidateSkills)
	assert.Equal(t, []string{"JavaScript"}, langs.RequiredMatches)
	assert.Equal(t, 1, langs.TotalMatches)

	frameworks := breakdown["frameworks"]
	assert.Equal(t, []string{"React"}, frameworks.PreferredMatches)
	assert.Empty(t, frameworks.RequiredMatches)

	dbs := breakdown["databases"]
	assert.Equal(t, []string{"PostgreSQL"}, dbs.RequiredMatches)

	// Uncategorized skills ("Leadership") appear in no category row.
	for name, cat := range breakdown {
		assert.NotContains(t, cat.CandidateSkills, "Leadership", "category %s", name)
	}
}

func TestExperienceDetailAssessments(t *testing.T) {
	tests := []struct {
		candidate, required int
		want                string
	}{
		{8, 5, "Exceeds requirements"},
		{5, 5, "Meets requirements"},
		{4, 5, "Below requirements"},
		{1, 5, "Significantly below requirements"},
	}
	for _, tt := range tests {
		got := experienceDetail(tt.candidate, tt.required)
		assert.Equal(t, tt.want, got.Assessment, "%d vs %d required", tt.candidate, tt.required)
	}

	d := experienceDetail(3, 6)
	assert.Equal(t, 3, d.ExperienceGap)
	assert.Equal(t, 0.5, d.ExperienceRatio)
}

func TestEducationMatch(t *testing.T) {
	m := educationMatch([]string{"MSc Data Science"}, "Bachelor's", "Computer Science")
	assert.True(t, m.MeetsRequirement, "a master's satisfies a bachelor's requirement")

	m = educationMatch([]string{"Diploma in IT"}, "Master's", "")
	assert.False(t, m.MeetsRequirement)

	m = educationMatch(nil, "", "")
	assert.True(t, m.MeetsRequirement, "no requirement always matches")
	assert.Equal(t, "Not specified", m.CandidateDegree)
}

func TestFieldMatches(t *testing.T) {
	assert.True(t, fieldMatches("BSc Computer Science", "Computer Science"))
	assert.True(t, fieldMatches("BSc Software Engineering", "Computer Science"), "related field")
	assert.False(t, fieldMatches("BA History", "Computer Science"))
}
