package jobfit

import (
	"context"
	"math"
	"strings"

	"github.com/careerforge/careerforge/pkg/Logger"
	"github.com/careerforge/careerforge/pkg/engine"
	"github.com/careerforge/careerforge/pkg/engine/prompt"
	"github.com/careerforge/careerforge/pkg/engine/static"
)

// Request pairs a candidate profile with the posting to match against.
type Request struct {
	Profile        engine.Profile        `json:"resume_data" binding:"required"`
	Job            engine.JobDescription `json:"job_description" binding:"required"`
	RequiredDegree string                `json:"required_degree,omitempty"`
	RequiredField  string                `json:"required_field,omitempty"`
}

// Analysis is the fit verdict plus locally computed breakdowns. The
// verdict comes from an engine (or the deterministic fallback); the
// breakdowns never touch an engine.
type Analysis struct {
	engine.JobFitAnalysis
	ExperienceLevel  string                   `json:"candidate_experience_level"`
	SkillBreakdown   map[string]SkillCategory `json:"skill_breakdown"`
	ExperienceDetail ExperienceDetail         `json:"experience_analysis"`
	EducationMatch   EducationMatch           `json:"education_match"`
}

// SkillCategory groups matched skills by technical area.
type SkillCategory struct {
	CandidateSkills  []string `json:"candidate_skills"`
	RequiredMatches  []string `json:"required_matches"`
	PreferredMatches []string `json:"preferred_matches"`
	TotalMatches     int      `json:"total_matches"`
}

// ExperienceDetail compares years of experience against the posting.
type ExperienceDetail struct {
	YearsExperience int     `json:"years_experience"`
	RequiredYears   int     `json:"required_years"`
	ExperienceGap   int     `json:"experience_gap"`
	ExperienceRatio float64 `json:"experience_ratio"`
	Assessment      string  `json:"assessment"`
}

// EducationMatch compares the candidate's education to the posting's
// requirement, if any.
type EducationMatch struct {
	CandidateDegree  string `json:"candidate_degree"`
	RequiredDegree   string `json:"required_degree"`
	MeetsRequirement bool   `json:"meets_requirement"`
	FieldMatch       bool   `json:"field_match"`
}

type Service interface {
	Analyze(ctx context.Context, req Request) (*Analysis, error)
}

type service struct {
	engines engine.Invoker
	logger  *Logger.Logger
}

func New(engines engine.Invoker, logger *Logger.Logger) Service {
	return &service{engines: engines, logger: logger}
}

// Analyze implements Service
func (s *service) Analyze(ctx context.Context, req Request) (*Analysis, error) {
	candidateCtx := static.Context(req.Profile)

	verdict := s.verdict(ctx, &candidateCtx, &req.Job)

	return &Analysis{
		JobFitAnalysis:   verdict,
		ExperienceLevel:  prompt.ExperienceLevel(req.Profile.ExperienceYears),
		SkillBreakdown:   skillBreakdown(req.Profile.Skills, req.Job.RequiredSkills, req.Job.PreferredSkills),
		ExperienceDetail: experienceDetail(req.Profile.ExperienceYears, req.Job.RequiredExperienceYears),
		EducationMatch:   educationMatch(req.Profile.Education, req.RequiredDegree, req.RequiredField),
	}, nil
}

func (s *service) verdict(ctx context.Context, candidateCtx *engine.CandidateContext, job *engine.JobDescription) engine.JobFitAnalysis {
	result, err := s.engines.Invoke(ctx, engine.OpJobFit, engine.Payload{
		Context: candidateCtx,
		Job:     job,
	})
	if err != nil {
		s.logger.Warnf("job fit analysis unavailable for %q, using skill overlap: %v", job.Title, err)
		return static.JobFit(candidateCtx, job)
	}
	return *result.JobFit
}

// skillCategories is a coarse taxonomy for the breakdown view. Skills
// outside every category still count toward the overall verdict, just
// not toward a category row.
var skillCategories = map[string][]string{
	"programming_languages": {"Python", "JavaScript", "Java", "C++", "Go", "Rust", "TypeScript"},
	"frameworks":            {"React", "Angular", "Vue.js", "Django", "Flask", "Express", "Spring"},
	"databases":             {"PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch"},
	"cloud_platforms":       {"AWS", "Azure", "GCP", "Docker", "Kubernetes"},
	"tools":                 {"Git", "Jenkins", "Terraform", "Ansible", "Webpack"},
}

func skillBreakdown(candidate, required, preferred []string) map[string]SkillCategory {
	out := make(map[string]SkillCategory, len(skillCategories))
	for name, skills := range skillCategories {
		category := toLowerSet(skills)

		inCategory := filterIn(candidate, category)
		requiredMatches := intersect(inCategory, filterIn(required, category))
		preferredMatches := intersect(inCategory, filterIn(preferred, category))

		total := make(map[string]bool)
		for _, s := range requiredMatches {
			total[s] = true
		}
		for _, s := range preferredMatches {
			total[s] = true
		}

		out[name] = SkillCategory{
			CandidateSkills:  inCategory,
			RequiredMatches:  requiredMatches,
			PreferredMatches: preferredMatches,
			TotalMatches:     len(total),
		}
	}
	return out
}

func experienceDetail(candidateYears, requiredYears int) ExperienceDetail {
	gap := requiredYears - candidateYears
	ratio := float64(candidateYears) / math.Max(float64(requiredYears), 1)

	var assessment string
	switch {
	case gap <= -2:
		assessment = "Exceeds requirements"
	case gap <= 0:
		assessment = "Meets requirements"
	case gap <= 2:
		assessment = "Below requirements"
	default:
		assessment = "Significantly below requirements"
	}

	return ExperienceDetail{
		YearsExperience: candidateYears,
		RequiredYears:   requiredYears,
		ExperienceGap:   gap,
		ExperienceRatio: math.Round(ratio*100) / 100,
		Assessment:      assessment,
	}
}

var degreeLevels = map[string]int{
	"phd": 4, "doctorate": 4,
	"master": 3, "msc": 3, "mba": 3,
	"bachelor": 2, "bsc": 2, "ba": 2,
	"associate": 1, "diploma": 1,
}

func educationMatch(candidateEducation []string, requiredDegree, requiredField string) EducationMatch {
	candidateDegree := ""
	if len(candidateEducation) > 0 {
		candidateDegree = candidateEducation[0]
	}
	if requiredDegree == "" {
		return EducationMatch{
			CandidateDegree:  orNotSpecified(candidateDegree),
			RequiredDegree:   "Not specified",
			MeetsRequirement: true,
			FieldMatch:       true,
		}
	}

	candidateLevel := degreeLevel(candidateDegree)
	requiredLevel := degreeLevel(requiredDegree)

	fieldMatch := true
	if requiredField != "" && candidateDegree != "" {
		fieldMatch = fieldMatches(strings.Join(candidateEducation, " "), requiredField)
	}

	return EducationMatch{
		CandidateDegree:  orNotSpecified(candidateDegree),
		RequiredDegree:   requiredDegree,
		MeetsRequirement: candidateLevel >= requiredLevel,
		FieldMatch:       fieldMatch,
	}
}

var relatedFields = map[string][]string{
	"computer science": {"software", "programming", "computing", "informatics"},
	"engineering":      {"technical", "technology", "science"},
	"business":         {"management", "administration", "commerce"},
	"data science":     {"statistics", "mathematics", "analytics", "data"},
}

func fieldMatches(candidate, required string) bool {
	candidateLower := strings.ToLower(candidate)
	requiredLower := strings.ToLower(required)

	for _, word := range strings.Fields(requiredLower) {
		if strings.Contains(candidateLower, word) {
			return true
		}
	}
	for field, related := range relatedFields {
		if !strings.Contains(requiredLower, field) {
			continue
		}
		for _, word := range related {
			if strings.Contains(candidateLower, word) {
				return true
			}
		}
	}
	return false
}

func degreeLevel(degree string) int {
	lower := strings.ToLower(degree)
	level := 0
	for name, n := range degreeLevels {
		if strings.Contains(lower, name) && n > level {
			level = n
		}
	}
	return level
}

func toLowerSet(items []string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, s := range items {
		out[strings.ToLower(strings.TrimSpace(s))] = true
	}
	return out
}

func filterIn(items []string, set map[string]bool) []string {
	var out []string
	for _, s := range items {
		if set[strings.ToLower(strings.TrimSpace(s))] {
			out = append(out, s)
		}
	}
	return out
}

func intersect(a, b []string) []string {
	set := toLowerSet(b)
	var out []string
	for _, s := range a {
		if set[strings.ToLower(strings.TrimSpace(s))] {
			out = append(out, s)
		}
	}
	return out
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
