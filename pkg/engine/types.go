package engine

import (
	"fmt"
	"strings"
	"time"
)

// ID identifies one of the interchangeable AI engines. The wire values
// match what the admin API and the config file use.
type ID string

const (
	// Local is the Ollama-backed engine running next to the service.
	Local ID = "ollama"
	// Cloud is the Gemini-backed engine reached over the public API.
	Cloud ID = "gemini"
)

// ParseID maps a user-supplied engine name onto a known ID.
func ParseID(s string) (ID, error) {
	switch ID(strings.ToLower(strings.TrimSpace(s))) {
	case Local:
		return Local, nil
	case Cloud:
		return Cloud, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEngine, s)
}

// Operation is the logical unit of work a caller asks an engine to do.
// Adapters translate it into backend-specific prompts and response parsing.
type Operation string

const (
	OpContextExtraction  Operation = "context_extraction"
	OpFirstQuestion      Operation = "first_question"
	OpNextQuestion       Operation = "next_question"
	OpAnswerEvaluation   Operation = "answer_evaluation"
	OpFinalReport        Operation = "final_report"
	OpJobFit             Operation = "job_fit_analysis"
	OpAptitudeGeneration Operation = "aptitude_generation"
)

// Payload carries the caller-supplied inputs for an operation. The router
// never inspects it; each adapter reads the fields its operation needs.
type Payload struct {
	Profile        Profile
	Context        *CandidateContext
	History        []Exchange
	QuestionNumber int
	QuestionText   string
	Answer         string
	Evaluations    []Evaluation
	Job            *JobDescription
	Difficulty     string
	Count          int
}

// Result is the engine-produced output. Exactly one field is populated,
// depending on the operation. Opaque to the router.
type Result struct {
	Context    *CandidateContext
	Question   *Question
	Evaluation *Evaluation
	Report     *Report
	JobFit     *JobFitAnalysis
	Aptitude   []AptitudeQuestion
}

// Profile is the resume-derived candidate profile handed in by callers.
type Profile struct {
	Role            string   `json:"role"`
	InterviewType   string   `json:"interview_type"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years"`
	Education       []string `json:"education"`
	WorkExperience  []string `json:"work_experience"`
}

// DomainAnalysis captures what the engine inferred about the candidate's
// technical territory.
type DomainAnalysis struct {
	PrimaryDomain   string   `json:"primary_domain"`
	TechnicalDepth  string   `json:"technical_depth"`
	KeyTechnologies []string `json:"key_technologies"`
	Specializations []string `json:"specializations"`
	Industries      []string `json:"industry_experience"`
}

// CandidateContext is the structured understanding of a candidate built by
// the context-extraction operation and reused by every later operation.
type CandidateContext struct {
	Role            string         `json:"role"`
	InterviewType   string         `json:"interview_type"`
	ExperienceYears int            `json:"experience_years"`
	ExperienceLevel string         `json:"experience_level"`
	Skills          []string       `json:"skills"`
	Domain          DomainAnalysis `json:"domain_analysis"`
	Engine          ID             `json:"ai_engine"`
	CreatedAt       time.Time      `json:"created_at"`
}

// Question is a single interview question.
type Question struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Type       string    `json:"type"`
	Intent     string    `json:"expected_intent,omitempty"`
	Difficulty string    `json:"difficulty"`
	CreatedAt  time.Time `json:"timestamp"`
}

// Evaluation scores a candidate's answer on a 0-100 scale per axis.
type Evaluation struct {
	Technical      int       `json:"technical"`
	Communication  int       `json:"communication"`
	Relevance      int       `json:"relevance"`
	ExpectedAnswer string    `json:"expected_answer"`
	CreatedAt      time.Time `json:"timestamp"`
}

// Report is the synthesized end-of-interview summary.
type Report struct {
	OverallSummary     string   `json:"overall_summary"`
	TechnicalScore     int      `json:"technical_score"`
	CommunicationScore int      `json:"communication_score"`
	RelevanceScore     int      `json:"relevance_score"`
	Recommendations    []string `json:"recommendations"`
}

// JobDescription is the posting a candidate is matched against.
type JobDescription struct {
	Title                   string   `json:"title"`
	RequiredSkills          []string `json:"required_skills"`
	PreferredSkills         []string `json:"preferred_skills,omitempty"`
	RequiredExperienceYears int      `json:"required_experience_years"`
}

// JobFitAnalysis is the engine's fit verdict for a candidate/job pair.
type JobFitAnalysis struct {
	OverallFitScore    int      `json:"overall_fit_score"`
	SkillMatchPct      int      `json:"skill_match_percentage"`
	ExperienceMatchPct int      `json:"experience_match_percentage"`
	RoleSuitability    string   `json:"role_suitability"`
	MissingSkills      []string `json:"missing_skills"`
	MatchedSkills      []string `json:"matched_skills"`
}

// AptitudeQuestion is one multiple-choice reasoning question. CorrectAnswer
// and Explanation stay server-side; the public shape omits them.
type AptitudeQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
	Type          string   `json:"type"`
	Difficulty    string   `json:"difficulty"`
}

// Exchange is one entry of the running interview transcript.
type Exchange struct {
	Kind           string `json:"type"` // "question" or "answer"
	Content        string `json:"content"`
	QuestionNumber int    `json:"question_number"`
}

// Health is the router's cached belief about an engine, reflecting only
// the most recent attempt. A single success clears a prior failure.
type Health struct {
	Available     bool      `json:"available"`
	LastCheckedAt time.Time `json:"last_checked_at"`
	LastError     string    `json:"last_error,omitempty"`
}

// Preferences controls routing. Set from config at construction, mutable
// via the administrative operations only.
type Preferences struct {
	Preferred       ID   `json:"preferred_engine"`
	FallbackEnabled bool `json:"fallback_enabled"`
}

// Stats are purely observational usage counters. They never influence
// routing decisions.
type Stats struct {
	RequestsByEngine map[ID]int64 `json:"requests_by_engine"`
	FallbackCount    int64        `json:"fallback_count"`
	LastEngineUsed   ID           `json:"last_engine_used,omitempty"`
}

// Status is a point-in-time snapshot of the router state, safe to
// serialize to JSON.
type Status struct {
	Preferences Preferences   `json:"preferences"`
	Engines     map[ID]Health `json:"engines"`
	Stats       Stats         `json:"stats"`
}
