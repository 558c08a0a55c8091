// Package prompt builds the per-operation prompts both engine adapters
// send, and parses the loosely structured JSON the models return.
package prompt

import (
	"fmt"
	"strings"

	"github.com/careerforge/careerforge/pkg/engine"
)

// Spec is a fully rendered prompt plus the generation knobs for it.
type Spec struct {
	Text        string
	Temperature float32
	MaxTokens   int
}

// Build renders the prompt for op from the payload fields that operation
// uses. Unknown operations are an error, not a silent default.
func Build(op engine.Operation, p engine.Payload) (Spec, error) {
	switch op {
	case engine.OpContextExtraction:
		return contextExtraction(p), nil
	case engine.OpFirstQuestion:
		return firstQuestion(p), nil
	case engine.OpNextQuestion:
		return nextQuestion(p), nil
	case engine.OpAnswerEvaluation:
		return answerEvaluation(p), nil
	case engine.OpFinalReport:
		return finalReport(p), nil
	case engine.OpJobFit:
		return jobFit(p), nil
	case engine.OpAptitudeGeneration:
		return aptitudeGeneration(p), nil
	}
	return Spec{}, fmt.Errorf("no prompt for operation %q", op)
}

func contextExtraction(p engine.Payload) Spec {
	text := fmt.Sprintf(`Analyze this candidate profile and extract key domain signals.

Role: %s
Skills: %s
Experience: %d years
Work Experience: %s

Extract and return ONLY a JSON object with:
{
    "primary_domain": "frontend|backend|fullstack|mobile|devops|data|ml|other",
    "technical_depth": "beginner|intermediate|advanced|expert",
    "key_technologies": ["tech1", "tech2", "tech3"],
    "specializations": ["spec1", "spec2"],
    "industry_experience": ["industry1", "industry2"]
}

Return only valid JSON, no additional text.`,
		p.Profile.Role,
		strings.Join(p.Profile.Skills, ", "),
		p.Profile.ExperienceYears,
		strings.Join(firstN(p.Profile.WorkExperience, 3), "; "),
	)
	return Spec{Text: text, Temperature: 0.2, MaxTokens: 500}
}

func firstQuestion(p engine.Payload) Spec {
	ctx := p.Context
	text := fmt.Sprintf(`Generate the first interview question for a %s %s candidate.

Candidate Context:
- Role: %s
- Experience Level: %s
- Primary Domain: %s
- Technical Depth: %s

Requirements:
- Question 1 must be general and welcoming
- Professional interview tone
- Encourages candidate to share background
- Sets conversational flow

Return ONLY a JSON object:
{
    "id": "q1",
    "text": "Your question here",
    "type": "introductory",
    "expected_intent": "background_overview",
    "difficulty": "easy"
}

Return only valid JSON, no additional text.`,
		ctx.ExperienceLevel, ctx.Role, ctx.Role, ctx.ExperienceLevel,
		ctx.Domain.PrimaryDomain, ctx.Domain.TechnicalDepth,
	)
	return Spec{Text: text, Temperature: 0.3, MaxTokens: 300}
}

func nextQuestion(p engine.Payload) Spec {
	ctx := p.Context
	text := fmt.Sprintf(`Generate question #%d of 8 for a %s interview.

Candidate Context:
- Role: %s
- Experience Level: %s
- Primary Domain: %s

Previous Conversation:
%s
Requirements:
- Question %d must build on previous conversation
- Must be adaptive and conversational (not scripted)
- Professional interview tone
- Questions 2-8 must use conversation history as context

Return ONLY a JSON object:
{
    "id": "q%d",
    "text": "Your adaptive question here",
    "type": "technical|behavioral|situational|role_fit",
    "expected_intent": "specific_intent_based_on_context",
    "difficulty": "easy|medium|hard"
}

Return only valid JSON, no additional text.`,
		p.QuestionNumber, ctx.Role, ctx.Role, ctx.ExperienceLevel,
		ctx.Domain.PrimaryDomain,
		Transcript(p.History, 4),
		p.QuestionNumber, p.QuestionNumber,
	)
	return Spec{Text: text, Temperature: 0.5, MaxTokens: 400}
}

func answerEvaluation(p engine.Payload) Spec {
	ctx := p.Context
	text := fmt.Sprintf(`Evaluate this %s %s interview answer objectively.

Question: %s
Answer: %s

Provide scores (0-100) and expected answer guidance:
- Technical competency and depth
- Communication clarity and structure
- Relevance to the question asked
- Expected answer elements that would demonstrate strong performance

Return ONLY a JSON object with scores and expected answer:
{
    "technical": 85,
    "communication": 90,
    "relevance": 85,
    "expected_answer": "A strong answer should include: specific examples, technical details, problem-solving approach, and clear communication of the solution process."
}

Return only valid JSON with numeric scores and expected answer guidance, no additional text.`,
		ctx.ExperienceLevel, ctx.Role, p.QuestionText, p.Answer,
	)
	return Spec{Text: text, Temperature: 0.1, MaxTokens: 200}
}

func finalReport(p engine.Payload) Spec {
	ctx := p.Context
	tech, comm, rel := AverageScores(p.Evaluations)
	text := fmt.Sprintf(`Generate final interview report for %s %s candidate.

Performance Scores:
- Technical: %.1f/100
- Communication: %.1f/100
- Relevance: %.1f/100
- Questions Answered: %d

Return ONLY a JSON object with scores and brief recommendations:
{
    "overall_summary": "Brief performance summary",
    "technical_score": %d,
    "communication_score": %d,
    "relevance_score": %d,
    "recommendations": ["recommendation1", "recommendation2"]
}

Return only valid JSON, no additional text.`,
		ctx.ExperienceLevel, ctx.Role,
		tech, comm, rel, len(p.Evaluations),
		int(tech), int(comm), int(rel),
	)
	return Spec{Text: text, Temperature: 0.2, MaxTokens: 400}
}

func jobFit(p engine.Payload) Spec {
	ctx := p.Context
	job := p.Job
	text := fmt.Sprintf(`Analyze job fit between candidate and position.

Candidate Profile:
- Role: %s
- Experience: %d years
- Skills: %s
- Domain: %s
- Technical Depth: %s

Job Requirements:
- Position: %s
- Required Experience: %d years
- Required Skills: %s

Return ONLY a JSON object with job fit scores:
{
    "overall_fit_score": 85,
    "skill_match_percentage": 80,
    "experience_match_percentage": 90,
    "role_suitability": "Excellent fit - highly recommended",
    "missing_skills": ["skill1", "skill2"],
    "matched_skills": ["skill1", "skill2"]
}

Return only valid JSON, no additional text.`,
		ctx.Role, ctx.ExperienceYears, strings.Join(ctx.Skills, ", "),
		ctx.Domain.PrimaryDomain, ctx.Domain.TechnicalDepth,
		job.Title, job.RequiredExperienceYears, strings.Join(job.RequiredSkills, ", "),
	)
	return Spec{Text: text, Temperature: 0.2, MaxTokens: 400}
}

func aptitudeGeneration(p engine.Payload) Spec {
	text := fmt.Sprintf(`Generate %d aptitude questions for technical interview assessment.

Requirements:
- Difficulty: %s
- Focus: problem-solving, analytical thinking, logical reasoning
- Types: quantitative reasoning, logical puzzles, pattern recognition
- Each question: 4 multiple choice options
- Include correct answer and reasoning

Return ONLY a JSON array:
[
    {
        "id": "apt_1",
        "question": "Question text here",
        "options": ["A) Option 1", "B) Option 2", "C) Option 3", "D) Option 4"],
        "correct_answer": "A) Option 1",
        "explanation": "Step-by-step reasoning",
        "type": "quantitative|logical|pattern|analytical",
        "difficulty": "%s"
    }
]

Return only valid JSON array, no additional text.`,
		p.Count, p.Difficulty, p.Difficulty,
	)
	return Spec{Text: text, Temperature: 0.4, MaxTokens: 2000}
}

// Transcript renders the last n transcript entries the way the prompts
// reference prior conversation. Answers are truncated to keep prompts
// bounded.
func Transcript(history []engine.Exchange, n int) string {
	if len(history) > n {
		history = history[len(history)-n:]
	}
	var b strings.Builder
	for _, e := range history {
		switch e.Kind {
		case "question":
			fmt.Fprintf(&b, "Q%d: %s\n", e.QuestionNumber, e.Content)
		case "answer":
			fmt.Fprintf(&b, "A%d: %s\n\n", e.QuestionNumber, truncate(e.Content, 200))
		}
	}
	return b.String()
}

// AverageScores computes mean per-axis scores over the evaluations.
func AverageScores(evals []engine.Evaluation) (technical, communication, relevance float64) {
	if len(evals) == 0 {
		return 0, 0, 0
	}
	for _, e := range evals {
		technical += float64(e.Technical)
		communication += float64(e.Communication)
		relevance += float64(e.Relevance)
	}
	n := float64(len(evals))
	return technical / n, communication / n, relevance / n
}

// ExperienceLevel buckets years of experience into the level labels the
// prompts and reports use.
func ExperienceLevel(years int) string {
	switch {
	case years < 2:
		return "Junior"
	case years < 5:
		return "Mid-Level"
	case years < 10:
		return "Senior"
	default:
		return "Lead/Principal"
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
