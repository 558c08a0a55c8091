// Package static holds the deterministic offline content the route layer
// falls back to when every AI engine is unavailable. It is not an engine
// adapter and is never registered with the router.
package static

import (
	"fmt"
	"strings"
	"time"

	"github.com/careerforge/careerforge/pkg/engine"
	"github.com/careerforge/careerforge/pkg/engine/prompt"
)

// adaptiveQuestions is the fixed ladder for questions 2-8.
var adaptiveQuestions = map[int]string{
	2: "Based on what you've shared, what specific technologies do you work with most in your %s role?",
	3: "Can you walk me through your approach to solving complex technical challenges?",
	4: "Tell me about a recent project that you found particularly challenging or rewarding.",
	5: "How do you handle situations when requirements change mid-project?",
	6: "Describe how you collaborate with team members when there are differing technical opinions.",
	7: "What aspects of this role and our technology stack interest you most?",
	8: "Where do you see your technical career heading in the next few years?",
}

// FirstQuestion returns the canned opener for the given role.
func FirstQuestion(role string) engine.Question {
	return engine.Question{
		ID:         "q1",
		Text:       fmt.Sprintf("Thank you for joining us today! Could you start by telling me about your background and experience as a %s?", role),
		Type:       "introductory",
		Intent:     "background_overview",
		Difficulty: "easy",
		CreatedAt:  time.Now(),
	}
}

// NextQuestion returns the ladder question for number n (2-8). Numbers
// outside the ladder get a generic follow-up.
func NextQuestion(n int, role string) engine.Question {
	text, ok := adaptiveQuestions[n]
	if !ok {
		text = "Tell me more about your experience."
	} else if strings.Contains(text, "%s") {
		text = fmt.Sprintf(text, role)
	}
	return engine.Question{
		ID:         fmt.Sprintf("q%d", n),
		Text:       text,
		Type:       "adaptive",
		Intent:     "experience_exploration",
		Difficulty: "medium",
		CreatedAt:  time.Now(),
	}
}

// Evaluation scores an answer by length alone: 2 points per word,
// clamped to [40, 85]. Deterministic and obviously coarse, but better
// than refusing to proceed mid-interview.
func Evaluation(role, answer string) engine.Evaluation {
	score := len(strings.Fields(answer)) * 2
	if score < 40 {
		score = 40
	}
	if score > 85 {
		score = 85
	}
	return engine.Evaluation{
		Technical:      score,
		Communication:  score,
		Relevance:      score,
		ExpectedAnswer: fmt.Sprintf("For this %s question, a strong answer should demonstrate relevant experience, specific examples, and clear technical understanding of the concepts discussed.", role),
		CreatedAt:      time.Now(),
	}
}

// ShortAnswerEvaluation is the floor rating for answers too short to
// judge. No engine call is spent on these.
func ShortAnswerEvaluation(role string) engine.Evaluation {
	return engine.Evaluation{
		Technical:      20,
		Communication:  20,
		Relevance:      20,
		ExpectedAnswer: fmt.Sprintf("A complete answer is expected. Please provide specific details about your experience, approach, or solution related to this %s question.", role),
		CreatedAt:      time.Now(),
	}
}

// Report summarizes evaluations by plain averaging.
func Report(evals []engine.Evaluation) engine.Report {
	if len(evals) == 0 {
		return engine.Report{
			OverallSummary: "No evaluation data available for this session.",
		}
	}
	tech, comm, rel := prompt.AverageScores(evals)
	return engine.Report{
		OverallSummary: fmt.Sprintf(
			"Completed interview with average scores: Technical %.1f%%, Communication %.1f%%, Relevance %.1f%%.",
			tech, comm, rel),
		TechnicalScore:     int(tech),
		CommunicationScore: int(comm),
		RelevanceScore:     int(rel),
		Recommendations:    []string{"Practice technical explanations", "Focus on specific examples"},
	}
}

// AptitudeQuestions returns the seed question set used when no engine
// can generate one.
func AptitudeQuestions(difficulty string) []engine.AptitudeQuestion {
	return []engine.AptitudeQuestion{{
		ID:            "apt_1",
		Question:      "If a development team of 4 can complete a feature in 6 days, how many days will it take for 6 developers?",
		Options:       []string{"A) 4 days", "B) 3 days", "C) 5 days", "D) 2 days"},
		CorrectAnswer: "A) 4 days",
		Explanation:   "Work = People x Days. 4x6 = 24 person-days. For 6 people: 24/6 = 4 days",
		Type:          "quantitative",
		Difficulty:    difficulty,
	}}
}

// JobFit computes a deterministic overlap-based fit when no engine is
// reachable: skill match is the fraction of required skills present,
// experience match is years held over years required.
func JobFit(ctx *engine.CandidateContext, job *engine.JobDescription) engine.JobFitAnalysis {
	have := make(map[string]bool, len(ctx.Skills))
	for _, s := range ctx.Skills {
		have[strings.ToLower(strings.TrimSpace(s))] = true
	}

	var matched, missing []string
	for _, s := range job.RequiredSkills {
		if have[strings.ToLower(strings.TrimSpace(s))] {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}

	skillMatch := 50.0
	if len(job.RequiredSkills) > 0 {
		skillMatch = float64(len(matched)) / float64(len(job.RequiredSkills)) * 100
	}
	expMatch := 75.0
	if job.RequiredExperienceYears > 0 {
		expMatch = float64(ctx.ExperienceYears) / float64(job.RequiredExperienceYears) * 100
		if expMatch > 100 {
			expMatch = 100
		}
	}

	return engine.JobFitAnalysis{
		OverallFitScore:    int((skillMatch + expMatch) / 2),
		SkillMatchPct:      int(skillMatch),
		ExperienceMatchPct: int(expMatch),
		RoleSuitability:    "Good fit with development needed",
		MissingSkills:      missing,
		MatchedSkills:      matched,
	}
}

// Context builds a candidate context without any domain inference, used
// when context extraction cannot reach an engine.
func Context(p engine.Profile) engine.CandidateContext {
	techs := p.Skills
	if len(techs) > 3 {
		techs = techs[:3]
	}
	return engine.CandidateContext{
		Role:            p.Role,
		InterviewType:   p.InterviewType,
		ExperienceYears: p.ExperienceYears,
		ExperienceLevel: prompt.ExperienceLevel(p.ExperienceYears),
		Skills:          p.Skills,
		Domain: engine.DomainAnalysis{
			PrimaryDomain:   "fullstack",
			TechnicalDepth:  "intermediate",
			KeyTechnologies: techs,
		},
		CreatedAt: time.Now(),
	}
}
