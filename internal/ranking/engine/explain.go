package engine

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"ranking-workers/internal/ranking/scoring"
	"ranking-workers/internal/ranking/skills"
)

// Explanation breaks an application's score down for a recruiter.
type Explanation struct {
	ApplicationID      int64              `json:"applicationId"`
	OverallScore       *float64           `json:"overallScore"`
	AIFeedback         string             `json:"aiFeedback"`
	SkillAnalysis      skills.Match       `json:"skillAnalysis"`
	ExperienceAnalysis ExperienceAnalysis `json:"experienceAnalysis"`
	Recommendations    []string           `json:"recommendations"`
}

type ExperienceAnalysis struct {
	CandidateExperience *float64 `json:"candidateExperience"`
	RequiredMin         *int     `json:"requiredMin"`
	RequiredMax         *int     `json:"requiredMax"`
}

const (
	recommendStrong  = "Strong candidate - recommend for interview"
	recommendGood    = "Good candidate - consider for technical screening"
	recommendAverage = "Average match - review manually"
	recommendLow     = "Low match - may not be suitable for this role"
)

// ExplainMatch reports the stored score and feedback together with a fresh
// skill analysis. It never writes.
func (e *Engine) ExplainMatch(ctx context.Context, applicationID int64) (exp *Explanation, err error) {
	ctx, span := e.startSpan(ctx, "ExplainMatch", attribute.Int64("application.id", applicationID))
	defer func() { endSpan(span, err) }()

	app, err := e.repo.FindApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	job, err := e.repo.FindJob(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	candidate, err := e.repo.FindCandidate(ctx, app.CandidateID)
	if err != nil {
		return nil, err
	}
	resume, err := e.resolveResume(ctx, app)
	if err != nil {
		return nil, err
	}

	match := e.matcher.DetailedMatch(scoring.CandidateSkillText(candidate, resume), job.RequiredSkills)

	return &Explanation{
		ApplicationID: app.ID,
		OverallScore:  app.AIScore,
		AIFeedback:    app.AIFeedback,
		SkillAnalysis: match,
		ExperienceAnalysis: ExperienceAnalysis{
			CandidateExperience: candidate.TotalExperience,
			RequiredMin:         job.ExperienceMin,
			RequiredMax:         job.ExperienceMax,
		},
		Recommendations: Recommendations(match.Missing, app.AIScore),
	}, nil
}

// Recommendations derives advice from the missing skills and, when the
// application has been scored, its score tier.
func Recommendations(missing []string, score *float64) []string {
	recs := []string{}

	switch n := len(missing); {
	case n > 3:
		recs = append(recs, fmt.Sprintf("Candidate is missing %d required skills. May need additional training.", n))
	case n > 0:
		recs = append(recs, "Consider gaining experience in: "+strings.Join(missing, ", "))
	}

	if score == nil {
		return recs
	}
	return append(recs, Tier(*score))
}

// Tier is the one-line verdict for a score.
func Tier(score float64) string {
	switch {
	case score >= ExcellentMatchFrom:
		return recommendStrong
	case score >= GoodMatchFrom:
		return recommendGood
	case score >= AverageMatchFrom:
		return recommendAverage
	default:
		return recommendLow
	}
}
