// Package scoring holds the independent factor scorers. Each scorer maps
// part of a (job, candidate, resume, application) tuple to a sub-score in
// [0,1] and a feedback fragment; callers decide how fragments are joined.
package scoring

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"ranking-workers/internal/models"
	"ranking-workers/internal/ranking/skills"
)

// Factor is one sub-score with its human-readable explanation.
type Factor struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback,omitempty"`
}

// CandidateSkillText joins the profile skills with the skills extracted from
// the resume, whichever of the two are present.
func CandidateSkillText(candidate *models.Candidate, resume *models.Resume) string {
	profile := ""
	if candidate != nil {
		profile = candidate.Skills
	}
	if resume == nil || resume.ExtractedSkills == "" {
		return profile
	}
	if profile == "" {
		return resume.ExtractedSkills
	}
	return profile + ", " + resume.ExtractedSkills
}

// SkillScore is the share of the job's required skills the candidate covers.
func SkillScore(matcher *skills.Matcher, job *models.Job, candidate *models.Candidate, resume *models.Resume) Factor {
	match := matcher.DetailedMatch(CandidateSkillText(candidate, resume), job.RequiredSkills)

	var b strings.Builder
	fmt.Fprintf(&b, "Skills: %d/%d matched (%s%%). ",
		match.TotalMatched, match.TotalRequired, FormatHalfUp(match.MatchScore*100, 0))

	switch n := len(match.Missing); {
	case n > missingSkillListLimit:
		fmt.Fprintf(&b, "Missing %d skills. ", n)
	case n > 0:
		fmt.Fprintf(&b, "Missing: %s. ", strings.Join(match.Missing, ", "))
	}

	return Factor{Score: match.MatchScore, Feedback: b.String()}
}

// ExperienceScore compares total experience against the job's range.
func ExperienceScore(job *models.Job, candidate *models.Candidate) Factor {
	if candidate == nil || candidate.TotalExperience == nil {
		return Factor{Score: neutralScore, Feedback: "Experience: Not specified. "}
	}

	years := *candidate.TotalExperience
	yearsText := FormatHalfUp(years, 1)

	if job.ExperienceMin == nil && job.ExperienceMax == nil {
		return Factor{
			Score:    1.0,
			Feedback: fmt.Sprintf("Experience: %s years (no requirement). ", yearsText),
		}
	}

	lo, hi := defaultExperienceMin, defaultExperienceMax
	if job.ExperienceMin != nil {
		lo = *job.ExperienceMin
	}
	if job.ExperienceMax != nil {
		hi = *job.ExperienceMax
	}

	switch {
	case years >= float64(lo) && years <= float64(hi):
		return Factor{
			Score:    1.0,
			Feedback: fmt.Sprintf("Experience: %s years (ideal range %d-%d). ", yearsText, lo, hi),
		}
	case years < float64(lo):
		deficit := float64(lo) - years
		return Factor{
			Score:    math.Max(0, 1-deficit*deficitPenaltyPerYear),
			Feedback: fmt.Sprintf("Experience: %s years (below required %d). ", yearsText, lo),
		}
	default:
		return Factor{
			Score:    overqualifiedScore,
			Feedback: fmt.Sprintf("Experience: %s years (above range, may be overqualified). ", yearsText),
		}
	}
}

// EducationScore classifies the candidate's education, falling back to the
// education extracted from the resume.
func EducationScore(candidate *models.Candidate, resume *models.Resume) Factor {
	education := ""
	if candidate != nil {
		education = candidate.Education
	}
	if education == "" && resume != nil {
		education = resume.ExtractedEducation
	}
	if education == "" {
		return Factor{Score: neutralScore, Feedback: "Education: Not specified. "}
	}

	lower := strings.ToLower(education)
	for _, tier := range EducationTiers {
		for _, kw := range tier.Keywords {
			if strings.Contains(lower, kw) {
				return Factor{Score: tier.Score, Feedback: "Education: " + tier.Label + ". "}
			}
		}
	}
	return Factor{Score: neutralScore, Feedback: "Education: Found. "}
}

// ResumeQualityScore uses the parsed text length and extracted skill count
// as a proxy for how complete the uploaded resume is.
func ResumeQualityScore(resume *models.Resume) Factor {
	if resume == nil {
		return Factor{Score: 0.0, Feedback: "Resume: Not uploaded. "}
	}

	score := resumeBaseScore
	length := utf8.RuneCountInString(resume.ParsedText)
	for _, tier := range resumeLengthTiers {
		if length > tier.above {
			score = tier.score
			break
		}
	}

	if countListItems(resume.ExtractedSkills) > resumeSkillBonusAbove {
		score = math.Min(1.0, score+resumeSkillBonus)
	}

	return Factor{
		Score:    score,
		Feedback: fmt.Sprintf("Resume quality: %s%%. ", FormatHalfUp(score*100, 0)),
	}
}

// RecencyScore favours recent applications. It contributes no feedback.
func RecencyScore(appliedAt *time.Time, now time.Time) Factor {
	if appliedAt == nil {
		return Factor{Score: neutralScore}
	}

	days := daysBetween(*appliedAt, now)
	for _, tier := range recencyTiers {
		if days <= tier.maxDays {
			return Factor{Score: tier.score}
		}
	}
	return Factor{Score: staleApplicationScore}
}

// daysBetween counts calendar days from the date of from to the date of to,
// both taken in to's location.
func daysBetween(from, to time.Time) int {
	from = from.In(to.Location())
	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.Date()
	start := time.Date(y1, m1, d1, 12, 0, 0, 0, time.UTC)
	end := time.Date(y2, m2, d2, 12, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}

// countListItems counts comma-separated entries, ignoring trailing empty
// entries left by dangling separators.
func countListItems(text string) int {
	if text == "" {
		return 0
	}
	parts := strings.Split(text, ",")
	n := len(parts)
	for n > 0 && parts[n-1] == "" {
		n--
	}
	return n
}
