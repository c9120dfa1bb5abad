package engine

import (
	"math"
	"strings"

	"ranking-workers/internal/ranking/scoring"
)

const (
	SkillWeight         = 0.50
	ExperienceWeight    = 0.25
	EducationWeight     = 0.10
	ResumeQualityWeight = 0.10
	RecencyWeight       = 0.05
)

// Combine weights the factors into a 0-100 score rounded half-up to two
// decimals.
func (b Breakdown) Combine() float64 {
	total := b.Skill.Score*SkillWeight +
		b.Experience.Score*ExperienceWeight +
		b.Education.Score*EducationWeight +
		b.ResumeQuality.Score*ResumeQualityWeight +
		b.Recency.Score*RecencyWeight

	score := scoring.RoundHalfUp(total*100, 2)
	return math.Max(0, math.Min(100, score))
}

// Feedback concatenates the factor fragments in weight order.
func (b Breakdown) Feedback() string {
	var sb strings.Builder
	for _, f := range []scoring.Factor{b.Skill, b.Experience, b.Education, b.ResumeQuality, b.Recency} {
		sb.WriteString(f.Feedback)
	}
	return sb.String()
}
