package scoring

// EducationTier classifies education text by keyword. Tiers are checked in
// order and the first tier with a keyword contained in the text wins.
type EducationTier struct {
	Label    string
	Keywords []string
	Score    float64
}

var EducationTiers = []EducationTier{
	{Label: "PhD/Doctorate", Keywords: []string{"phd", "doctorate"}, Score: 1.0},
	{Label: "Master's degree", Keywords: []string{"master", "m.tech", "mba", "mca"}, Score: 0.9},
	{Label: "Bachelor's degree", Keywords: []string{"bachelor", "b.tech", "b.e", "bca"}, Score: 0.8},
	{Label: "Diploma", Keywords: []string{"diploma"}, Score: 0.6},
}

// lengthTier maps a minimum exclusive length of parsed resume text to a score.
type lengthTier struct {
	above int
	score float64
}

var resumeLengthTiers = []lengthTier{
	{above: 2000, score: 1.0},
	{above: 1000, score: 0.8},
	{above: 500, score: 0.6},
}

// recencyTier maps a maximum age in days to a score.
type recencyTier struct {
	maxDays int
	score   float64
}

var recencyTiers = []recencyTier{
	{maxDays: 1, score: 1.0},
	{maxDays: 7, score: 0.9},
	{maxDays: 30, score: 0.7},
}

const (
	neutralScore = 0.5

	defaultExperienceMin  = 0
	defaultExperienceMax  = 50
	deficitPenaltyPerYear = 0.2
	overqualifiedScore    = 0.85

	resumeBaseScore       = 0.5
	resumeSkillBonus      = 0.1
	resumeSkillBonusAbove = 10
	missingSkillListLimit = 3
	staleApplicationScore = 0.5
)
