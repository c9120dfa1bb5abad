package models

// RankedApplication is the process-variable view of an application in a
// ranked list. Rank starts at 1.
type RankedApplication struct {
	Rank          int      `json:"rank"`
	ApplicationID int64    `json:"applicationId"`
	CandidateID   int64    `json:"candidateId"`
	AIScore       *float64 `json:"aiScore"`
	AIFeedback    string   `json:"aiFeedback,omitempty"`
}

// Rank numbers apps in the order given.
func Rank(apps []*Application) []RankedApplication {
	out := make([]RankedApplication, 0, len(apps))
	for i, app := range apps {
		out = append(out, RankedApplication{
			Rank:          i + 1,
			ApplicationID: app.ID,
			CandidateID:   app.CandidateID,
			AIScore:       app.AIScore,
			AIFeedback:    app.AIFeedback,
		})
	}
	return out
}
