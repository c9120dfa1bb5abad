package scorejobapplications

import (
	"ranking-workers/internal/common/validation"
	"ranking-workers/internal/models"
)

type Input struct {
	JobID int64 `json:"jobId"`
}

// Output lists every application of the job. Applications that could not be
// scored rank last with a null aiScore.
type Output struct {
	JobID              int64                      `json:"jobId"`
	TotalApplications  int                        `json:"totalApplications"`
	ScoredApplications int                        `json:"scoredApplications"`
	RankedApplications []models.RankedApplication `json:"rankedApplications"`
}

var inputValidator = validation.MustValidator(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"jobId": {Type: "integer", Minimum: validation.Float64Ptr(1)},
	},
	Required:             []string{"jobId"},
	AdditionalProperties: true,
})
