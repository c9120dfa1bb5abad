package candidatesabovethreshold

import (
	"ranking-workers/internal/common/validation"
	"ranking-workers/internal/models"
)

type Input struct {
	JobID     int64   `json:"jobId"`
	Threshold float64 `json:"threshold"`
}

type Output struct {
	JobID      int64                      `json:"jobId"`
	Threshold  float64                    `json:"threshold"`
	Count      int                        `json:"count"`
	Candidates []models.RankedApplication `json:"candidates"`
}

var inputValidator = validation.MustValidator(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"jobId":     {Type: "integer", Minimum: validation.Float64Ptr(1)},
		"threshold": {Type: "number", Description: "Inclusive lower score bound"},
	},
	Required:             []string{"jobId", "threshold"},
	AdditionalProperties: true,
})
