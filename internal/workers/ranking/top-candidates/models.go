package topcandidates

import (
	"ranking-workers/internal/common/validation"
	"ranking-workers/internal/models"
)

type Input struct {
	JobID int64 `json:"jobId"`
	// Limit falls back to the worker's configured default when absent. A
	// limit of zero or less yields an empty list.
	Limit *int `json:"limit,omitempty"`
}

type Output struct {
	JobID         int64                      `json:"jobId"`
	Limit         int                        `json:"limit"`
	Count         int                        `json:"count"`
	TopCandidates []models.RankedApplication `json:"topCandidates"`
}

var inputValidator = validation.MustValidator(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"jobId": {Type: "integer", Minimum: validation.Float64Ptr(1)},
		"limit": {Type: "integer", Description: "Maximum number of candidates"},
	},
	Required:             []string{"jobId"},
	AdditionalProperties: true,
})
