package rescorepending

import "ranking-workers/internal/common/validation"

type Input struct {
	JobID int64 `json:"jobId"`
}

type Output struct {
	JobID         int64 `json:"jobId"`
	RescoredCount int   `json:"rescoredCount"`
}

var inputValidator = validation.MustValidator(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"jobId": {Type: "integer", Minimum: validation.Float64Ptr(1)},
	},
	Required:             []string{"jobId"},
	AdditionalProperties: true,
})
