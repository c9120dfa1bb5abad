package scorestatistics

import (
	"ranking-workers/internal/common/validation"
	"ranking-workers/internal/ranking/engine"
)

type Input struct {
	JobID int64 `json:"jobId"`
}

// Output flattens the statistics into top-level process variables.
type Output struct {
	JobID int64 `json:"jobId"`
	engine.Statistics
}

var inputValidator = validation.MustValidator(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"jobId": {Type: "integer", Minimum: validation.Float64Ptr(1)},
	},
	Required:             []string{"jobId"},
	AdditionalProperties: true,
})
