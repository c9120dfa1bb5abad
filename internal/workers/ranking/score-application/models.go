package scoreapplication

import "ranking-workers/internal/common/validation"

type Input struct {
	ApplicationID int64 `json:"applicationId"`
}

type Output struct {
	ApplicationID  int64   `json:"applicationId"`
	AIScore        float64 `json:"aiScore"`
	Recommendation string  `json:"recommendation"`
}

var inputValidator = validation.MustValidator(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"applicationId": {
			Type:        "integer",
			Description: "Application to score",
			Minimum:     validation.Float64Ptr(1),
		},
	},
	Required:             []string{"applicationId"},
	AdditionalProperties: true,
})
