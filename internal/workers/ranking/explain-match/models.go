package explainmatch

import (
	"ranking-workers/internal/common/validation"
	"ranking-workers/internal/ranking/engine"
)

type Input struct {
	ApplicationID int64 `json:"applicationId"`
}

type Output struct {
	Explanation *engine.Explanation `json:"explanation"`
}

var inputValidator = validation.MustValidator(validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"applicationId": {Type: "integer", Minimum: validation.Float64Ptr(1)},
	},
	Required:             []string{"applicationId"},
	AdditionalProperties: true,
})
