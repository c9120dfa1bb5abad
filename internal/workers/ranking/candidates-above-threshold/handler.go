package candidatesabovethreshold

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"ranking-workers/internal/common/camunda"
	"ranking-workers/internal/common/errors"
	"ranking-workers/internal/common/logger"
	"ranking-workers/internal/common/observability"
	"ranking-workers/internal/models"
	"ranking-workers/internal/ranking/engine"
)

const TaskType = "candidates-above-threshold"

// Handler lists applications whose score reaches a threshold.
type Handler struct {
	config *Config
	engine *engine.Engine
	obs    *observability.Observability
	errors *errors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, eng *engine.Engine, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		engine: eng,
		obs:    obs,
		errors: errors.NewErrorHandler(log),
		logger: log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	run := camunda.BeginJob(TaskType, h.obs)

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	output, err := h.run(ctx, job.Variables)
	if err != nil {
		run.Failed(ctx, string(errors.Normalize(err).Code))
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		run.Failed(ctx, "COMPLETE_FAILED")
		return
	}
	run.Completed(ctx)
}

func (h *Handler) run(ctx context.Context, variables string) (*Output, error) {
	input, err := parseInput(variables)
	if err != nil {
		return nil, err
	}
	return h.execute(ctx, input)
}

func parseInput(variables string) (*Input, error) {
	result, err := inputValidator.ValidateJSON(variables)
	if err != nil {
		return nil, errors.NewInvalidInputError(err.Error())
	}
	if !result.Valid {
		return nil, errors.NewInvalidInputError(result.Error())
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, errors.NewInvalidInputError(err.Error())
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	apps, err := h.engine.CandidatesAboveThreshold(ctx, input.JobID, input.Threshold)
	if err != nil {
		return nil, err
	}

	return &Output{
		JobID:      input.JobID,
		Threshold:  input.Threshold,
		Count:      len(apps),
		Candidates: models.Rank(apps),
	}, nil
}

// Execute runs the worker logic without a Zeebe job (used by tests).
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
