package rescorepending

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ranking-workers/internal/common/config"
	"ranking-workers/internal/common/errors"
	"ranking-workers/internal/common/logger"
	"ranking-workers/internal/models"
	"ranking-workers/internal/ranking/engine"
	"ranking-workers/internal/store/memory"
)

func TestHandler_Execute(t *testing.T) {
	store := memory.New()
	previous := 77.0
	store.PutJob(models.Job{ID: 1, RequiredSkills: "Python, Django"})
	store.PutCandidate(models.Candidate{ID: 1, Skills: "python"})
	store.PutCandidate(models.Candidate{ID: 2, Skills: "django, python"})
	store.PutApplication(models.Application{ID: 1, JobID: 1, CandidateID: 1})
	store.PutApplication(models.Application{ID: 2, JobID: 1, CandidateID: 2})
	store.PutApplication(models.Application{ID: 3, JobID: 1, CandidateID: 2, AIScore: &previous})

	log := logger.NewTestLogger(t)
	eng := engine.New(&engine.Config{Concurrency: 4}, store, nil, log)
	handler := NewHandler(LoadConfig(config.WorkerConfig{Timeout: 10000}), eng, nil, log)
	ctx := context.Background()

	output, err := handler.Execute(ctx, &Input{JobID: 1})
	require.NoError(t, err)
	assert.Equal(t, Output{JobID: 1, RescoredCount: 2}, *output)

	pending, err := store.ListUnscoredApplicationsByJob(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, pending)

	kept, err := store.FindApplication(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 77.0, *kept.AIScore)

	output, err = handler.Execute(ctx, &Input{JobID: 1})
	require.NoError(t, err)
	assert.Zero(t, output.RescoredCount)
}

func TestHandler_Execute_UnknownJob(t *testing.T) {
	log := logger.NewTestLogger(t)
	handler := NewHandler(LoadConfig(config.WorkerConfig{}), engine.New(nil, memory.New(), nil, log), nil, log)

	_, err := handler.Execute(context.Background(), &Input{JobID: 1})
	assert.True(t, errors.IsNotFound(err))
}

func TestLoadConfig(t *testing.T) {
	assert.Equal(t, 10*time.Second, LoadConfig(config.WorkerConfig{Timeout: 10000}).Timeout)
	assert.Equal(t, 2*time.Minute, LoadConfig(config.WorkerConfig{}).Timeout)
}
