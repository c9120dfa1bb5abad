package scorestatistics

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ranking-workers/internal/common/config"
	"ranking-workers/internal/common/errors"
	"ranking-workers/internal/common/logger"
	"ranking-workers/internal/models"
	"ranking-workers/internal/ranking/engine"
	"ranking-workers/internal/store/memory"
)

func setupHandler(t *testing.T, scores ...float64) *Handler {
	t.Helper()
	store := memory.New()
	store.PutJob(models.Job{ID: 1})
	for i, s := range scores {
		score := s
		store.PutApplication(models.Application{ID: int64(i + 1), JobID: 1, AIScore: &score})
	}
	store.PutApplication(models.Application{ID: 100, JobID: 1})

	log := logger.NewTestLogger(t)
	return NewHandler(LoadConfig(config.WorkerConfig{}), engine.New(nil, store, nil, log), nil, log)
}

func TestHandler_Execute(t *testing.T) {
	handler := setupHandler(t, 92, 64.5, 41, 10)

	output, err := handler.Execute(context.Background(), &Input{JobID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), output.JobID)
	assert.Equal(t, 5, output.TotalApplications)
	assert.Equal(t, 4, output.ScoredApplications)
	assert.Equal(t, 51.88, output.AverageScore)
	assert.Equal(t, 92.0, output.HighestScore)
	assert.Equal(t, 10.0, output.LowestScore)
	assert.Equal(t, 1, output.ExcellentMatch)
	assert.Equal(t, 1, output.GoodMatch)
	assert.Equal(t, 1, output.AverageMatch)
	assert.Equal(t, 1, output.PoorMatch)
}

func TestHandler_Execute_NothingScored(t *testing.T) {
	handler := setupHandler(t)

	output, err := handler.Execute(context.Background(), &Input{JobID: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, output.TotalApplications)
	assert.Equal(t, 0, output.ScoredApplications)
	assert.Zero(t, output.AverageScore)
}

func TestOutput_FlattensStatistics(t *testing.T) {
	data, err := json.Marshal(Output{JobID: 7, Statistics: engine.Statistics{TotalApplications: 3}})
	require.NoError(t, err)

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &vars))
	assert.Equal(t, float64(7), vars["jobId"])
	assert.Equal(t, float64(3), vars["totalApplications"])
	assert.NotContains(t, vars, "Statistics")
}

func TestHandler_Execute_UnknownJob(t *testing.T) {
	handler := setupHandler(t)

	_, err := handler.Execute(context.Background(), &Input{JobID: 2})
	assert.True(t, errors.HasCode(err, errors.ErrCodeJobNotFound))
}
