package scorejobapplications

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

var testNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func createTestConfig() *Config {
	return LoadConfig(config.WorkerConfig{Enabled: true})
}

// seedJob stores job 1 with a strong applicant (1), an applicant scored by an
// earlier run (2) and an applicant with an empty profile (3).
func seedJob(store *memory.Store) {
	exp := 6.0
	previous := 42.5
	applied := testNow

	store.PutJob(models.Job{ID: 1, RequiredSkills: "Go, PostgreSQL, Docker"})
	store.PutCandidate(models.Candidate{ID: 11, Skills: "golang, postgres, docker", TotalExperience: &exp, Education: "Master of Science"})
	store.PutCandidate(models.Candidate{ID: 12, Skills: "Go"})
	store.PutCandidate(models.Candidate{ID: 13})

	store.PutApplication(models.Application{ID: 1, JobID: 1, CandidateID: 11, AppliedAt: &applied})
	store.PutApplication(models.Application{ID: 2, JobID: 1, CandidateID: 12, AIScore: &previous, AIFeedback: "previous run"})
	store.PutApplication(models.Application{ID: 3, JobID: 1, CandidateID: 13})
}

func setupHandler(t *testing.T) (*Handler, *memory.Store) {
	t.Helper()
	store := memory.New()
	log := logger.NewTestLogger(t)
	eng := engine.New(&engine.Config{
		Concurrency: 2,
		Now:         func() time.Time { return testNow },
	}, store, nil, log)
	return NewHandler(createTestConfig(), eng, nil, log), store
}

func TestHandler_Execute(t *testing.T) {
	handler, store := setupHandler(t)
	seedJob(store)

	output, err := handler.Execute(context.Background(), &Input{JobID: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, output.TotalApplications)
	assert.Equal(t, 3, output.ScoredApplications)
	require.Len(t, output.RankedApplications, 3)

	first := output.RankedApplications[0]
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, int64(1), first.ApplicationID)
	for i := 1; i < len(output.RankedApplications); i++ {
		assert.GreaterOrEqual(t, *output.RankedApplications[i-1].AIScore, *output.RankedApplications[i].AIScore)
		assert.Equal(t, i+1, output.RankedApplications[i].Rank)
	}

	kept, err := store.FindApplication(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 42.5, *kept.AIScore)
	assert.Equal(t, "previous run", kept.AIFeedback)
}

func TestHandler_Execute_EmptyPool(t *testing.T) {
	handler, store := setupHandler(t)
	store.PutJob(models.Job{ID: 5})

	output, err := handler.Execute(context.Background(), &Input{JobID: 5})
	require.NoError(t, err)
	assert.Zero(t, output.TotalApplications)
	assert.NotNil(t, output.RankedApplications)
}

func TestHandler_Execute_UnknownJob(t *testing.T) {
	handler, _ := setupHandler(t)

	_, err := handler.Execute(context.Background(), &Input{JobID: 9})
	assert.True(t, errors.HasCode(err, errors.ErrCodeJobNotFound))
}

func TestLoadConfig(t *testing.T) {
	assert.Equal(t, 2*time.Minute, createTestConfig().Timeout)
}
