package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ranking-workers/internal/common/errors"
	"ranking-workers/internal/models"
	"ranking-workers/internal/store/memory"
)

// seedPool stores job 1 with four applications:
//
//	1001 strong candidate, unscored
//	1002 already scored 42.5, must not be rescored
//	1003 weak candidate, unscored
//	1004 candidate with no skills at all, unscored
func seedPool(store *memory.Store) {
	store.PutJob(models.Job{ID: 1, RequiredSkills: "Go, PostgreSQL, Docker, Kubernetes", ExperienceMin: intPtr(3)})

	store.PutCandidate(models.Candidate{ID: 11, Skills: "golang, postgres, docker, k8s", TotalExperience: floatPtr(6), Education: "MSc, Master of Science"})
	store.PutCandidate(models.Candidate{ID: 12, Skills: "Go"})
	store.PutCandidate(models.Candidate{ID: 13, Skills: "Docker", TotalExperience: floatPtr(1), Education: "Diploma"})
	store.PutCandidate(models.Candidate{ID: 14})

	store.PutApplication(models.Application{ID: 1001, JobID: 1, CandidateID: 11, AppliedAt: timePtr(testNow)})
	store.PutApplication(models.Application{ID: 1002, JobID: 1, CandidateID: 12, AIScore: floatPtr(42.5), AIFeedback: "previous"})
	store.PutApplication(models.Application{ID: 1003, JobID: 1, CandidateID: 13, AppliedAt: timePtr(testNow.AddDate(0, 0, -40))})
	store.PutApplication(models.Application{ID: 1004, JobID: 1, CandidateID: 14})
}

func appIDs(apps []*models.Application) []int64 {
	out := make([]int64, 0, len(apps))
	for _, a := range apps {
		out = append(out, a.ID)
	}
	return out
}

func TestEngine_ScoreAllForJob(t *testing.T) {
	store := memory.New()
	seedPool(store)
	e := newTestEngine(t, store, nil)
	ctx := context.Background()

	ranked, err := e.ScoreAllForJob(ctx, 1)
	require.NoError(t, err)
	require.Len(t, ranked, 4)

	for _, app := range ranked {
		require.True(t, app.IsScored(), "application %d", app.ID)
	}
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].ScoreOrZero(), ranked[i].ScoreOrZero())
	}
	assert.Equal(t, int64(1001), ranked[0].ID)

	kept, _ := store.FindApplication(ctx, 1002)
	assert.Equal(t, 42.5, *kept.AIScore)
	assert.Equal(t, "previous", kept.AIFeedback)

	pending, err := store.ListUnscoredApplicationsByJob(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestEngine_ScoreAllForJob_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown job", func(t *testing.T) {
		e := newTestEngine(t, memory.New(), nil)
		_, err := e.ScoreAllForJob(ctx, 9)
		assert.True(t, errors.HasCode(err, errors.ErrCodeJobNotFound))
	})

	t.Run("missing candidate", func(t *testing.T) {
		store := memory.New()
		store.PutJob(models.Job{ID: 1})
		store.PutApplication(models.Application{ID: 1, JobID: 1, CandidateID: 404})
		e := newTestEngine(t, store, nil)

		_, err := e.ScoreAllForJob(ctx, 1)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("empty pool", func(t *testing.T) {
		store := memory.New()
		store.PutJob(models.Job{ID: 1})
		e := newTestEngine(t, store, nil)

		ranked, err := e.ScoreAllForJob(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, ranked)
	})
}

func TestEngine_ScoreAllForJob_ManyApplications(t *testing.T) {
	store := memory.New()
	store.PutJob(models.Job{ID: 1, RequiredSkills: "Go, SQL"})
	for i := int64(1); i <= 40; i++ {
		skills := "Go"
		if i%2 == 0 {
			skills = "Go, SQL"
		}
		store.PutCandidate(models.Candidate{ID: i, Skills: skills})
		store.PutApplication(models.Application{ID: 100 + i, JobID: 1, CandidateID: i})
	}
	e := newTestEngine(t, store, nil)

	ranked, err := e.ScoreAllForJob(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, ranked, 40)

	// equal scores keep ascending id order
	for i := 0; i < 20; i++ {
		assert.Equal(t, int64(100+2*(i+1)), ranked[i].ID)
	}
	for i := 20; i < 40; i++ {
		assert.Equal(t, int64(100+2*(i-20)+1), ranked[i].ID)
	}
}

func TestEngine_RescorePending(t *testing.T) {
	store := memory.New()
	seedPool(store)
	e := newTestEngine(t, store, nil)
	ctx := context.Background()

	count, err := e.RescorePending(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = e.RescorePending(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = e.RescorePending(ctx, 2)
	assert.True(t, errors.HasCode(err, errors.ErrCodeJobNotFound))
}

func TestEngine_TopCandidates(t *testing.T) {
	store := memory.New()
	store.PutJob(models.Job{ID: 1})
	store.PutApplication(models.Application{ID: 1, JobID: 1, AIScore: floatPtr(61)})
	store.PutApplication(models.Application{ID: 2, JobID: 1})
	store.PutApplication(models.Application{ID: 3, JobID: 1, AIScore: floatPtr(88.5)})
	store.PutApplication(models.Application{ID: 4, JobID: 1, AIScore: floatPtr(61)})
	store.PutApplication(models.Application{ID: 5, JobID: 1, AIScore: floatPtr(12)})
	e := newTestEngine(t, store, nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		limit    int
		expected []int64
	}{
		{"top two", 2, []int64{3, 1}},
		{"ties keep order", 3, []int64{3, 1, 4}},
		{"limit above pool excludes unscored", 10, []int64{3, 1, 4, 5}},
		{"zero limit", 0, []int64{}},
		{"negative limit", -1, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top, err := e.TopCandidates(ctx, 1, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, appIDs(top))
		})
	}

	_, err := e.TopCandidates(ctx, 2, 5)
	assert.True(t, errors.HasCode(err, errors.ErrCodeJobNotFound))
}

func TestEngine_CandidatesAboveThreshold(t *testing.T) {
	store := memory.New()
	store.PutJob(models.Job{ID: 1})
	store.PutApplication(models.Application{ID: 1, JobID: 1, AIScore: floatPtr(70)})
	store.PutApplication(models.Application{ID: 2, JobID: 1, AIScore: floatPtr(69.99)})
	store.PutApplication(models.Application{ID: 3, JobID: 1, AIScore: floatPtr(91)})
	store.PutApplication(models.Application{ID: 4, JobID: 1})
	e := newTestEngine(t, store, nil)
	ctx := context.Background()

	above, err := e.CandidatesAboveThreshold(ctx, 1, 70)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, appIDs(above))

	none, err := e.CandidatesAboveThreshold(ctx, 1, 95)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestEngine_ScoreStatistics(t *testing.T) {
	ctx := context.Background()

	t.Run("empty pool", func(t *testing.T) {
		store := memory.New()
		store.PutJob(models.Job{ID: 1})
		e := newTestEngine(t, store, nil)

		stats, err := e.ScoreStatistics(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, Statistics{}, stats)
	})

	t.Run("nothing scored", func(t *testing.T) {
		store := memory.New()
		store.PutJob(models.Job{ID: 1})
		store.PutApplication(models.Application{ID: 1, JobID: 1})
		store.PutApplication(models.Application{ID: 2, JobID: 1})
		e := newTestEngine(t, store, nil)

		stats, err := e.ScoreStatistics(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, Statistics{TotalApplications: 2}, stats)
	})

	t.Run("buckets", func(t *testing.T) {
		store := memory.New()
		store.PutJob(models.Job{ID: 1})
		for i, s := range []float64{85, 70, 45.5, 20} {
			store.PutApplication(models.Application{ID: int64(i + 1), JobID: 1, AIScore: floatPtr(s)})
		}
		store.PutApplication(models.Application{ID: 9, JobID: 1})
		e := newTestEngine(t, store, nil)

		stats, err := e.ScoreStatistics(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, Statistics{
			TotalApplications:  5,
			ScoredApplications: 4,
			AverageScore:       55.13,
			HighestScore:       85,
			LowestScore:        20,
			ExcellentMatch:     1,
			GoodMatch:          1,
			AverageMatch:       1,
			PoorMatch:          1,
		}, stats)
	})

	t.Run("unknown job", func(t *testing.T) {
		e := newTestEngine(t, memory.New(), nil)
		_, err := e.ScoreStatistics(ctx, 1)
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestSummarize_BucketEdges(t *testing.T) {
	stats := Summarize(4, []float64{80, 60, 40, 39.99})
	assert.Equal(t, 1, stats.ExcellentMatch)
	assert.Equal(t, 1, stats.GoodMatch)
	assert.Equal(t, 1, stats.AverageMatch)
	assert.Equal(t, 1, stats.PoorMatch)
	assert.Equal(t, stats.ScoredApplications,
		stats.ExcellentMatch+stats.GoodMatch+stats.AverageMatch+stats.PoorMatch)
}
