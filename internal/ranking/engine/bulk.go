package engine

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"ranking-workers/internal/models"
)

// ScoreAllForJob scores every application of the job that has no score yet
// and returns the whole pool ranked by score, highest first. Unscored
// applications rank as zero; ties keep repository order.
func (e *Engine) ScoreAllForJob(ctx context.Context, jobID int64) (ranked []*models.Application, err error) {
	ctx, span := e.startSpan(ctx, "ScoreAllForJob", attribute.Int64("job.id", jobID))
	defer func() { endSpan(span, err) }()
	defer observeDuration("score_all_for_job", time.Now())

	job, err := e.repo.FindJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	apps, err := e.repo.ListApplicationsByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	pending := make([]*models.Application, 0, len(apps))
	for _, app := range apps {
		if !app.IsScored() {
			pending = append(pending, app)
		}
	}

	log := e.logger.WithFields(map[string]interface{}{
		"runId": uuid.NewString(),
		"jobId": jobID,
	})
	log.Info("scoring applications for job", map[string]interface{}{
		"total":   len(apps),
		"pending": len(pending),
	})

	if err := e.scoreBatch(ctx, job, pending); err != nil {
		log.Error("bulk scoring failed", map[string]interface{}{"error": err})
		return nil, err
	}

	sortByScoreDesc(apps)
	return apps, nil
}

// RescorePending scores every application of the job whose score is missing
// and returns how many were scored.
func (e *Engine) RescorePending(ctx context.Context, jobID int64) (count int, err error) {
	ctx, span := e.startSpan(ctx, "RescorePending", attribute.Int64("job.id", jobID))
	defer func() { endSpan(span, err) }()
	defer observeDuration("rescore_pending", time.Now())

	job, err := e.repo.FindJob(ctx, jobID)
	if err != nil {
		return 0, err
	}
	pending, err := e.repo.ListUnscoredApplicationsByJob(ctx, jobID)
	if err != nil {
		return 0, err
	}

	if err := e.scoreBatch(ctx, job, pending); err != nil {
		return 0, err
	}

	e.logger.Info("re-scored pending applications", map[string]interface{}{
		"jobId": jobID,
		"count": len(pending),
	})
	return len(pending), nil
}

// TopCandidates returns up to limit scored applications, highest first.
func (e *Engine) TopCandidates(ctx context.Context, jobID int64, limit int) ([]*models.Application, error) {
	if _, err := e.repo.FindJob(ctx, jobID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []*models.Application{}, nil
	}

	apps, err := e.repo.ListApplicationsByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	scored := make([]*models.Application, 0, len(apps))
	for _, app := range apps {
		if app.IsScored() {
			scored = append(scored, app)
		}
	}
	sortByScoreDesc(scored)

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// CandidatesAboveThreshold returns applications scoring at least threshold,
// highest first.
func (e *Engine) CandidatesAboveThreshold(ctx context.Context, jobID int64, threshold float64) ([]*models.Application, error) {
	if _, err := e.repo.FindJob(ctx, jobID); err != nil {
		return nil, err
	}
	apps, err := e.repo.ListApplicationsAboveScore(ctx, jobID, threshold)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []*models.Application{}
	}
	return apps, nil
}

// scoreBatch scores apps with at most e.concurrency in flight. Each goroutine
// owns exactly one application. The first failure cancels the rest; scores
// already saved stay saved.
func (e *Engine) scoreBatch(ctx context.Context, job *models.Job, apps []*models.Application) error {
	if len(apps) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for _, app := range apps {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return e.scoreAndSave(gctx, job, app)
		})
	}
	return g.Wait()
}

func sortByScoreDesc(apps []*models.Application) {
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].ScoreOrZero() > apps[j].ScoreOrZero()
	})
}
