// Package engine combines the factor scorers into a persisted 0-100 score
// per application and answers ranking queries over a job's pool.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ranking-workers/internal/common/logger"
	"ranking-workers/internal/common/metrics"
	"ranking-workers/internal/models"
	"ranking-workers/internal/ranking/scoring"
	"ranking-workers/internal/ranking/skills"
)

type Config struct {
	// Concurrency bounds how many applications a bulk operation scores at
	// once. Values below one mean sequential scoring.
	Concurrency int
	// Now is the clock used for recency and UpdatedAt. Defaults to time.Now.
	Now      func() time.Time
	Observer ScoreObserver
	Tracer   trace.Tracer
}

type Engine struct {
	repo        Repository
	matcher     *skills.Matcher
	observer    ScoreObserver
	tracer      trace.Tracer
	logger      logger.Logger
	now         func() time.Time
	concurrency int
}

// New builds an Engine. A nil matcher uses the built-in synonym table.
func New(config *Config, repo Repository, matcher *skills.Matcher, log logger.Logger) *Engine {
	if config == nil {
		config = &Config{}
	}
	if matcher == nil {
		matcher = skills.NewMatcher(nil)
	}

	e := &Engine{
		repo:        repo,
		matcher:     matcher,
		observer:    config.Observer,
		tracer:      config.Tracer,
		logger:      log.WithFields(map[string]interface{}{"component": "ranking-engine"}),
		now:         config.Now,
		concurrency: config.Concurrency,
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer("ranking-workers/engine")
	}
	if e.concurrency < 1 {
		e.concurrency = 1
	}
	return e
}

// Matcher exposes the skill matcher the engine scores with.
func (e *Engine) Matcher() *skills.Matcher {
	return e.matcher
}

// ScoreApplication computes, persists and returns the score of one application.
func (e *Engine) ScoreApplication(ctx context.Context, applicationID int64) (score float64, err error) {
	ctx, span := e.startSpan(ctx, "ScoreApplication", attribute.Int64("application.id", applicationID))
	defer func() { endSpan(span, err) }()
	defer observeDuration("score_application", time.Now())

	app, err := e.repo.FindApplication(ctx, applicationID)
	if err != nil {
		return 0, err
	}
	job, err := e.repo.FindJob(ctx, app.JobID)
	if err != nil {
		return 0, err
	}

	if err := e.scoreAndSave(ctx, job, app); err != nil {
		return 0, err
	}
	return *app.AIScore, nil
}

// Evaluate computes the factors for an application without saving anything.
func (e *Engine) Evaluate(ctx context.Context, job *models.Job, app *models.Application) (Breakdown, error) {
	candidate, err := e.repo.FindCandidate(ctx, app.CandidateID)
	if err != nil {
		return Breakdown{}, err
	}
	resume, err := e.resolveResume(ctx, app)
	if err != nil {
		return Breakdown{}, err
	}
	return e.breakdown(job, candidate, resume, app), nil
}

func (e *Engine) breakdown(job *models.Job, candidate *models.Candidate, resume *models.Resume, app *models.Application) Breakdown {
	return Breakdown{
		Skill:         scoring.SkillScore(e.matcher, job, candidate, resume),
		Experience:    scoring.ExperienceScore(job, candidate),
		Education:     scoring.EducationScore(candidate, resume),
		ResumeQuality: scoring.ResumeQualityScore(resume),
		Recency:       scoring.RecencyScore(app.AppliedAt, e.now()),
	}
}

// scoreAndSave evaluates app against job, writes the result through the
// repository and then updates app in place. app is left untouched on error.
func (e *Engine) scoreAndSave(ctx context.Context, job *models.Job, app *models.Application) error {
	factors, err := e.Evaluate(ctx, job, app)
	if err != nil {
		metrics.ApplicationsScored.WithLabelValues("error").Inc()
		return err
	}

	score := factors.Combine()
	feedback := factors.Feedback()
	updatedAt := e.now().UTC()

	if err := e.repo.SaveScore(ctx, app.ID, score, feedback, updatedAt); err != nil {
		metrics.ApplicationsScored.WithLabelValues("error").Inc()
		return fmt.Errorf("save score for application %d: %w", app.ID, err)
	}

	app.AIScore = &score
	app.AIFeedback = feedback
	app.UpdatedAt = updatedAt

	metrics.ApplicationsScored.WithLabelValues("success").Inc()
	metrics.ApplicationScore.Observe(score)

	e.logger.Debug("application scored", map[string]interface{}{
		"applicationId": app.ID,
		"jobId":         job.ID,
		"candidateId":   app.CandidateID,
		"score":         score,
	})

	e.notify(ctx, ScoreEvent{
		ApplicationID: app.ID,
		JobID:         app.JobID,
		CandidateID:   app.CandidateID,
		ResumeID:      app.ResumeID,
		Score:         score,
		Feedback:      feedback,
		Factors:       factors,
		ScoredAt:      updatedAt,
	})
	return nil
}

func (e *Engine) notify(ctx context.Context, event ScoreEvent) {
	if e.observer == nil {
		return
	}
	if err := e.observer.ScoreSaved(ctx, event); err != nil {
		metrics.ScoreIndexFailures.Inc()
		e.logger.Warn("score observer failed", map[string]interface{}{
			"applicationId": event.ApplicationID,
			"error":         err,
		})
	}
}

// resolveResume picks the application's own resume, falling back to the
// candidate's primary resume.
func (e *Engine) resolveResume(ctx context.Context, app *models.Application) (*models.Resume, error) {
	if app.ResumeID != nil {
		resume, err := e.repo.FindResume(ctx, *app.ResumeID)
		if err != nil {
			return nil, err
		}
		if resume != nil {
			return resume, nil
		}
	}
	return e.repo.FindPrimaryResume(ctx, app.CandidateID)
}

func (e *Engine) startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return e.tracer.Start(ctx, "engine."+op, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func observeDuration(op string, start time.Time) {
	metrics.ScoringDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
