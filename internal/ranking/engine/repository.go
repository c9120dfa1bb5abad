package engine

import (
	"context"
	"time"

	"ranking-workers/internal/models"
	"ranking-workers/internal/ranking/scoring"
)

// Repository is the persistence boundary of the engine.
//
// Find* methods for jobs, candidates and applications return a not-found
// StandardError when the row is missing. Resume lookups return (nil, nil)
// instead, since a resume is optional for scoring. List methods return
// applications in a stable repository order (ascending id).
type Repository interface {
	FindJob(ctx context.Context, jobID int64) (*models.Job, error)
	FindCandidate(ctx context.Context, candidateID int64) (*models.Candidate, error)
	FindApplication(ctx context.Context, applicationID int64) (*models.Application, error)
	FindResume(ctx context.Context, resumeID int64) (*models.Resume, error)
	FindPrimaryResume(ctx context.Context, candidateID int64) (*models.Resume, error)

	ListApplicationsByJob(ctx context.Context, jobID int64) ([]*models.Application, error)
	ListUnscoredApplicationsByJob(ctx context.Context, jobID int64) ([]*models.Application, error)
	// ListApplicationsAboveScore returns applications with a score >= threshold,
	// highest score first.
	ListApplicationsAboveScore(ctx context.Context, jobID int64, threshold float64) ([]*models.Application, error)

	SaveScore(ctx context.Context, applicationID int64, score float64, feedback string, updatedAt time.Time) error
}

// ScoreEvent describes one persisted score.
type ScoreEvent struct {
	ApplicationID int64     `json:"applicationId"`
	JobID         int64     `json:"jobId"`
	CandidateID   int64     `json:"candidateId"`
	ResumeID      *int64    `json:"resumeId,omitempty"`
	Score         float64   `json:"score"`
	Feedback      string    `json:"feedback"`
	Factors       Breakdown `json:"factors"`
	ScoredAt      time.Time `json:"scoredAt"`
}

// ScoreObserver is notified after a score has been saved. Failures are
// logged by the engine and never undo the save.
type ScoreObserver interface {
	ScoreSaved(ctx context.Context, event ScoreEvent) error
}

// Breakdown keeps every factor that went into a score.
type Breakdown struct {
	Skill         scoring.Factor `json:"skill"`
	Experience    scoring.Factor `json:"experience"`
	Education     scoring.Factor `json:"education"`
	ResumeQuality scoring.Factor `json:"resumeQuality"`
	Recency       scoring.Factor `json:"recency"`
}
