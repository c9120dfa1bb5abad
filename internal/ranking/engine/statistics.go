package engine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"ranking-workers/internal/ranking/scoring"
)

// Score bucket lower bounds.
const (
	ExcellentMatchFrom = 80.0
	GoodMatchFrom      = 60.0
	AverageMatchFrom   = 40.0
)

// Statistics summarizes the scored part of a job's application pool.
type Statistics struct {
	TotalApplications  int     `json:"totalApplications"`
	ScoredApplications int     `json:"scoredApplications"`
	AverageScore       float64 `json:"averageScore"`
	HighestScore       float64 `json:"highestScore"`
	LowestScore        float64 `json:"lowestScore"`
	ExcellentMatch     int     `json:"excellentMatch"`
	GoodMatch          int     `json:"goodMatch"`
	AverageMatch       int     `json:"averageMatch"`
	PoorMatch          int     `json:"poorMatch"`
}

// ScoreStatistics aggregates the job's scores. Unscored applications count
// towards TotalApplications only.
func (e *Engine) ScoreStatistics(ctx context.Context, jobID int64) (stats Statistics, err error) {
	ctx, span := e.startSpan(ctx, "ScoreStatistics", attribute.Int64("job.id", jobID))
	defer func() { endSpan(span, err) }()
	defer observeDuration("score_statistics", time.Now())

	if _, err := e.repo.FindJob(ctx, jobID); err != nil {
		return Statistics{}, err
	}
	apps, err := e.repo.ListApplicationsByJob(ctx, jobID)
	if err != nil {
		return Statistics{}, err
	}

	scores := make([]float64, 0, len(apps))
	for _, app := range apps {
		if app.IsScored() {
			scores = append(scores, *app.AIScore)
		}
	}
	return Summarize(len(apps), scores), nil
}

// Summarize builds Statistics for a pool of total applications of which
// scores are the scored ones.
func Summarize(total int, scores []float64) Statistics {
	stats := Statistics{TotalApplications: total}
	if len(scores) == 0 {
		return stats
	}

	sum := 0.0
	highest, lowest := scores[0], scores[0]
	for _, s := range scores {
		sum += s
		if s > highest {
			highest = s
		}
		if s < lowest {
			lowest = s
		}

		switch {
		case s >= ExcellentMatchFrom:
			stats.ExcellentMatch++
		case s >= GoodMatchFrom:
			stats.GoodMatch++
		case s >= AverageMatchFrom:
			stats.AverageMatch++
		default:
			stats.PoorMatch++
		}
	}

	stats.ScoredApplications = len(scores)
	stats.AverageScore = scoring.RoundHalfUp(sum/float64(len(scores)), 2)
	stats.HighestScore = scoring.RoundHalfUp(highest, 2)
	stats.LowestScore = scoring.RoundHalfUp(lowest, 2)
	return stats
}
