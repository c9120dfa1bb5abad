// internal/models/application.go
package models

import "time"

// Application is a candidate's submission against one job. Only AIScore,
// AIFeedback and UpdatedAt are written by the ranking engine.
type Application struct {
	ID          int64      `json:"id"`
	JobID       int64      `json:"jobId"`
	CandidateID int64      `json:"candidateId"`
	ResumeID    *int64     `json:"resumeId,omitempty"`
	AIScore     *float64   `json:"aiScore,omitempty"`
	AIFeedback  string     `json:"aiFeedback,omitempty"`
	AppliedAt   *time.Time `json:"appliedAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// IsScored reports whether the engine has scored the application at least once.
func (a *Application) IsScored() bool {
	return a != nil && a.AIScore != nil
}

// ScoreOrZero returns the score, treating unscored applications as 0.
func (a *Application) ScoreOrZero() float64 {
	if a == nil || a.AIScore == nil {
		return 0
	}
	return *a.AIScore
}
