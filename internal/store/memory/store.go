// Package memory is an in-process engine.Repository used by tests and by
// local runs with ranking.store set to "memory".
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"ranking-workers/internal/common/errors"
	"ranking-workers/internal/models"
)

// Store guards every map with one RWMutex; concurrent SaveScore calls on the
// same application are last-write-wins.
type Store struct {
	mu           sync.RWMutex
	jobs         map[int64]models.Job
	candidates   map[int64]models.Candidate
	resumes      map[int64]models.Resume
	applications map[int64]models.Application
}

func New() *Store {
	return &Store{
		jobs:         make(map[int64]models.Job),
		candidates:   make(map[int64]models.Candidate),
		resumes:      make(map[int64]models.Resume),
		applications: make(map[int64]models.Application),
	}
}

func (s *Store) PutJob(job models.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *Store) PutCandidate(candidate models.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[candidate.ID] = candidate
}

func (s *Store) PutResume(resume models.Resume) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumes[resume.ID] = resume
}

func (s *Store) PutApplication(app models.Application) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applications[app.ID] = copyApplication(app)
}

func (s *Store) FindJob(_ context.Context, jobID int64) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil, errors.NewJobNotFoundError(jobID)
	}
	return &job, nil
}

func (s *Store) FindCandidate(_ context.Context, candidateID int64) (*models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidate, ok := s.candidates[candidateID]
	if !ok {
		return nil, errors.NewCandidateNotFoundError(candidateID)
	}
	return &candidate, nil
}

func (s *Store) FindApplication(_ context.Context, applicationID int64) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	app, ok := s.applications[applicationID]
	if !ok {
		return nil, errors.NewApplicationNotFoundError(applicationID)
	}
	out := copyApplication(app)
	return &out, nil
}

func (s *Store) FindResume(_ context.Context, resumeID int64) (*models.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resume, ok := s.resumes[resumeID]
	if !ok {
		return nil, nil
	}
	return &resume, nil
}

// FindPrimaryResume returns the candidate's lowest-id primary resume, else
// their lowest-id resume, else nil.
func (s *Store) FindPrimaryResume(_ context.Context, candidateID int64) (*models.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *models.Resume
	for _, r := range s.resumes {
		if r.CandidateID != candidateID {
			continue
		}
		switch {
		case best == nil:
			best = &r
		case r.IsPrimary != best.IsPrimary:
			if r.IsPrimary {
				best = &r
			}
		case r.ID < best.ID:
			best = &r
		}
	}
	return best, nil
}

func (s *Store) ListApplicationsByJob(_ context.Context, jobID int64) ([]*models.Application, error) {
	return s.list(func(a *models.Application) bool { return a.JobID == jobID }), nil
}

func (s *Store) ListUnscoredApplicationsByJob(_ context.Context, jobID int64) ([]*models.Application, error) {
	return s.list(func(a *models.Application) bool { return a.JobID == jobID && a.AIScore == nil }), nil
}

func (s *Store) ListApplicationsAboveScore(_ context.Context, jobID int64, threshold float64) ([]*models.Application, error) {
	apps := s.list(func(a *models.Application) bool {
		return a.JobID == jobID && a.AIScore != nil && *a.AIScore >= threshold
	})
	sort.SliceStable(apps, func(i, j int) bool {
		return *apps[i].AIScore > *apps[j].AIScore
	})
	return apps, nil
}

func (s *Store) SaveScore(_ context.Context, applicationID int64, score float64, feedback string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.applications[applicationID]
	if !ok {
		return errors.NewApplicationNotFoundError(applicationID)
	}
	app.AIScore = &score
	app.AIFeedback = feedback
	app.UpdatedAt = updatedAt
	s.applications[applicationID] = app
	return nil
}

// list returns copies of the matching applications ordered by id.
func (s *Store) list(match func(*models.Application) bool) []*models.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Application, 0)
	for _, app := range s.applications {
		if !match(&app) {
			continue
		}
		c := copyApplication(app)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func copyApplication(app models.Application) models.Application {
	if app.ResumeID != nil {
		id := *app.ResumeID
		app.ResumeID = &id
	}
	if app.AIScore != nil {
		score := *app.AIScore
		app.AIScore = &score
	}
	if app.AppliedAt != nil {
		at := *app.AppliedAt
		app.AppliedAt = &at
	}
	return app
}
