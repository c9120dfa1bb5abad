// Package postgres implements the ranking repository on database/sql with
// the lib/pq driver.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	stderrors "errors"
	"fmt"
	"time"

	"ranking-workers/internal/common/errors"
	"ranking-workers/internal/common/logger"
	"ranking-workers/internal/models"
)

// Schema creates the tables the store reads and writes.
//
//go:embed schema.sql
var Schema string

type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func New(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"store": "postgres"}),
	}
}

// Migrate applies Schema. Every statement is idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply ranking schema: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *Store) FindJob(ctx context.Context, jobID int64) (*models.Job, error) {
	var (
		job            models.Job
		title, skills  sql.NullString
		expMin, expMax sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, selectJob, jobID).Scan(&job.ID, &title, &skills, &expMin, &expMax)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewJobNotFoundError(jobID)
	}
	if err != nil {
		return nil, s.queryError("find_job", err)
	}

	job.Title = title.String
	job.RequiredSkills = skills.String
	job.ExperienceMin = intOrNil(expMin)
	job.ExperienceMax = intOrNil(expMax)
	return &job, nil
}

func (s *Store) FindCandidate(ctx context.Context, candidateID int64) (*models.Candidate, error) {
	var (
		candidate         models.Candidate
		skills, education sql.NullString
		experience        sql.NullFloat64
	)
	err := s.db.QueryRowContext(ctx, selectCandidate, candidateID).Scan(&candidate.ID, &skills, &experience, &education)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewCandidateNotFoundError(candidateID)
	}
	if err != nil {
		return nil, s.queryError("find_candidate", err)
	}

	candidate.Skills = skills.String
	candidate.Education = education.String
	if experience.Valid {
		v := experience.Float64
		candidate.TotalExperience = &v
	}
	return &candidate, nil
}

func (s *Store) FindApplication(ctx context.Context, applicationID int64) (*models.Application, error) {
	app, err := scanApplication(s.db.QueryRowContext(ctx, selectApplication, applicationID))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewApplicationNotFoundError(applicationID)
	}
	if err != nil {
		return nil, s.queryError("find_application", err)
	}
	return app, nil
}

func (s *Store) FindResume(ctx context.Context, resumeID int64) (*models.Resume, error) {
	resume, err := scanResume(s.db.QueryRowContext(ctx, selectResume, resumeID))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.queryError("find_resume", err)
	}
	return resume, nil
}

func (s *Store) FindPrimaryResume(ctx context.Context, candidateID int64) (*models.Resume, error) {
	resume, err := scanResume(s.db.QueryRowContext(ctx, selectPrimaryResume, candidateID))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.queryError("find_primary_resume", err)
	}
	return resume, nil
}

func (s *Store) ListApplicationsByJob(ctx context.Context, jobID int64) ([]*models.Application, error) {
	return s.listApplications(ctx, "list_applications", selectApplicationsByJob, jobID)
}

func (s *Store) ListUnscoredApplicationsByJob(ctx context.Context, jobID int64) ([]*models.Application, error) {
	return s.listApplications(ctx, "list_unscored_applications", selectUnscoredApplicationsByJob, jobID)
}

func (s *Store) ListApplicationsAboveScore(ctx context.Context, jobID int64, threshold float64) ([]*models.Application, error) {
	return s.listApplications(ctx, "list_applications_above_score", selectApplicationsAboveScore, jobID, threshold)
}

// SaveScore updates only the scoring columns. A missing row is reported as
// APPLICATION_NOT_FOUND.
func (s *Store) SaveScore(ctx context.Context, applicationID int64, score float64, feedback string, updatedAt time.Time) error {
	res, err := s.db.ExecContext(ctx, updateApplicationScore, applicationID, score, feedback, updatedAt)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return errors.NewQueryTimeoutError("save_score")
		}
		s.logger.Error("Score update failed", map[string]interface{}{
			"applicationId": applicationID,
			"error":         err,
		})
		return errors.NewDatabaseUpdateFailedError(applicationID, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return errors.NewDatabaseUpdateFailedError(applicationID, err)
	}
	if rows == 0 {
		return errors.NewApplicationNotFoundError(applicationID)
	}
	return nil
}

func (s *Store) listApplications(ctx context.Context, queryType, query string, args ...interface{}) ([]*models.Application, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.queryError(queryType, err)
	}
	defer rows.Close()

	apps := make([]*models.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, s.queryError(queryType, err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, s.queryError(queryType, err)
	}
	return apps, nil
}

func (s *Store) queryError(queryType string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewQueryTimeoutError(queryType)
	}
	s.logger.Error("Query failed", map[string]interface{}{
		"queryType": queryType,
		"error":     err,
	})
	return errors.NewQueryExecutionFailedError(queryType, err)
}

func scanApplication(row rowScanner) (*models.Application, error) {
	var (
		app       models.Application
		resumeID  sql.NullInt64
		score     sql.NullFloat64
		feedback  sql.NullString
		appliedAt sql.NullTime
	)
	err := row.Scan(&app.ID, &app.JobID, &app.CandidateID, &resumeID, &score, &feedback, &appliedAt, &app.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if resumeID.Valid {
		id := resumeID.Int64
		app.ResumeID = &id
	}
	if score.Valid {
		v := score.Float64
		app.AIScore = &v
	}
	if appliedAt.Valid {
		at := appliedAt.Time
		app.AppliedAt = &at
	}
	app.AIFeedback = feedback.String
	return &app, nil
}

func scanResume(row rowScanner) (*models.Resume, error) {
	var (
		resume                    models.Resume
		skills, education, parsed sql.NullString
	)
	err := row.Scan(&resume.ID, &resume.CandidateID, &skills, &education, &parsed, &resume.IsPrimary)
	if err != nil {
		return nil, err
	}

	resume.ExtractedSkills = skills.String
	resume.ExtractedEducation = education.String
	resume.ParsedText = parsed.String
	return &resume, nil
}

func intOrNil(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
