package postgres

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ranking-workers/internal/common/errors"
	"ranking-workers/internal/common/logger"
	"ranking-workers/internal/ranking/engine"
)

var _ engine.Repository = (*Store)(nil)

var applicationCols = []string{"id", "job_id", "candidate_id", "resume_id", "ai_score", "ai_feedback", "applied_at", "updated_at"}

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, logger.NewTestLogger(t)), mock
}

func TestStore_FindJob(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "title", "required_skills", "experience_min", "experience_max"}).
		AddRow(int64(10), "Backend Engineer", "Go, PostgreSQL", int64(3), nil)
	mock.ExpectQuery(`SELECT (.+) FROM jobs WHERE id = \$1`).
		WithArgs(int64(10)).
		WillReturnRows(rows)

	job, err := store.FindJob(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", job.Title)
	assert.Equal(t, "Go, PostgreSQL", job.RequiredSkills)
	require.NotNil(t, job.ExperienceMin)
	assert.Equal(t, 3, *job.ExperienceMin)
	assert.Nil(t, job.ExperienceMax)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FindJob_NotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM jobs WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "required_skills", "experience_min", "experience_max"}))

	_, err := store.FindJob(context.Background(), 99)
	assert.True(t, errors.HasCode(err, errors.ErrCodeJobNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FindCandidate(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "skills", "total_experience", "education"}).
		AddRow(int64(5), "go, docker", 4.5, nil)
	mock.ExpectQuery(`SELECT (.+) FROM candidates WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	candidate, err := store.FindCandidate(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "go, docker", candidate.Skills)
	require.NotNil(t, candidate.TotalExperience)
	assert.Equal(t, 4.5, *candidate.TotalExperience)
	assert.Empty(t, candidate.Education)
}

func TestStore_FindApplication(t *testing.T) {
	store, mock := newMockStore(t)
	updated := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(applicationCols).
		AddRow(int64(7), int64(10), int64(5), nil, nil, nil, nil, updated)
	mock.ExpectQuery(`SELECT (.+) FROM applications WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	app, err := store.FindApplication(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(10), app.JobID)
	assert.Nil(t, app.ResumeID)
	assert.False(t, app.IsScored())
	assert.Nil(t, app.AppliedAt)
	assert.Equal(t, updated, app.UpdatedAt)
}

func TestStore_FindApplication_NotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM applications WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(applicationCols))

	_, err := store.FindApplication(context.Background(), 7)
	assert.True(t, errors.HasCode(err, errors.ErrCodeApplicationNotFound))
}

func TestStore_FindPrimaryResume(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "candidate_id", "extracted_skills", "extracted_education", "parsed_text", "is_primary"}).
		AddRow(int64(3), int64(5), "kubernetes", "Master of Science", nil, true)
	mock.ExpectQuery(`SELECT (.+) FROM resumes WHERE candidate_id = \$1 ORDER BY is_primary DESC, id ASC LIMIT 1`).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	resume, err := store.FindPrimaryResume(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, resume)
	assert.Equal(t, int64(3), resume.ID)
	assert.True(t, resume.IsPrimary)
	assert.Equal(t, "Master of Science", resume.ExtractedEducation)
	assert.Empty(t, resume.ParsedText)
}

func TestStore_FindResume_Missing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM resumes WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "candidate_id", "extracted_skills", "extracted_education", "parsed_text", "is_primary"}))

	resume, err := store.FindResume(context.Background(), 42)
	assert.NoError(t, err)
	assert.Nil(t, resume)
}

func TestStore_ListApplicationsAboveScore(t *testing.T) {
	store, mock := newMockStore(t)
	updated := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	applied := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(applicationCols).
		AddRow(int64(2), int64(10), int64(6), int64(9), 91.5, "Skills: ...", applied, updated).
		AddRow(int64(1), int64(10), int64(5), nil, 75.0, "Skills: ...", nil, updated)
	mock.ExpectQuery(`SELECT (.+) FROM applications WHERE job_id = \$1 AND ai_score >= \$2 ORDER BY ai_score DESC, id`).
		WithArgs(int64(10), 70.0).
		WillReturnRows(rows)

	apps, err := store.ListApplicationsAboveScore(context.Background(), 10, 70)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, int64(2), apps[0].ID)
	assert.Equal(t, 91.5, *apps[0].AIScore)
	require.NotNil(t, apps[0].ResumeID)
	assert.Equal(t, int64(9), *apps[0].ResumeID)
	assert.Equal(t, applied, *apps[0].AppliedAt)
	assert.Equal(t, 75.0, apps[1].ScoreOrZero())
}

func TestStore_ListUnscoredApplicationsByJob_Empty(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM applications WHERE job_id = \$1 AND ai_score IS NULL ORDER BY id`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows(applicationCols))

	apps, err := store.ListUnscoredApplicationsByJob(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, apps)
	assert.Empty(t, apps)
}

func TestStore_ListApplicationsByJob_QueryFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM applications WHERE job_id = \$1 ORDER BY id`).
		WithArgs(int64(10)).
		WillReturnError(stderrors.New("connection refused"))

	_, err := store.ListApplicationsByJob(context.Background(), 10)
	assert.True(t, errors.HasCode(err, errors.ErrCodeQueryExecutionFailed))
}

func TestStore_FindJob_Timeout(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM jobs WHERE id = \$1`).
		WithArgs(int64(10)).
		WillReturnError(context.DeadlineExceeded)

	_, err := store.FindJob(context.Background(), 10)
	assert.True(t, errors.HasCode(err, errors.ErrCodeQueryTimeout))
}

func TestStore_SaveScore(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		result   func(*sqlmock.ExpectedExec)
		wantCode errors.ErrorCode
	}{
		{
			name:   "updated",
			result: func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 1)) },
		},
		{
			name:     "no such application",
			result:   func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 0)) },
			wantCode: errors.ErrCodeApplicationNotFound,
		},
		{
			name:     "write failure",
			result:   func(e *sqlmock.ExpectedExec) { e.WillReturnError(stderrors.New("deadlock detected")) },
			wantCode: errors.ErrCodeDatabaseUpdateFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)

			exec := mock.ExpectExec(`UPDATE applications SET ai_score = \$2, ai_feedback = \$3, updated_at = \$4 WHERE id = \$1`).
				WithArgs(int64(7), 88.0, "Strong match", now)
			tt.result(exec)

			err := store.SaveScore(context.Background(), 7, 88.0, "Strong match", now)
			if tt.wantCode == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.HasCode(err, tt.wantCode), "got %v", err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_Migrate(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS jobs`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Migrate(context.Background()))
	assert.Contains(t, Schema, "CREATE TABLE IF NOT EXISTS applications")
	assert.NoError(t, mock.ExpectationsWereMet())
}
