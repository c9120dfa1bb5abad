package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureYAML = `
jobs:
  - id: 1
    title: Backend Engineer
    requiredskills: Go, PostgreSQL
    experiencemin: 2
candidates:
  - id: 10
    skills: golang, postgres
    totalexperience: 3.5
resumes:
  - id: 100
    candidateid: 10
    extractedskills: docker
    isprimary: true
applications:
  - id: 1000
    jobid: 1
    candidateid: 10
    appliedat: 2024-06-01T09:30:00Z
`

func TestStore_LoadFixtures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o600))

	s := New()
	require.NoError(t, s.LoadFixtures(path))
	ctx := context.Background()

	job, err := s.FindJob(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Go, PostgreSQL", job.RequiredSkills)
	assert.Equal(t, 2, *job.ExperienceMin)
	assert.Nil(t, job.ExperienceMax)

	candidate, err := s.FindCandidate(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 3.5, *candidate.TotalExperience)

	resume, err := s.FindPrimaryResume(ctx, 10)
	require.NoError(t, err)
	require.NotNil(t, resume)
	assert.Equal(t, int64(100), resume.ID)

	app, err := s.FindApplication(ctx, 1000)
	require.NoError(t, err)
	assert.False(t, app.IsScored())
	assert.Equal(t, time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC), app.AppliedAt.UTC())
}

func TestStore_LoadFixtures_Errors(t *testing.T) {
	s := New()
	assert.Error(t, s.LoadFixtures(filepath.Join(t.TempDir(), "missing.yaml")))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jobs: [id: {"), 0o600))
	assert.Error(t, s.LoadFixtures(path))
}
