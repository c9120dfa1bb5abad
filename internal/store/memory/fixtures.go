package memory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ranking-workers/internal/models"
)

// Fixtures is the YAML layout accepted by LoadFixtures.
type Fixtures struct {
	Jobs         []models.Job         `yaml:"jobs"`
	Candidates   []models.Candidate   `yaml:"candidates"`
	Resumes      []models.Resume      `yaml:"resumes"`
	Applications []models.Application `yaml:"applications"`
}

// LoadFixtures reads a YAML fixture file into s. Keys are the lowercased
// field names of the models (requiredskills, candidateid, ...).
func (s *Store) LoadFixtures(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixtures %s: %w", path, err)
	}

	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse fixtures %s: %w", path, err)
	}
	s.Seed(f)
	return nil
}

func (s *Store) Seed(f Fixtures) {
	for _, job := range f.Jobs {
		s.PutJob(job)
	}
	for _, candidate := range f.Candidates {
		s.PutCandidate(candidate)
	}
	for _, resume := range f.Resumes {
		s.PutResume(resume)
	}
	for _, app := range f.Applications {
		s.PutApplication(app)
	}
}
