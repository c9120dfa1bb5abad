// internal/models/job.go
package models

// Job is the posting applications are scored against.
type Job struct {
	ID             int64  `json:"id"`
	Title          string `json:"title,omitempty"`
	RequiredSkills string `json:"requiredSkills"`
	ExperienceMin  *int   `json:"experienceMin,omitempty"`
	ExperienceMax  *int   `json:"experienceMax,omitempty"`
}

type Candidate struct {
	ID              int64    `json:"id"`
	Skills          string   `json:"skills"`
	TotalExperience *float64 `json:"totalExperience,omitempty"`
	Education       string   `json:"education,omitempty"`
}

// Resume carries text already extracted from an uploaded document.
type Resume struct {
	ID                 int64  `json:"id"`
	CandidateID        int64  `json:"candidateId"`
	ExtractedSkills    string `json:"extractedSkills,omitempty"`
	ExtractedEducation string `json:"extractedEducation,omitempty"`
	ParsedText         string `json:"parsedText,omitempty"`
	IsPrimary          bool   `json:"isPrimary"`
}
