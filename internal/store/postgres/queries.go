package postgres

const (
	selectJob = `
		SELECT id, title, required_skills, experience_min, experience_max
		FROM jobs
		WHERE id = $1`

	selectCandidate = `
		SELECT id, skills, total_experience, education
		FROM candidates
		WHERE id = $1`

	selectResume = `
		SELECT id, candidate_id, extracted_skills, extracted_education, parsed_text, is_primary
		FROM resumes
		WHERE id = $1`

	// Primary resume first, then the oldest upload.
	selectPrimaryResume = `
		SELECT id, candidate_id, extracted_skills, extracted_education, parsed_text, is_primary
		FROM resumes
		WHERE candidate_id = $1
		ORDER BY is_primary DESC, id ASC
		LIMIT 1`

	applicationColumns = `id, job_id, candidate_id, resume_id, ai_score, ai_feedback, applied_at, updated_at`

	selectApplication = `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE id = $1`

	selectApplicationsByJob = `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE job_id = $1
		ORDER BY id`

	selectUnscoredApplicationsByJob = `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE job_id = $1 AND ai_score IS NULL
		ORDER BY id`

	selectApplicationsAboveScore = `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE job_id = $1 AND ai_score >= $2
		ORDER BY ai_score DESC, id`

	updateApplicationScore = `
		UPDATE applications
		SET ai_score = $2, ai_feedback = $3, updated_at = $4
		WHERE id = $1`
)
