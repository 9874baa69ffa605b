package dbmodels

import (
	"time"

	"talentflow-backend/models"
)

type Candidate struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Email     string                `json:"email"`
	Stage     models.CandidateStage `json:"stage"`
	JobID     string                `json:"jobId"`
	AppliedAt time.Time             `json:"appliedAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
	Notes     []CandidateNote       `json:"notes,omitempty"`
}

// CandidateNote is append-only; existing notes are never edited.
type CandidateNote struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Author    string    `json:"author"`
}
