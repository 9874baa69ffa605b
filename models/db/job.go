package dbmodels

import (
	"talentflow-backend/models"
)

// Job is a stored job posting. Order is the display rank over the whole
// collection: dense, zero-based, unique.
type Job struct {
	BaseModel
	Title        string           `json:"title"`
	Slug         string           `json:"slug"`
	Status       models.JobStatus `json:"status"`
	Tags         []string         `json:"tags"`
	Order        int              `json:"order"`
	Description  string           `json:"description,omitempty"`
	Requirements []string         `json:"requirements,omitempty"`
}
