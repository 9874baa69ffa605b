package jobapimodels

import (
	"talentflow-backend/apperrors"
	"talentflow-backend/models"
	apimodels "talentflow-backend/models/api"
)

// JobData is the create payload. Slug is optional; it is derived from the
// title when absent and de-duplicated either way.
type JobData struct {
	Title        string           `json:"title" validate:"required,min=1"`
	Slug         string           `json:"slug"`
	Status       models.JobStatus `json:"status"`
	Tags         []string         `json:"tags"`
	Description  string           `json:"description"`
	Requirements []string         `json:"requirements"`
}

func (d JobData) Validate() error {
	if err := apimodels.Validate(d); err != nil {
		return err
	}
	if d.Status != "" && !d.Status.IsValid() {
		return apperrors.NewValidation("unknown job status %q", d.Status)
	}
	return nil
}

// JobPatch carries a partial update; nil fields are left untouched.
type JobPatch struct {
	Title        *string           `json:"title"`
	Slug         *string           `json:"slug"`
	Status       *models.JobStatus `json:"status"`
	Tags         *[]string         `json:"tags"`
	Description  *string           `json:"description"`
	Requirements *[]string         `json:"requirements"`
}

func (p JobPatch) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return apperrors.NewValidation("title must not be empty")
	}
	if p.Status != nil && !p.Status.IsValid() {
		return apperrors.NewValidation("unknown job status %q", *p.Status)
	}
	return nil
}

type JobFilter struct {
	Search string           `json:"search" query:"search"`
	Status models.JobStatus `json:"status" query:"status"`
	Sort   string           `json:"sort" query:"sort"`
	apimodels.Pagination
}

func (f JobFilter) Validate() error {
	if f.Status != "" && !f.Status.IsValid() {
		return apperrors.NewValidation("unknown job status %q", f.Status)
	}
	return nil
}

type ReorderItem struct {
	ID    string `json:"id" validate:"required"`
	Order int    `json:"order"`
}

type ReorderRequest struct {
	Items []ReorderItem `json:"items" validate:"required,min=1,dive"`
}

func (r ReorderRequest) Validate() error {
	return apimodels.Validate(r)
}
