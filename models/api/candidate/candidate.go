package candidateapimodels

import (
	"talentflow-backend/apperrors"
	"talentflow-backend/models"
	apimodels "talentflow-backend/models/api"
)

type CandidateData struct {
	Name  string                `json:"name" validate:"required,min=1"`
	Email string                `json:"email" validate:"required,email"`
	JobID string                `json:"jobId" validate:"required"`
	Stage models.CandidateStage `json:"stage"`
}

func (d CandidateData) Validate() error {
	if err := apimodels.Validate(d); err != nil {
		return err
	}
	if d.Stage != "" && !d.Stage.IsValid() {
		return apperrors.NewValidation("unknown stage %q", d.Stage)
	}
	return nil
}

// CandidatePatch is a partial update. A stage change appends a timeline
// entry; Note appends to the candidate's note list.
type CandidatePatch struct {
	Name  *string                `json:"name"`
	Email *string                `json:"email"`
	JobID *string                `json:"jobId"`
	Stage *models.CandidateStage `json:"stage"`
	Note  *NoteData              `json:"note"`
}

type NoteData struct {
	Content string `json:"content" validate:"required"`
	Author  string `json:"author"`
}

func (p CandidatePatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return apperrors.NewValidation("name must not be empty")
	}
	if p.Stage != nil && !p.Stage.IsValid() {
		return apperrors.NewValidation("unknown stage %q", *p.Stage)
	}
	if p.Note != nil {
		if err := apimodels.Validate(*p.Note); err != nil {
			return err
		}
	}
	return nil
}

type CandidateFilter struct {
	Search string                `json:"search" query:"search"`
	Stage  models.CandidateStage `json:"stage" query:"stage"`
	JobID  string                `json:"jobId" query:"jobId"`
	apimodels.Pagination
}

func (f CandidateFilter) Validate() error {
	if f.Stage != "" && !f.Stage.IsValid() {
		return apperrors.NewValidation("unknown stage %q", f.Stage)
	}
	return nil
}
