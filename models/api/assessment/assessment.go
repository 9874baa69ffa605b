package assessmentapimodels

import (
	"talentflow-backend/apperrors"
	apimodels "talentflow-backend/models/api"
	dbmodels "talentflow-backend/models/db"
)

// AssessmentData is the PUT body for the per-job assessment. Section and
// question ids may be empty for newly built elements; the handler assigns
// them on save.
type AssessmentData struct {
	Title       string                       `json:"title" validate:"required,min=1"`
	Description string                       `json:"description"`
	Sections    []dbmodels.AssessmentSection `json:"sections"`
}

func (d AssessmentData) Validate() error {
	if err := apimodels.Validate(d); err != nil {
		return err
	}
	for _, s := range d.Sections {
		if s.Title == "" {
			return apperrors.NewValidation("section title must not be empty")
		}
		for _, q := range s.Questions {
			if q.Title == "" {
				return apperrors.NewValidation("question title must not be empty")
			}
			if !q.Type.IsValid() {
				return apperrors.NewValidation("unknown question type %q", q.Type)
			}
			if q.Type.IsChoice() && len(q.Options) == 0 {
				return apperrors.NewValidation("choice question %q needs options", q.Title)
			}
		}
	}
	return nil
}

type SubmitRequest struct {
	CandidateID string                     `json:"candidateId" validate:"required"`
	Responses   map[string]dbmodels.Answer `json:"responses" validate:"required"`
}

func (r SubmitRequest) Validate() error {
	return apimodels.Validate(r)
}
