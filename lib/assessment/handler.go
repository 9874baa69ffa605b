package assessmenthandler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"talentflow-backend/apperrors"
	"talentflow-backend/db"
	responsestore "talentflow-backend/lib/assessment/response-store"
	assessmentstore "talentflow-backend/lib/assessment/store"
	candidatestore "talentflow-backend/lib/candidate/store"
	"talentflow-backend/lib/simnet"
	"talentflow-backend/models"
	assessmentapimodels "talentflow-backend/models/api/assessment"
	dbmodels "talentflow-backend/models/db"
)

type Provider interface {
	Get(ctx context.Context, jobID string) (rec dbmodels.Assessment, err error)
	Save(ctx context.Context, jobID string, data assessmentapimodels.AssessmentData) (rec dbmodels.Assessment, err error)
	SubmitResponse(ctx context.Context, jobID, candidateID string, responses map[string]dbmodels.Answer) (id string, err error)
	GetResponse(ctx context.Context, jobID, candidateID string) (rec dbmodels.AssessmentResponse, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:          assessmentstore.NewInstance(db.Store),
		responseStore:  responsestore.NewInstance(db.Store),
		candidateStore: candidatestore.NewInstance(db.Store),
	}
}

type impl struct {
	store          assessmentstore.Provider
	responseStore  responsestore.Provider
	candidateStore candidatestore.Provider
}

// Get returns the job's assessment; absence is a NotFound the caller treats
// as "start from a blank assessment".
func (i impl) Get(ctx context.Context, jobID string) (dbmodels.Assessment, error) {
	var rec dbmodels.Assessment
	err := simnet.Do(ctx, simnet.Read, func() error {
		found, err := i.store.GetByJobID(jobID)
		if err != nil {
			return err
		}
		if found == nil {
			return apperrors.NewNotFound("no assessment for job %s", jobID)
		}
		rec = *found
		return nil
	})
	return rec, err
}

// Save upserts the single assessment of a job: the existing record is
// updated in place, otherwise a new one is created. New sections and
// questions get ids assigned here.
func (i impl) Save(ctx context.Context, jobID string, data assessmentapimodels.AssessmentData) (dbmodels.Assessment, error) {
	var rec dbmodels.Assessment
	err := simnet.Do(ctx, simnet.Write, func() error {
		sections := assignIDs(data.Sections)
		if err := validateConditionalRefs(sections); err != nil {
			return err
		}
		now := time.Now()
		existing, err := i.store.GetByJobID(jobID)
		if err != nil {
			return err
		}
		if existing != nil {
			rec = *existing
		} else {
			rec = dbmodels.Assessment{
				BaseModel: dbmodels.BaseModel{
					ID:        uuid.NewString(),
					CreatedAt: now,
				},
				JobID: jobID,
			}
		}
		rec.Title = data.Title
		rec.Description = data.Description
		rec.Sections = sections
		rec.UpdatedAt = now
		return i.store.Save(rec)
	})
	if err != nil {
		return dbmodels.Assessment{}, err
	}
	log.WithField("assessment_id", rec.ID).WithField("job_id", jobID).Info("assessment saved")
	return rec, nil
}

func assignIDs(sections []dbmodels.AssessmentSection) []dbmodels.AssessmentSection {
	for si := range sections {
		if sections[si].ID == "" {
			sections[si].ID = uuid.NewString()
		}
		for qi := range sections[si].Questions {
			if sections[si].Questions[qi].ID == "" {
				sections[si].Questions[qi].ID = uuid.NewString()
			}
		}
	}
	return sections
}

// validateConditionalRefs enforces that dependsOn points at a strictly
// earlier question, which rules out self references and visibility cycles.
func validateConditionalRefs(sections []dbmodels.AssessmentSection) error {
	seen := map[string]bool{}
	for _, s := range sections {
		for _, q := range s.Questions {
			if q.ConditionalLogic != nil && !seen[q.ConditionalLogic.DependsOn] {
				return apperrors.NewValidation(
					"question %q depends on %q which is not an earlier question", q.Title, q.ConditionalLogic.DependsOn)
			}
			seen[q.ID] = true
		}
	}
	return nil
}

// SubmitResponse validates the answers against the assessment and upserts
// the (candidate, assessment) response record. Answers to hidden questions
// are dropped rather than rejected: the conditional logic decides what
// counts, not the client.
func (i impl) SubmitResponse(ctx context.Context, jobID, candidateID string, responses map[string]dbmodels.Answer) (string, error) {
	var id string
	err := simnet.Do(ctx, simnet.Write, func() error {
		assessment, err := i.store.GetByJobID(jobID)
		if err != nil {
			return err
		}
		if assessment == nil {
			return apperrors.NewNotFound("no assessment for job %s", jobID)
		}
		candidate, err := i.candidateStore.GetByID(candidateID)
		if err != nil {
			return err
		}
		if candidate == nil {
			return apperrors.NewNotFound("candidate %s not found", candidateID)
		}
		accepted, err := validateResponses(*assessment, responses)
		if err != nil {
			return err
		}
		rec := dbmodels.AssessmentResponse{
			ID:           uuid.NewString(),
			CandidateID:  candidateID,
			AssessmentID: assessment.ID,
			JobID:        jobID,
			Responses:    accepted,
			SubmittedAt:  time.Now(),
		}
		if existing, err := i.responseStore.Get(candidateID, assessment.ID); err != nil {
			return err
		} else if existing != nil {
			rec.ID = existing.ID
		}
		if err := i.responseStore.Save(rec); err != nil {
			return err
		}
		id = rec.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (i impl) GetResponse(ctx context.Context, jobID, candidateID string) (dbmodels.AssessmentResponse, error) {
	var rec dbmodels.AssessmentResponse
	err := simnet.Do(ctx, simnet.Read, func() error {
		assessment, err := i.store.GetByJobID(jobID)
		if err != nil {
			return err
		}
		if assessment == nil {
			return apperrors.NewNotFound("no assessment for job %s", jobID)
		}
		found, err := i.responseStore.Get(candidateID, assessment.ID)
		if err != nil {
			return err
		}
		if found == nil {
			return apperrors.NewNotFound("no response from candidate %s for job %s", candidateID, jobID)
		}
		rec = *found
		return nil
	})
	return rec, err
}

// validateResponses checks every answer against its question and collects all
// problems into one ValidationFailure. Required is only enforced on visible
// questions.
func validateResponses(assessment dbmodels.Assessment, responses map[string]dbmodels.Answer) (map[string]dbmodels.Answer, error) {
	var problems []string
	accepted := map[string]dbmodels.Answer{}
	for qid := range responses {
		if _, ok := assessment.QuestionByID(qid); !ok {
			problems = append(problems, fmt.Sprintf("answer references unknown question %s", qid))
		}
	}
	for _, q := range assessment.Questions() {
		visible := assessment.IsVisible(q, responses)
		ans, answered := responses[q.ID]
		if !visible {
			continue
		}
		if !answered || ans.IsEmpty() {
			if q.Required {
				problems = append(problems, fmt.Sprintf("question %q requires an answer", q.Title))
			}
			continue
		}
		if msg := checkAnswer(q, ans); msg != "" {
			problems = append(problems, msg)
			continue
		}
		accepted[q.ID] = ans
	}
	if len(problems) > 0 {
		return nil, apperrors.NewValidation("invalid submission: %s", strings.Join(problems, "; "))
	}
	return accepted, nil
}

func checkAnswer(q dbmodels.Question, ans dbmodels.Answer) string {
	if ans.Type != q.Type {
		return fmt.Sprintf("question %q expects a %s answer, got %s", q.Title, q.Type, ans.Type)
	}
	switch q.Type {
	case models.QuestionTypeSingleChoice:
		if !isOption(q.Options, ans.Choice) {
			return fmt.Sprintf("question %q: %q is not an option", q.Title, ans.Choice)
		}
	case models.QuestionTypeMultiChoice:
		for _, c := range ans.Choices {
			if !isOption(q.Options, c) {
				return fmt.Sprintf("question %q: %q is not an option", q.Title, c)
			}
		}
	case models.QuestionTypeShortText, models.QuestionTypeLongText:
		if v := q.Validation; v != nil {
			if v.MinLength != nil && len(ans.Text) < *v.MinLength {
				return fmt.Sprintf("question %q: answer shorter than %d characters", q.Title, *v.MinLength)
			}
			if v.MaxLength != nil && len(ans.Text) > *v.MaxLength {
				return fmt.Sprintf("question %q: answer longer than %d characters", q.Title, *v.MaxLength)
			}
		}
	case models.QuestionTypeNumeric:
		if v := q.Validation; v != nil {
			if v.Min != nil && *ans.Number < *v.Min {
				return fmt.Sprintf("question %q: value below minimum %v", q.Title, *v.Min)
			}
			if v.Max != nil && *ans.Number > *v.Max {
				return fmt.Sprintf("question %q: value above maximum %v", q.Title, *v.Max)
			}
		}
	}
	return ""
}

func isOption(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
