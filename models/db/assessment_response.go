package dbmodels

import (
	"time"

	"talentflow-backend/models"
)

// Answer is a tagged union keyed by question type: choice questions answer
// with Choice/Choices, text questions with Text, numeric with Number and
// file-upload with an opaque FileRef. Only the fields matching Type are set.
type Answer struct {
	Type    models.QuestionType `json:"type"`
	Choice  string              `json:"choice,omitempty"`
	Choices []string            `json:"choices,omitempty"`
	Text    string              `json:"text,omitempty"`
	Number  *float64            `json:"number,omitempty"`
	FileRef string              `json:"fileRef,omitempty"`
}

// IsEmpty reports whether the answer carries no value for its type.
func (a Answer) IsEmpty() bool {
	switch a.Type {
	case models.QuestionTypeSingleChoice:
		return a.Choice == ""
	case models.QuestionTypeMultiChoice:
		return len(a.Choices) == 0
	case models.QuestionTypeShortText, models.QuestionTypeLongText:
		return a.Text == ""
	case models.QuestionTypeNumeric:
		return a.Number == nil
	case models.QuestionTypeFileUpload:
		return a.FileRef == ""
	}
	return true
}

// Matches reports whether the answer equals the given conditional-logic value.
// Multi-choice answers match when any selected option equals the value.
func (a Answer) Matches(value string) bool {
	switch a.Type {
	case models.QuestionTypeSingleChoice:
		return a.Choice == value
	case models.QuestionTypeMultiChoice:
		for _, c := range a.Choices {
			if c == value {
				return true
			}
		}
		return false
	case models.QuestionTypeShortText, models.QuestionTypeLongText:
		return a.Text == value
	}
	return false
}

// AssessmentResponse holds one candidate's answers to one assessment.
// At most one exists per (candidate, assessment) pair; resubmission overwrites.
type AssessmentResponse struct {
	ID           string            `json:"id"`
	CandidateID  string            `json:"candidateId"`
	AssessmentID string            `json:"assessmentId"`
	JobID        string            `json:"jobId"`
	Responses    map[string]Answer `json:"responses"`
	SubmittedAt  time.Time         `json:"submittedAt"`
}

// ResponseKey is the composite storage key for a response record.
func ResponseKey(candidateID, assessmentID string) string {
	return candidateID + ":" + assessmentID
}
