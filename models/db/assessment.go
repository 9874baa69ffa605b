package dbmodels

import (
	"talentflow-backend/models"
)

// Assessment is the per-job questionnaire. At most one exists per job.
type Assessment struct {
	BaseModel
	JobID       string              `json:"jobId"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Sections    []AssessmentSection `json:"sections"`
}

type AssessmentSection struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
}

type Question struct {
	ID               string              `json:"id"`
	Type             models.QuestionType `json:"type"`
	Title            string              `json:"title"`
	Description      string              `json:"description,omitempty"`
	Required         bool                `json:"required"`
	Options          []string            `json:"options,omitempty"`
	Validation       *QuestionValidation `json:"validation,omitempty"`
	ConditionalLogic *ConditionalLogic   `json:"conditionalLogic,omitempty"`
}

type QuestionValidation struct {
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
}

// ConditionalLogic hides a question until the referenced earlier question's
// answer equals ShowWhen.
type ConditionalLogic struct {
	DependsOn string `json:"dependsOn"`
	ShowWhen  string `json:"showWhen"`
}

// Questions returns all questions in document order, flattened across sections.
func (a Assessment) Questions() []Question {
	var all []Question
	for _, s := range a.Sections {
		all = append(all, s.Questions...)
	}
	return all
}

// QuestionByID returns the question and true when present.
func (a Assessment) QuestionByID(id string) (Question, bool) {
	for _, s := range a.Sections {
		for _, q := range s.Questions {
			if q.ID == id {
				return q, true
			}
		}
	}
	return Question{}, false
}

// IsVisible reports whether the question should be shown given the current
// answers. A question without conditional logic is always visible; a question
// whose dependency is itself hidden or unanswered is not.
func (a Assessment) IsVisible(q Question, answers map[string]Answer) bool {
	if q.ConditionalLogic == nil {
		return true
	}
	dep, ok := a.QuestionByID(q.ConditionalLogic.DependsOn)
	if !ok {
		return false
	}
	if !a.IsVisible(dep, answers) {
		return false
	}
	ans, ok := answers[dep.ID]
	if !ok {
		return false
	}
	return ans.Matches(q.ConditionalLogic.ShowWhen)
}
