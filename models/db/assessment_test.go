package dbmodels

import (
	"testing"

	"github.com/stretchr/testify/require"

	"talentflow-backend/models"
)

func chainedAssessment() Assessment {
	return Assessment{
		Sections: []AssessmentSection{{
			Questions: []Question{
				{
					ID:      "q1",
					Type:    models.QuestionTypeSingleChoice,
					Options: []string{"yes", "no"},
				},
				{
					ID:               "q2",
					Type:             models.QuestionTypeSingleChoice,
					Options:          []string{"remote", "office"},
					ConditionalLogic: &ConditionalLogic{DependsOn: "q1", ShowWhen: "yes"},
				},
				{
					ID:               "q3",
					Type:             models.QuestionTypeShortText,
					ConditionalLogic: &ConditionalLogic{DependsOn: "q2", ShowWhen: "remote"},
				},
			},
		}},
	}
}

func TestIsVisible(t *testing.T) {
	a := chainedAssessment()
	q2, _ := a.QuestionByID("q2")
	q3, _ := a.QuestionByID("q3")

	t.Run(`unconditional questions are always visible`, func(t *testing.T) {
		q1, ok := a.QuestionByID("q1")
		require.Equal(t, true, ok)
		require.Equal(t, true, a.IsVisible(q1, nil))
	})

	t.Run(`question shows only when the dependency answer matches`, func(t *testing.T) {
		require.Equal(t, false, a.IsVisible(q2, map[string]Answer{}))
		require.Equal(t, false, a.IsVisible(q2, map[string]Answer{
			"q1": {Type: models.QuestionTypeSingleChoice, Choice: "no"},
		}))
		require.Equal(t, true, a.IsVisible(q2, map[string]Answer{
			"q1": {Type: models.QuestionTypeSingleChoice, Choice: "yes"},
		}))
	})

	t.Run(`hidden dependency hides the whole chain`, func(t *testing.T) {
		// q2 answered "remote", but q2 itself is hidden because q1 is "no"
		answers := map[string]Answer{
			"q1": {Type: models.QuestionTypeSingleChoice, Choice: "no"},
			"q2": {Type: models.QuestionTypeSingleChoice, Choice: "remote"},
		}
		require.Equal(t, false, a.IsVisible(q3, answers))

		answers["q1"] = Answer{Type: models.QuestionTypeSingleChoice, Choice: "yes"}
		require.Equal(t, true, a.IsVisible(q3, answers))
	})

	t.Run(`dangling dependency hides the question`, func(t *testing.T) {
		q := Question{ConditionalLogic: &ConditionalLogic{DependsOn: "missing", ShowWhen: "x"}}
		require.Equal(t, false, a.IsVisible(q, nil))
	})
}

func TestAnswer(t *testing.T) {
	t.Run(`IsEmpty follows the answer type`, func(t *testing.T) {
		require.Equal(t, true, Answer{Type: models.QuestionTypeSingleChoice}.IsEmpty())
		require.Equal(t, false, Answer{Type: models.QuestionTypeSingleChoice, Choice: "yes"}.IsEmpty())
		require.Equal(t, true, Answer{Type: models.QuestionTypeNumeric}.IsEmpty())
		zero := 0.0
		require.Equal(t, false, Answer{Type: models.QuestionTypeNumeric, Number: &zero}.IsEmpty())
	})

	t.Run(`multi-choice matches when any selection equals the value`, func(t *testing.T) {
		ans := Answer{Type: models.QuestionTypeMultiChoice, Choices: []string{"Go", "React"}}
		require.Equal(t, true, ans.Matches("Go"))
		require.Equal(t, false, ans.Matches("Python"))
	})

	t.Run(`file answers never drive conditional logic`, func(t *testing.T) {
		ans := Answer{Type: models.QuestionTypeFileUpload, FileRef: "cv.pdf"}
		require.Equal(t, false, ans.Matches("cv.pdf"))
	})
}
