package assessmenthandler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"talentflow-backend/apperrors"
	"talentflow-backend/db"
	responsestore "talentflow-backend/lib/assessment/response-store"
	assessmentstore "talentflow-backend/lib/assessment/store"
	candidatestore "talentflow-backend/lib/candidate/store"
	"talentflow-backend/models"
	assessmentapimodels "talentflow-backend/models/api/assessment"
	dbmodels "talentflow-backend/models/db"
)

type testEnv struct {
	handler    impl
	candidates candidatestore.Provider
}

func newTestEnv(t *testing.T) testEnv {
	store, err := db.NewInMemory()
	require.Nil(t, err)
	t.Cleanup(func() { _ = store.Close() })
	candidates := candidatestore.NewInstance(store)
	return testEnv{
		handler: impl{
			store:          assessmentstore.NewInstance(store),
			responseStore:  responsestore.NewInstance(store),
			candidateStore: candidates,
		},
		candidates: candidates,
	}
}

func testAssessmentData() assessmentapimodels.AssessmentData {
	return assessmentapimodels.AssessmentData{
		Title: "Technical Screen",
		Sections: []dbmodels.AssessmentSection{{
			Title: "Skills",
			Questions: []dbmodels.Question{
				{
					ID:       "q-exp",
					Type:     models.QuestionTypeSingleChoice,
					Title:    "Years of experience?",
					Required: true,
					Options:  []string{"0-1 years", "2-3 years", "4+ years"},
				},
				{
					ID:    "q-detail",
					Type:  models.QuestionTypeShortText,
					Title: "Describe your last project",
					ConditionalLogic: &dbmodels.ConditionalLogic{
						DependsOn: "q-exp",
						ShowWhen:  "2-3 years",
					},
				},
				{
					ID:         "q-salary",
					Type:       models.QuestionTypeNumeric,
					Title:      "Expected salary",
					Validation: &dbmodels.QuestionValidation{Min: floatPtrTest(0), Max: floatPtrTest(500000)},
				},
			},
		}},
	}
}

func floatPtrTest(v float64) *float64 { return &v }

func TestAssessmentSave(t *testing.T) {
	ctx := context.Background()

	t.Run(`a job holds exactly one assessment`, func(t *testing.T) {
		env := newTestEnv(t)
		first, err := env.handler.Save(ctx, "job-1", testAssessmentData())
		require.Nil(t, err)

		data := testAssessmentData()
		data.Title = "Revised Screen"
		second, err := env.handler.Save(ctx, "job-1", data)
		require.Nil(t, err)

		require.Equal(t, first.ID, second.ID)
		require.Equal(t, "Revised Screen", second.Title)

		rec, err := env.handler.Get(ctx, "job-1")
		require.Nil(t, err)
		require.Equal(t, "Revised Screen", rec.Title)
	})

	t.Run(`new sections and questions get ids`, func(t *testing.T) {
		env := newTestEnv(t)
		data := testAssessmentData()
		data.Sections[0].Questions[0].ID = ""
		data.Sections[0].Questions[1].ConditionalLogic = nil
		rec, err := env.handler.Save(ctx, "job-1", data)
		require.Nil(t, err)
		require.NotEmpty(t, rec.Sections[0].ID)
		require.NotEmpty(t, rec.Sections[0].Questions[0].ID)
	})

	t.Run(`dependsOn must reference an earlier question`, func(t *testing.T) {
		env := newTestEnv(t)
		data := testAssessmentData()
		// first question now depends on a later one
		data.Sections[0].Questions[0].ConditionalLogic = &dbmodels.ConditionalLogic{
			DependsOn: "q-salary", ShowWhen: "1",
		}
		_, err := env.handler.Save(ctx, "job-1", data)
		require.NotNil(t, err)
		require.Equal(t, true, apperrors.IsValidation(err))
	})

	t.Run(`missing assessment is a not-found`, func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.handler.Get(ctx, "job-without-assessment")
		require.NotNil(t, err)
		require.Equal(t, true, apperrors.IsNotFound(err))
	})
}

func TestSubmitResponse(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) testEnv {
		env := newTestEnv(t)
		_, err := env.handler.Save(ctx, "job-1", testAssessmentData())
		require.Nil(t, err)
		require.Nil(t, env.candidates.Save(dbmodels.Candidate{ID: "cand-1", Name: "X", JobID: "job-1"}))
		return env
	}

	t.Run(`valid submission is stored and readable back`, func(t *testing.T) {
		env := seed(t)
		id, err := env.handler.SubmitResponse(ctx, "job-1", "cand-1", map[string]dbmodels.Answer{
			"q-exp": {Type: models.QuestionTypeSingleChoice, Choice: "2-3 years"},
			"q-detail": {Type: models.QuestionTypeShortText, Text: "Rebuilt the billing pipeline"},
		})
		require.Nil(t, err)
		require.NotEmpty(t, id)

		rec, err := env.handler.GetResponse(ctx, "job-1", "cand-1")
		require.Nil(t, err)
		require.Equal(t, "2-3 years", rec.Responses["q-exp"].Choice)
	})

	t.Run(`resubmission replaces the stored response`, func(t *testing.T) {
		env := seed(t)
		first, err := env.handler.SubmitResponse(ctx, "job-1", "cand-1", map[string]dbmodels.Answer{
			"q-exp": {Type: models.QuestionTypeSingleChoice, Choice: "0-1 years"},
		})
		require.Nil(t, err)
		second, err := env.handler.SubmitResponse(ctx, "job-1", "cand-1", map[string]dbmodels.Answer{
			"q-exp": {Type: models.QuestionTypeSingleChoice, Choice: "4+ years"},
		})
		require.Nil(t, err)
		require.Equal(t, first, second)

		rec, err := env.handler.GetResponse(ctx, "job-1", "cand-1")
		require.Nil(t, err)
		require.Equal(t, "4+ years", rec.Responses["q-exp"].Choice)
	})

	t.Run(`required question enforced only when visible`, func(t *testing.T) {
		env := seed(t)
		// q-detail is hidden for this answer, so only q-exp is required
		_, err := env.handler.SubmitResponse(ctx, "job-1", "cand-1", map[string]dbmodels.Answer{
			"q-exp": {Type: models.QuestionTypeSingleChoice, Choice: "4+ years"},
		})
		require.Nil(t, err)

		_, err = env.handler.SubmitResponse(ctx, "job-1", "cand-1", map[string]dbmodels.Answer{})
		require.NotNil(t, err)
		require.Equal(t, true, apperrors.IsValidation(err))
	})

	t.Run(`answers to hidden questions are dropped, not rejected`, func(t *testing.T) {
		env := seed(t)
		_, err := env.handler.SubmitResponse(ctx, "job-1", "cand-1", map[string]dbmodels.Answer{
			"q-exp": {Type: models.QuestionTypeSingleChoice, Choice: "4+ years"},
			"q-detail": {Type: models.QuestionTypeShortText, Text: "should be dropped"},
		})
		require.Nil(t, err)

		rec, err := env.handler.GetResponse(ctx, "job-1", "cand-1")
		require.Nil(t, err)
		_, kept := rec.Responses["q-detail"]
		require.Equal(t, false, kept)
	})

	t.Run(`out-of-range and off-option answers are rejected`, func(t *testing.T) {
		env := seed(t)
		_, err := env.handler.SubmitResponse(ctx, "job-1", "cand-1", map[string]dbmodels.Answer{
			"q-exp": {Type: models.QuestionTypeSingleChoice, Choice: "a decade"},
		})
		require.NotNil(t, err)
		require.Equal(t, true, apperrors.IsValidation(err))

		salary := 900000.0
		_, err = env.handler.SubmitResponse(ctx, "job-1", "cand-1", map[string]dbmodels.Answer{
			"q-exp":    {Type: models.QuestionTypeSingleChoice, Choice: "4+ years"},
			"q-salary": {Type: models.QuestionTypeNumeric, Number: &salary},
		})
		require.NotNil(t, err)
		require.Equal(t, true, apperrors.IsValidation(err))
	})

	t.Run(`unknown candidate is a not-found`, func(t *testing.T) {
		env := seed(t)
		_, err := env.handler.SubmitResponse(ctx, "job-1", "ghost", map[string]dbmodels.Answer{
			"q-exp": {Type: models.QuestionTypeSingleChoice, Choice: "4+ years"},
		})
		require.NotNil(t, err)
		require.Equal(t, true, apperrors.IsNotFound(err))
	})
}
