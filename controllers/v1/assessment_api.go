package apiv1

import (
	"talentflow-backend/controllers"
	assessmenthandler "talentflow-backend/lib/assessment"
	apimodels "talentflow-backend/models/api"
	assessmentapimodels "talentflow-backend/models/api/assessment"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type assessmentApiController struct {
	controllers.BaseAPIController
}

func InitAssessmentApiRouters(app fiber.Router) {
	controller := assessmentApiController{}
	app.Route("assessments", func(router fiber.Router) {
		router.Route(":job_id", func(jobRoute fiber.Router) {
			jobRoute.Get("", controller.get)
			jobRoute.Put("", controller.save)
			jobRoute.Post("submit", controller.submit)
			jobRoute.Get("responses/:candidate_id", controller.getResponse)
		})
	})
}

func (c *assessmentApiController) getJobID(ctx *fiber.Ctx) (string, error) {
	jobID := ctx.Params("job_id")
	if jobID == "" {
		return "", errors.New("job id is not specified")
	}
	return jobID, nil
}

// @Summary Get assessment
// @Tags Assessments
// @Description Get the assessment attached to the job
// @Param	job_id	path	string	true	"job id"
// @Success 200 {object} dbmodels.Assessment
// @Failure 404 {object} apimodels.ErrorResponse
// @Failure 500 {object} apimodels.ErrorResponse
// @router /api/v1/assessments/{job_id} [get]
func (c *assessmentApiController) get(ctx *fiber.Ctx) error {
	jobID, err := c.getJobID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := assessmenthandler.Instance.Get(ctx.UserContext(), jobID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get assessment")
	}
	return ctx.Status(fiber.StatusOK).JSON(rec)
}

// @Summary Save assessment
// @Tags Assessments
// @Description Create or replace the job's assessment; a job holds at most one
// @Param	job_id	path	string	true	"job id"
// @Param	body body	assessmentapimodels.AssessmentData	true	"request body"
// @Success 200 {object} dbmodels.Assessment
// @Failure 400 {object} apimodels.ErrorResponse
// @Failure 404 {object} apimodels.ErrorResponse
// @Failure 500 {object} apimodels.ErrorResponse
// @router /api/v1/assessments/{job_id} [put]
func (c *assessmentApiController) save(ctx *fiber.Ctx) error {
	jobID, err := c.getJobID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assessmentapimodels.AssessmentData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := assessmenthandler.Instance.Save(ctx.UserContext(), jobID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to save assessment")
	}
	return ctx.Status(fiber.StatusOK).JSON(rec)
}

// @Summary Submit assessment response
// @Tags Assessments
// @Description Validate and store a candidate's answers; resubmission replaces the stored response
// @Param	job_id	path	string	true	"job id"
// @Param	body body	assessmentapimodels.SubmitRequest	true	"request body"
// @Success 200 {object} apimodels.SuccessResponse
// @Failure 400 {object} apimodels.ErrorResponse
// @Failure 404 {object} apimodels.ErrorResponse
// @Failure 500 {object} apimodels.ErrorResponse
// @router /api/v1/assessments/{job_id}/submit [post]
func (c *assessmentApiController) submit(ctx *fiber.Ctx) error {
	jobID, err := c.getJobID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assessmentapimodels.SubmitRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := assessmenthandler.Instance.SubmitResponse(ctx.UserContext(), jobID, payload.CandidateID, payload.Responses)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to submit assessment response")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.SuccessResponse{Success: true, ID: id})
}

// @Summary Get assessment response
// @Tags Assessments
// @Description Get a candidate's stored answers for the job's assessment
// @Param	job_id			path	string	true	"job id"
// @Param	candidate_id	path	string	true	"candidate id"
// @Success 200 {object} dbmodels.AssessmentResponse
// @Failure 404 {object} apimodels.ErrorResponse
// @Failure 500 {object} apimodels.ErrorResponse
// @router /api/v1/assessments/{job_id}/responses/{candidate_id} [get]
func (c *assessmentApiController) getResponse(ctx *fiber.Ctx) error {
	jobID, err := c.getJobID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	candidateID := ctx.Params("candidate_id")
	if candidateID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("candidate id is not specified"))
	}
	rec, err := assessmenthandler.Instance.GetResponse(ctx.UserContext(), jobID, candidateID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get assessment response")
	}
	return ctx.Status(fiber.StatusOK).JSON(rec)
}
