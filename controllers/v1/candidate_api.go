package apiv1

import (
	"fmt"
	"time"

	"talentflow-backend/controllers"
	candidatehandler "talentflow-backend/lib/candidate"
	apimodels "talentflow-backend/models/api"
	candidateapimodels "talentflow-backend/models/api/candidate"

	"github.com/gofiber/fiber/v2"
)

type candidateApiController struct {
	controllers.BaseAPIController
}

func InitCandidateApiRouters(app fiber.Router) {
	controller := candidateApiController{}
	app.Route("candidates", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Get("export", controller.export)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Patch("", controller.update)
			idRoute.Get("timeline", controller.timeline)
		})
	})
}

// @Summary Candidate list
// @Tags Candidates
// @Description Filtered and paginated candidate list, most recently updated first
// @Param	search		query	string	false	"substring match on name and email"
// @Param	stage		query	string	false	"pipeline stage"
// @Param	jobId		query	string	false	"job id"
// @Param	page		query	int		false	"page number, 1-based"
// @Param	pageSize	query	int		false	"page size"
// @Success 200 {object} apimodels.ListResponse{data=[]dbmodels.Candidate}
// @Failure 400 {object} apimodels.ErrorResponse
// @Failure 500 {object} apimodels.ErrorResponse
// @router /api/v1/candidates [get]
func (c *candidateApiController) list(ctx *fiber.Ctx) error {
	var filter candidateapimodels.CandidateFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("failed to read query parameters"))
	}
	if err := filter.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, pagination, err := candidatehandler.Instance.List(ctx.UserContext(), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list candidates")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewList(list, pagination))
}

// @Summary Create candidate
// @Tags Candidates
// @Description Create candidate; the stage defaults to applied
// @Param	body body	candidateapimodels.CandidateData	true	"request body"
// @Success 201 {object} dbmodels.Candidate
// @Failure 400 {object} apimodels.ErrorResponse
// @Failure 500 {object} apimodels.ErrorResponse
// @router /api/v1/candidates [post]
func (c *candidateApiController) create(ctx *fiber.Ctx) error {
	var payload candidateapimodels.CandidateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := candidatehandler.Instance.Create(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create candidate")
	}
	return ctx.Status(fiber.StatusCreated).JSON(rec)
}

// @Summary Get candidate
// @Tags Candidates
// @Description Get candidate by id
// @Param	id	path	string	true	"candidate id"
// @Success 200 {object} dbmodels.Candidate
// @Failure 404 {object} apimodels.ErrorResponse
// @Failure 500 {object} apimodels.ErrorResponse
// @router /api/v1/candidates/{id} [get]
func (c *candidateApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := candidatehandler.Instance.GetByID(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get candidate")
	}
	return ctx.Status(fiber.StatusOK).JSON(rec)
}

// @Summary Update candidate
// @Tags Candidates
// @Description Partial update; a stage change appends a timeline entry
// @Param	id	path	string	true	"candidate id"
// @Param	body body	candidateapimodels.CandidatePatch	true	"request body"
// @Success 200 {object} dbmodels.Candidate
// @Failure 400 {object} apimodels.ErrorResponse
// @Failure 404 {object} apimodels.ErrorResponse
// @Failure 500 {object} apimodels.ErrorResponse
// @router /api/v1/candidates/{id} [patch]
func (c *candidateApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.CandidatePatch
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := candidatehandler.Instance.Update(ctx.UserContext(), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update candidate")
	}
	return ctx.Status(fiber.StatusOK).JSON(rec)
}

// @Summary Candidate timeline
// @Tags Candidates
// @Description Stage-change history in chronological order
// @Param	id	path	string	true	"candidate id"
// @Success 200 {object} []dbmodels.TimelineEntry
// @Failure 404 {object} apimodels.ErrorResponse
// @Failure 500 {object} apimodels.ErrorResponse
// @router /api/v1/candidates/{id}/timeline [get]
func (c *candidateApiController) timeline(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := candidatehandler.Instance.GetTimeline(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get candidate timeline")
	}
	return ctx.Status(fiber.StatusOK).JSON(list)
}

// @Summary Export candidates to Excel
// @Tags Candidates
// @Description Export the full filtered candidate set as an xlsx attachment
// @Param	search		query	string	false	"substring match on name and email"
// @Param	stage		query	string	false	"pipeline stage"
// @Param	jobId		query	string	false	"job id"
// @Success 200
// @Failure 400 {object} apimodels.ErrorResponse
// @Failure 500 {object} apimodels.ErrorResponse
// @router /api/v1/candidates/export [get]
func (c *candidateApiController) export(ctx *fiber.Ctx) error {
	var filter candidateapimodels.CandidateFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("failed to read query parameters"))
	}
	if err := filter.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data, err := candidatehandler.Instance.ExportToXls(ctx.UserContext(), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export candidates")
	}
	fileName := fmt.Sprintf("candidates-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.ms-excel")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}
