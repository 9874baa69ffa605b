package apiv1

import (
	"talentflow-backend/controllers"
	jobhandler "talentflow-backend/lib/job"
	apimodels "talentflow-backend/models/api"
	jobapimodels "talentflow-backend/models/api/job"

	"github.com/gofiber/fiber/v2"
)

type jobApiController struct {
	controllers.BaseAPIController
}

func InitJobApiRouters(app fiber.Router) {
	controller := jobApiController{}
	app.Route("jobs", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Patch("reorder", controller.reorder)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Patch("", controller.update)
		})
	})
}

// @Summary Job list
// @Tags Jobs
// @Description Filtered, sorted and paginated job list
// @Param	search		query	string	false	"substring match on title and tags"
// @Param	status		query	string	false	"active or archived"
// @Param	sort		query	string	false	"field:direction, e.g. order:asc"
// @Param	page		query	int		false	"page number, 1-based"
// @Param	pageSize	query	int		false	"page size"
// @Success 200 {object} apimodels.ListResponse{data=[]dbmodels.Job}
// @Failure 400 {object} apimodels.ErrorResponse
// @Failure 500 {object} apimodels.ErrorResponse
// @router /api/v1/jobs [get]
func (c *jobApiController) list(ctx *fiber.Ctx) error {
	var filter jobapimodels.JobFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("failed to read query parameters"))
	}
	if err := filter.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, pagination, err := jobhandler.Instance.List(ctx.UserContext(), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list jobs")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewList(list, pagination))
}

// @Summary Create job
// @Tags Jobs
// @Description Create job
// @Param	body body	jobapimodels.JobData	true	"request body"
// @Success 201 {object} dbmodels.Job
// @Failure 400 {object} apimodels.ErrorResponse
// @Failure 500 {object} apimodels.ErrorResponse
// @router /api/v1/jobs [post]
func (c *jobApiController) create(ctx *fiber.Ctx) error {
	var payload jobapimodels.JobData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := jobhandler.Instance.Create(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create job")
	}
	return ctx.Status(fiber.StatusCreated).JSON(rec)
}

// @Summary Get job
// @Tags Jobs
// @Description Get job by id
// @Param	id	path	string	true	"job id"
// @Success 200 {object} dbmodels.Job
// @Failure 404 {object} apimodels.ErrorResponse
// @Failure 500 {object} apimodels.ErrorResponse
// @router /api/v1/jobs/{id} [get]
func (c *jobApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := jobhandler.Instance.GetByID(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get job")
	}
	return ctx.Status(fiber.StatusOK).JSON(rec)
}

// @Summary Update job
// @Tags Jobs
// @Description Partial update; omitted fields keep current values
// @Param	id	path	string	true	"job id"
// @Param	body body	jobapimodels.JobPatch	true	"request body"
// @Success 200 {object} dbmodels.Job
// @Failure 400 {object} apimodels.ErrorResponse
// @Failure 404 {object} apimodels.ErrorResponse
// @Failure 500 {object} apimodels.ErrorResponse
// @router /api/v1/jobs/{id} [patch]
func (c *jobApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload jobapimodels.JobPatch
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := jobhandler.Instance.Update(ctx.UserContext(), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update job")
	}
	return ctx.Status(fiber.StatusOK).JSON(rec)
}

// @Summary Reorder jobs
// @Tags Jobs
// @Description Apply a new board ordering; order values are re-sequenced densely
// @Param	body body	jobapimodels.ReorderRequest	true	"request body"
// @Success 200 {object} apimodels.SuccessResponse
// @Failure 400 {object} apimodels.ErrorResponse
// @Failure 500 {object} apimodels.ErrorResponse
// @router /api/v1/jobs/reorder [patch]
func (c *jobApiController) reorder(ctx *fiber.Ctx) error {
	var payload jobapimodels.ReorderRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := jobhandler.Instance.Reorder(ctx.UserContext(), payload.Items); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to reorder jobs")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.SuccessResponse{Success: true})
}
