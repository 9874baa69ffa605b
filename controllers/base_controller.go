package controllers

import (
	"talentflow-backend/apperrors"
	apimodels "talentflow-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("failed to parse request body")
		return errors.New("failed to read request data")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Params("id")
	if id == "" {
		return "", errors.New("record id is not specified")
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.WithField("method", ctx.Method()).WithField("path", ctx.Path())
}

// SendError answers with the status carried by the error; validation and
// not-found failures pass their message through, everything else is logged
// and replaced by the fallback message.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, fallback string) error {
	status := apperrors.StatusOf(err)
	if apperrors.IsValidation(err) || apperrors.IsNotFound(err) || apperrors.IsSimulatedNetwork(err) {
		return ctx.Status(status).JSON(apimodels.NewError(err.Error()))
	}
	logger.WithError(err).Error(fallback)
	return ctx.Status(status).JSON(apimodels.NewError(fallback))
}
