package controllers

import (
	"fmt"
	apperrors "recruiting-backend/lib/utils/app-errors"
	"recruiting-backend/middleware"
	apimodels "recruiting-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("failed to parse request body")
		return errors.New("failed to read data from the request")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetParam(ctx, "id")
}

func (c *BaseAPIController) GetParam(ctx *fiber.Ctx, name string) (string, error) {
	value := ctx.Params(name)
	if value == "" {
		return "", errors.Errorf("path parameter %v is required", name)
	}
	return value, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	actor := middleware.GetActor(ctx)
	return log.
		WithField("user_id", actor.UserID).
		WithField("role", actor.Role).
		WithField("path", ctx.Path())
}

var kindStatus = map[apperrors.Kind]int{
	apperrors.KindNotFound:          fiber.StatusNotFound,
	apperrors.KindInvalidTransition: fiber.StatusConflict,
	apperrors.KindForbidden:         fiber.StatusForbidden,
	apperrors.KindBusinessRule:      fiber.StatusUnprocessableEntity,
}

// SendError maps workflow errors to their status; anything else is logged and answered with a generic 500.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	if kind, ok := apperrors.KindOf(err); ok {
		logger.WithField("error_code", kind).Info(err.Error())
		return ctx.Status(kindStatus[kind]).JSON(apimodels.NewCodedError(string(kind), err.Error()))
	}
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(fmt.Sprintf("%v: internal error", msg)))
}

func (c *BaseAPIController) SendBadRequest(ctx *fiber.Ctx, err error) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewCodedError("BAD_REQUEST", err.Error()))
}
