package apiv1

import (
	"recruiting-backend/controllers"
	"recruiting-backend/lib/collaboration"
	"recruiting-backend/middleware"
	apimodels "recruiting-backend/models/api"
	placementapimodels "recruiting-backend/models/api/placement"

	"github.com/gofiber/fiber/v2"
)

type collaborationApiController struct {
	controllers.BaseAPIController
}

func InitCollaborationApiRouters(app fiber.Router) {
	controller := collaborationApiController{}
	app.Route("placements/:id/collaborators", func(router fiber.Router) {
		router.Post("", controller.add)
		router.Get("", controller.list)
	})
	app.Post("splits/recommended", controller.recommended)
}

// @Summary Add collaborator
// @Tags Collaboration
// @Description Adds a recruiter share to the placement fee, the sum of shares never exceeds 100%
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "placement ID"
// @Param	body body	 placementapimodels.CollaboratorData	true	"request body"
// @Success 200 {object} apimodels.Response{data=placementapimodels.CollaboratorView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/placements/{id}/collaborators [post]
func (c *collaborationApiController) add(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload placementapimodels.CollaboratorData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := collaboration.Instance.AddCollaborator(middleware.GetActor(ctx), collaboration.AddRequest{
		PlacementID:     id,
		RecruiterID:     payload.RecruiterID,
		Role:            payload.Role,
		SplitPercentage: payload.SplitPercentage,
		SplitAmount:     payload.SplitAmount,
		Notes:           payload.Notes,
	})
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to add collaborator")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(placementapimodels.CollaboratorConvert(*rec)))
}

// @Summary List collaborators
// @Tags Collaboration
// @Description Fee split of the placement
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "placement ID"
// @Success 200 {object} apimodels.Response{data=[]placementapimodels.CollaboratorView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/placements/{id}/collaborators [get]
func (c *collaborationApiController) list(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, err := collaboration.Instance.ListCollaborators(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list collaborators")
	}
	result := make([]placementapimodels.CollaboratorView, 0, len(list))
	for _, rec := range list {
		result = append(result, placementapimodels.CollaboratorConvert(rec))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Recommended splits
// @Tags Collaboration
// @Description Splits the total share between the roles proportionally to their weights
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 placementapimodels.RecommendedSplitsData	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]collaboration.RecommendedSplit}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/splits/recommended [post]
func (c *collaborationApiController) recommended(ctx *fiber.Ctx) error {
	var payload placementapimodels.RecommendedSplitsData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	result, err := collaboration.Instance.RecommendedSplits(payload.TotalShare, payload.Roles, payload.Weights)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to calculate splits")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
