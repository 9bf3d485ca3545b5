package apiv1

import (
	"recruiting-backend/controllers"
	"recruiting-backend/lib/proposal"
	"recruiting-backend/middleware"
	apimodels "recruiting-backend/models/api"
	applicationapimodels "recruiting-backend/models/api/application"

	"github.com/gofiber/fiber/v2"
)

type proposalApiController struct {
	controllers.BaseAPIController
}

func InitProposalApiRouters(app fiber.Router) {
	controller := proposalApiController{}
	app.Route("proposals", func(router fiber.Router) {
		router.Post("list", controller.list)
	})
}

// @Summary List
// @Tags Proposal
// @Description Applications of the caller split into actionable and waiting, summary counts cover the whole set
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 applicationapimodels.ProposalListData	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=proposal.ListResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/proposals/list [post]
func (c *proposalApiController) list(ctx *fiber.Ctx) error {
	var payload applicationapimodels.ProposalListData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	partition := proposal.Partition(payload.Partition)
	if partition == "" {
		partition = proposal.PartitionAll
	}
	result, err := proposal.Instance.List(middleware.GetActor(ctx), proposal.ListRequest{
		Partition:  partition,
		Pagination: payload.Pagination,
	})
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list proposals")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(result, result.RowCount))
}
