package apiv1

import (
	"fmt"
	"recruiting-backend/controllers"
	"recruiting-backend/lib/collaboration"
	pdfexport "recruiting-backend/lib/export/pdf"
	xlsexport "recruiting-backend/lib/export/xls"
	"recruiting-backend/lib/placement"
	"recruiting-backend/middleware"
	"recruiting-backend/models"
	apimodels "recruiting-backend/models/api"
	placementapimodels "recruiting-backend/models/api/placement"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type placementApiController struct {
	controllers.BaseAPIController
}

func InitPlacementApiRouters(app fiber.Router) {
	controller := placementApiController{}
	app.Route("placements", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get("expiring", controller.expiring)
		router.Get("export", controller.export)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("activate", controller.activate)
			idRoute.Put("complete", controller.complete)
			idRoute.Put("fail", controller.fail)
			idRoute.Put("state", controller.changeState)
			idRoute.Post("replacement_request", controller.requestReplacement)
			idRoute.Put("replacement", controller.linkReplacement)
			idRoute.Get("statement", controller.statement)
		})
	})
}

// @Summary Get by ID
// @Tags Placement
// @Description Placement visible to its company, recruiter or an admin
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "placement ID"
// @Success 200 {object} apimodels.Response{data=placementapimodels.PlacementView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/placements/{id} [get]
func (c *placementApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := placement.Instance.GetByID(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get placement")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(placementapimodels.PlacementConvert(*rec, time.Now())))
}

// @Summary Activate
// @Tags Placement
// @Description Candidate started, the guarantee window begins at the start date
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "placement ID"
// @Param	body body	 placementapimodels.DateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=placementapimodels.PlacementView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/placements/{id}/activate [put]
func (c *placementApiController) activate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload placementapimodels.DateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	startDate, err := payload.Parse()
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := placement.Instance.Activate(middleware.GetActor(ctx), id, startDate)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to activate placement")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(placementapimodels.PlacementConvert(*rec, time.Now())))
}

// @Summary Complete
// @Tags Placement
// @Description Closes an active placement
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "placement ID"
// @Param	body body	 placementapimodels.DateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=placementapimodels.PlacementView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/placements/{id}/complete [put]
func (c *placementApiController) complete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload placementapimodels.DateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	endDate, err := payload.Parse()
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := placement.Instance.Complete(middleware.GetActor(ctx), id, endDate)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to complete placement")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(placementapimodels.PlacementConvert(*rec, time.Now())))
}

// @Summary Fail
// @Tags Placement
// @Description Placement fell through, the event tells whether it happened within the guarantee
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "placement ID"
// @Param	body body	 placementapimodels.FailData	true	"request body"
// @Success 200 {object} apimodels.Response{data=placementapimodels.PlacementView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/placements/{id}/fail [put]
func (c *placementApiController) fail(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload placementapimodels.FailData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := placement.Instance.Fail(middleware.GetActor(ctx), id, payload.Reason)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to fail placement")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(placementapimodels.PlacementConvert(*rec, time.Now())))
}

// @Summary Change state
// @Tags Placement
// @Description Generic state change over the fixed placement state table
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "placement ID"
// @Param	body body	 placementapimodels.StateChangeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=placementapimodels.PlacementView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/placements/{id}/state [put]
func (c *placementApiController) changeState(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload placementapimodels.StateChangeData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := placement.Instance.ChangeState(middleware.GetActor(ctx), id, payload.State, payload.Reason)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to change placement state")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(placementapimodels.PlacementConvert(*rec, time.Now())))
}

// @Summary Request replacement
// @Tags Placement
// @Description Company asks for a replacement of a failed placement still within its guarantee
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "placement ID"
// @Success 200 {object} apimodels.Response{data=placementapimodels.PlacementView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/placements/{id}/replacement_request [post]
func (c *placementApiController) requestReplacement(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := placement.Instance.RequestReplacement(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to request replacement")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(placementapimodels.PlacementConvert(*rec, time.Now())))
}

// @Summary Link replacement
// @Tags Placement
// @Description Links the replacement placement to the failed one
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "failed placement ID"
// @Param	body body	 placementapimodels.LinkReplacementData	true	"request body"
// @Success 200 {object} apimodels.Response{data=placementapimodels.PlacementView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/placements/{id}/replacement [put]
func (c *placementApiController) linkReplacement(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload placementapimodels.LinkReplacementData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := placement.Instance.LinkReplacement(middleware.GetActor(ctx), id, payload.ReplacementPlacementID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to link replacement")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(placementapimodels.PlacementConvert(*rec, time.Now())))
}

// @Summary List
// @Tags Placement
// @Description Placements of the caller filtered by state
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 placementapimodels.ListFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]placementapimodels.PlacementView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/placements/list [post]
func (c *placementApiController) list(ctx *fiber.Ctx) error {
	var payload placementapimodels.ListFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, err := placement.Instance.List(middleware.GetActor(ctx), payload.ToFilter())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list placements")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(placementapimodels.PlacementListConvert(list, time.Now()), int64(len(list))))
}

// @Summary Expiring guarantees
// @Tags Placement
// @Description Placements whose guarantee ends within the given number of days
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   days        		query   int     	false        "window in days, 30 by default"
// @Success 200 {object} apimodels.Response{data=[]placementapimodels.PlacementView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/placements/expiring [get]
func (c *placementApiController) expiring(ctx *fiber.Ctx) error {
	days := ctx.QueryInt("days", 30)
	if days < 0 {
		return c.SendBadRequest(ctx, errors.New("days must not be negative"))
	}
	list, err := placement.Instance.FindExpiring(middleware.GetActor(ctx), days)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to find expiring placements")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(placementapimodels.PlacementListConvert(list, time.Now())))
}

// @Summary Export
// @Tags Placement
// @Description Placements of the caller with their fee splits as xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   state        		query   string     	false        "placement state filter"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/placements/export [get]
func (c *placementApiController) export(ctx *fiber.Ctx) error {
	filter := placementapimodels.ListFilter{State: models.PlacementState(ctx.Query("state"))}
	if err := filter.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	actor := middleware.GetActor(ctx)
	list, err := placement.Instance.List(actor, filter.ToFilter())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list placements")
	}
	rows := make([]xlsexport.PlacementRow, 0, len(list))
	for _, rec := range list {
		collaborators, err := collaboration.Instance.ListCollaborators(actor, rec.ID)
		if err != nil {
			return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list collaborators")
		}
		rows = append(rows, xlsexport.PlacementRow{Placement: rec, Collaborators: collaborators})
	}
	now := time.Now()
	buf, err := xlsexport.Instance.ExportPlacements(rows, now)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export placements")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Attachment(fmt.Sprintf("placements_%v.xlsx", now.Format("20060102")))
	return ctx.SendStream(buf)
}

// @Summary Split statement
// @Tags Placement
// @Description Fee split statement of one placement as pdf
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "placement ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/placements/{id}/statement [get]
func (c *placementApiController) statement(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	actor := middleware.GetActor(ctx)
	rec, err := placement.Instance.GetByID(actor, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get placement")
	}
	collaborators, err := collaboration.Instance.ListCollaborators(actor, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list collaborators")
	}
	body, err := pdfexport.GenerateSplitStatement(*rec, collaborators, time.Now())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to build split statement")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Attachment(fmt.Sprintf("split_statement_%v.pdf", id))
	return ctx.Send(body)
}
