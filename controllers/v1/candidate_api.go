package apiv1

import (
	"recruiting-backend/controllers"
	candidateownership "recruiting-backend/lib/candidate-ownership"
	"recruiting-backend/middleware"
	"recruiting-backend/models"
	apimodels "recruiting-backend/models/api"
	candidateapimodels "recruiting-backend/models/api/candidate"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type candidateApiController struct {
	controllers.BaseAPIController
}

func InitCandidateApiRouters(app fiber.Router) {
	controller := candidateApiController{}
	app.Route("candidates/:id", func(router fiber.Router) {
		router.Post("source", controller.source)
		router.Post("outreach", controller.outreach)
		router.Get("outreach", controller.outreachList)
		router.Get("can_work_with", controller.canWorkWith)
	})
	app.Put("outreach/:id/engagement", controller.engagement)
}

// @Summary Source candidate
// @Tags Candidate
// @Description Records the sourcer of a candidate, the first sourcer wins until the protection window expires
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "candidate ID"
// @Param	body body	 candidateapimodels.SourceData	true	"request body"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.SourcerView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/source [post]
func (c *candidateApiController) source(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload candidateapimodels.SourceData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	actor := middleware.GetActor(ctx)
	req := candidateownership.SourceRequest{
		CandidateID: id,
		SourcerID:   actor.EntityID,
		SourcerType: models.SourcerRecruiter,
		WindowDays:  payload.WindowDays,
		Notes:       payload.Notes,
	}
	if actor.IsAdmin() {
		req.SourcerType = models.SourcerPlatform
	} else if payload.SourcerType == models.SourcerPlatform {
		return c.SendBadRequest(ctx, errors.New("only admins can source for the platform"))
	}
	rec, err := candidateownership.Instance.SourceCandidate(req)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to source candidate")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(candidateapimodels.SourcerConvert(*rec)))
}

// @Summary Record outreach
// @Tags Candidate
// @Description Logs a recruiter message to the candidate and mails it; first contact sources the candidate
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "candidate ID"
// @Param	body body	 candidateapimodels.OutreachData	true	"request body"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.OutreachView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/outreach [post]
func (c *candidateApiController) outreach(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload candidateapimodels.OutreachData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := candidateownership.Instance.RecordOutreach(candidateownership.OutreachRequest{
		CandidateID: id,
		RecruiterID: middleware.GetActor(ctx).EntityID,
		JobID:       payload.JobID,
		Subject:     payload.Subject,
		Body:        payload.Body,
	})
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to record outreach")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(candidateapimodels.OutreachConvert(*rec)))
}

// @Summary Outreach history
// @Tags Candidate
// @Description Messages sent to the candidate with engagement; recruiters see only their own outreach
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "candidate ID"
// @Success 200 {object} apimodels.Response{data=[]candidateapimodels.OutreachView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/outreach [get]
func (c *candidateApiController) outreachList(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, err := candidateownership.Instance.ListOutreach(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list outreach")
	}
	result := make([]candidateapimodels.OutreachView, 0, len(list))
	for _, rec := range list {
		result = append(result, candidateapimodels.OutreachConvert(rec))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Can work with
// @Tags Candidate
// @Description Whether the recruiter may work with the candidate under the sourcing protection
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "candidate ID"
// @Param   recruiter_id   		query   string  	false        "recruiter ID, the caller for recruiters"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CanWorkWithView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/can_work_with [get]
func (c *candidateApiController) canWorkWith(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	actor := middleware.GetActor(ctx)
	recruiterID := actor.EntityID
	if actor.IsAdmin() {
		recruiterID = ctx.Query("recruiter_id")
		if recruiterID == "" {
			return c.SendBadRequest(ctx, errors.New("recruiter_id is required"))
		}
	}
	allowed, err := candidateownership.Instance.CanWorkWith(id, recruiterID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to check candidate ownership")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(candidateapimodels.CanWorkWithView{
		CandidateID: id,
		RecruiterID: recruiterID,
		Allowed:     allowed,
	}))
}

// @Summary Update engagement
// @Tags Candidate
// @Description Stores the first occurrence of each engagement signal of an outreach message
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "outreach ID"
// @Param	body body	 candidateapimodels.EngagementData	true	"request body"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.OutreachView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/outreach/{id}/engagement [put]
func (c *candidateApiController) engagement(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload candidateapimodels.EngagementData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := candidateownership.Instance.UpdateEngagement(id, candidateownership.EngagementUpdate{
		Opened:       payload.Opened,
		Clicked:      payload.Clicked,
		Replied:      payload.Replied,
		Unsubscribed: payload.Unsubscribed,
		Bounced:      payload.Bounced,
	})
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update engagement")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(candidateapimodels.OutreachConvert(*rec)))
}
