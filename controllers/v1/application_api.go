package apiv1

import (
	"recruiting-backend/controllers"
	"recruiting-backend/lib/application"
	"recruiting-backend/lib/proposal"
	"recruiting-backend/middleware"
	apimodels "recruiting-backend/models/api"
	applicationapimodels "recruiting-backend/models/api/application"

	"github.com/gofiber/fiber/v2"
)

type applicationApiController struct {
	controllers.BaseAPIController
}

func InitApplicationApiRouters(app fiber.Router) {
	controller := applicationApiController{}
	app.Route("applications", func(router fiber.Router) {
		router.Post("", controller.submit)
		router.Post("propose", controller.propose)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Get("audit", controller.audit)
			idRoute.Get("proposal", controller.proposal)
			idRoute.Put("approve", controller.approve)
			idRoute.Put("decline", controller.decline)
			idRoute.Put("complete_draft", controller.completeDraft)
			idRoute.Put("submit_to_company", controller.submitToCompany)
			idRoute.Put("stage", controller.changeStage)
			idRoute.Put("accept", controller.accept)
			idRoute.Put("withdraw", controller.withdraw)
			idRoute.Put("prescreen", controller.prescreen)
			idRoute.Post("ai_review_callback", controller.aiReviewCallback)
		})
	})
}

// @Summary Submit
// @Tags Application
// @Description Candidate applies to a job. Goes to screen when a recruiter represents the candidate, to submitted otherwise
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 applicationapimodels.SubmitData	true	"request body"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications [post]
func (c *applicationApiController) submit(ctx *fiber.Ctx) error {
	var payload applicationapimodels.SubmitData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := application.Instance.Submit(middleware.GetActor(ctx), application.SubmitRequest{
		CandidateID: payload.CandidateID,
		JobID:       payload.JobID,
		Notes:       payload.Notes,
	})
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to submit application")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(applicationapimodels.ApplicationConvert(*rec)))
}

// @Summary Propose
// @Tags Application
// @Description Recruiter proposes a job to a represented candidate
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 applicationapimodels.ProposeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/propose [post]
func (c *applicationApiController) propose(ctx *fiber.Ctx) error {
	var payload applicationapimodels.ProposeData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err := payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := application.Instance.Propose(middleware.GetActor(ctx), application.ProposeRequest{
		CandidateID: payload.CandidateID,
		JobID:       payload.JobID,
		Pitch:       payload.Pitch,
	})
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to propose job")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(applicationapimodels.ApplicationConvert(*rec)))
}

// @Summary Get by ID
// @Tags Application
// @Description Application visible to its candidate, recruiter, company or an admin
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "application ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id} [get]
func (c *applicationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := application.Instance.GetByID(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get application")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(applicationapimodels.ApplicationConvert(*rec)))
}

// @Summary Audit trail
// @Tags Application
// @Description Stage transitions of the application in time order
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "application ID"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.AuditView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/audit [get]
func (c *applicationApiController) audit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, err := application.Instance.ListAudit(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get audit trail")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(applicationapimodels.AuditConvert(list)))
}

// @Summary Proposal view
// @Tags Application
// @Description Who has to act on the application next, from the caller's point of view
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "application ID"
// @Success 200 {object} apimodels.Response{data=proposal.View}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/proposal [get]
func (c *applicationApiController) proposal(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	view, err := proposal.Instance.Get(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get proposal")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Approve proposal
// @Tags Application
// @Description Candidate accepts a recruiter proposal, the application becomes a draft
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "application ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/approve [put]
func (c *applicationApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := application.Instance.Approve(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to approve proposal")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(applicationapimodels.ApplicationConvert(*rec)))
}

// @Summary Decline proposal
// @Tags Application
// @Description Candidate declines a recruiter proposal with a reason
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "application ID"
// @Param	body body	 applicationapimodels.DeclineData	true	"request body"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/decline [put]
func (c *applicationApiController) decline(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload applicationapimodels.DeclineData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := application.Instance.Decline(middleware.GetActor(ctx), id, payload.Reason, payload.Notes)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to decline proposal")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(applicationapimodels.ApplicationConvert(*rec)))
}

// @Summary Complete draft
// @Tags Application
// @Description Candidate finishes the draft, the application goes to AI review
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "application ID"
// @Param	body body	 applicationapimodels.NotesData	false	"request body"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/complete_draft [put]
func (c *applicationApiController) completeDraft(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload applicationapimodels.NotesData
	if len(ctx.Body()) != 0 {
		if err = c.BodyParser(ctx, &payload); err != nil {
			return c.SendBadRequest(ctx, err)
		}
	}
	rec, err := application.Instance.CompleteDraft(middleware.GetActor(ctx), id, payload.Notes)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to complete draft")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(applicationapimodels.ApplicationConvert(*rec)))
}

// @Summary Submit to company
// @Tags Application
// @Description Recruiter of record forwards a screened application to the company
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "application ID"
// @Param	body body	 applicationapimodels.NotesData	false	"request body"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/submit_to_company [put]
func (c *applicationApiController) submitToCompany(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload applicationapimodels.NotesData
	if len(ctx.Body()) != 0 {
		if err = c.BodyParser(ctx, &payload); err != nil {
			return c.SendBadRequest(ctx, err)
		}
	}
	rec, err := application.Instance.SubmitToCompany(middleware.GetActor(ctx), id, payload.Notes)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to submit to company")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(applicationapimodels.ApplicationConvert(*rec)))
}

// @Summary Change stage
// @Tags Application
// @Description Pipeline move by the company or recruiter, hired creates the placement
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "application ID"
// @Param	body body	 applicationapimodels.StageChangeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/stage [put]
func (c *applicationApiController) changeStage(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload applicationapimodels.StageChangeData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := application.Instance.ChangeStage(middleware.GetActor(ctx), id, payload.Stage, payload.Notes)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to change stage")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(applicationapimodels.ApplicationConvert(*rec)))
}

// @Summary Accept
// @Tags Application
// @Description Company accepts a submitted application, repeated calls are no-ops
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "application ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/accept [put]
func (c *applicationApiController) accept(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := application.Instance.Accept(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to accept application")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(applicationapimodels.ApplicationConvert(*rec)))
}

// @Summary Withdraw
// @Tags Application
// @Description Candidate withdraws from any non terminal stage
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "application ID"
// @Param	body body	 applicationapimodels.WithdrawData	false	"request body"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/withdraw [put]
func (c *applicationApiController) withdraw(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload applicationapimodels.WithdrawData
	if len(ctx.Body()) != 0 {
		if err = c.BodyParser(ctx, &payload); err != nil {
			return c.SendBadRequest(ctx, err)
		}
	}
	rec, err := application.Instance.Withdraw(middleware.GetActor(ctx), id, payload.Reason)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to withdraw application")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(applicationapimodels.ApplicationConvert(*rec)))
}

// @Summary Request pre-screen
// @Tags Application
// @Description Company sends a direct application back to recruiter screening
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "application ID"
// @Param	body body	 applicationapimodels.PrescreenData	false	"request body"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/prescreen [put]
func (c *applicationApiController) prescreen(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload applicationapimodels.PrescreenData
	if len(ctx.Body()) != 0 {
		if err = c.BodyParser(ctx, &payload); err != nil {
			return c.SendBadRequest(ctx, err)
		}
	}
	rec, err := application.Instance.RequestPrescreen(middleware.GetActor(ctx), id, payload.RecruiterID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to request pre-screen")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(applicationapimodels.ApplicationConvert(*rec)))
}

// @Summary AI review callback
// @Tags Application
// @Description Completes the ai_review stage; repeated or late callbacks are no-ops
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true         "application ID"
// @Param	body body	 applicationapimodels.AIReviewData	false	"request body"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/ai_review_callback [post]
func (c *applicationApiController) aiReviewCallback(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload applicationapimodels.AIReviewData
	if len(ctx.Body()) != 0 {
		if err = c.BodyParser(ctx, &payload); err != nil {
			return c.SendBadRequest(ctx, err)
		}
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	rec, err := application.Instance.CompleteAIReview(id, payload.Score)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to complete AI review")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(applicationapimodels.ApplicationConvert(*rec)))
}
