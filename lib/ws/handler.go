package ws

import (
	wsclient "recruiting-backend/lib/ws/client"
	connectionhub "recruiting-backend/lib/ws/hub/connection-hub"
	"recruiting-backend/middleware"
	"recruiting-backend/models"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

const subscriberKey = "subscriber"

// InitWs expects the caller to be authenticated and resolved to an actor by earlier middleware.
func InitWs(app *fiber.App) {
	app.Use("", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		ctx.Locals(subscriberKey, middleware.GetActor(ctx))
		return ctx.Next()
	})
	app.Get("/", websocket.New(eventsHandler))
}

// @Summary Domain event stream
// @Tags Events
// @Description Live stream of the domain events that name the caller's company, candidate or recruiter entity; admins receive all
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 400
// @Failure 403
// @Failure 500
// @router /api/v1/ws [get]
func eventsHandler(c *websocket.Conn) {
	actor, _ := c.Locals(subscriberKey).(models.Actor)
	client := wsclient.NewClient(actor.UserID, c)
	connectionhub.Instance.AddClient(actor, c)
	defer connectionhub.Instance.DeleteClient(actor.UserID, c)
	client.Dispatch()
}
