package apiv1

import (
	"recruiting-backend/controllers"
	"recruiting-backend/lib/rbac"
	"recruiting-backend/middleware"
	apimodels "recruiting-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type permissionsApiController struct {
	controllers.BaseAPIController
}

func InitPermissionsApiRouters(app fiber.Router) {
	controller := permissionsApiController{}
	app.Get("permissions", controller.get)
}

// @Summary Permissions
// @Tags Permissions
// @Description Modules and permissions available to the caller's role
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=map[string][]string}
// @Failure 403 {object} apimodels.Response
// @router /api/v1/permissions [get]
func (c *permissionsApiController) get(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rbac.Instance.GetPermissions(middleware.GetUserRole(ctx))))
}
