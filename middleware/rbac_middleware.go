package middleware

import (
	"recruiting-backend/lib/rbac"
	apimodels "recruiting-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

const rbacForbidden = "RBAC_FORBIDDEN"

func RbacMiddleware(rules rbac.Provider) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := GetUserID(ctx)
		userRole := GetUserRole(ctx)
		if userID == "" || userRole == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewCodedError(rbacForbidden, "operation not allowed"))
		}

		handler, found := rules.GetRuleFunc(ctx.Method(), ctx.Path())
		if !found {
			return ctx.Next()
		}
		if !handler(userID, userRole, ctx.Path()) {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewCodedError(rbacForbidden, "operation not allowed"))
		}
		return ctx.Next()
	}
}
