package middleware

import (
	"recruiting-backend/lib/identity"
	apperrors "recruiting-backend/lib/utils/app-errors"
	authutils "recruiting-backend/lib/utils/auth-utils"
	"recruiting-backend/models"
	apimodels "recruiting-backend/models/api"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const actorKey = "actor"

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, ok := claims["role"].(string); ok && role != "" {
		return models.UserRole(role)
	}
	return ""
}

// ResolveActor maps the token subject to its candidate/recruiter/company entity.
func ResolveActor(resolver identity.Provider) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := GetUserID(ctx)
		role := GetUserRole(ctx)
		if userID == "" || !role.IsValid() || role == models.SystemRole {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewCodedError("FORBIDDEN", "unknown caller"))
		}
		actor, err := resolver.ResolveActor(userID, role)
		if err != nil {
			if apperrors.IsForbidden(err) {
				return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewCodedError("FORBIDDEN", err.Error()))
			}
			log.WithError(err).WithField("user_id", userID).Error("failed to resolve caller")
			return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError("internal error"))
		}
		ctx.Locals(actorKey, actor)
		return ctx.Next()
	}
}

func GetActor(ctx *fiber.Ctx) models.Actor {
	actor, _ := ctx.Locals(actorKey).(models.Actor)
	return actor
}
