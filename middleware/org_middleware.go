package middleware

import (
	authutils "budget-planner-backend/lib/utils/auth-utils"
	apimodels "budget-planner-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func AdminRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !IsAdmin(ctx) {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}

func GetUserOrg(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if org, exist := claims["org"]; exist {
		if value, ok := org.(string); ok {
			return value
		}
	}
	return ""
}

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		if value, ok := sub.(string); ok {
			return value
		}
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if value, ok := role.(string); ok {
			return value
		}
	}
	return ""
}

func IsAdmin(ctx *fiber.Ctx) bool {
	claims := authutils.GetClaims(ctx)
	if admin, exist := claims["admin"]; exist {
		if value, ok := admin.(bool); ok {
			return value
		}
	}
	return false
}
