package middleware

import (
	authutils "hr-pipeline-backend/lib/utils/auth-utils"
	"hr-pipeline-backend/models"
	apimodels "hr-pipeline-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func GetUserOrg(ctx *fiber.Ctx) string {
	return authutils.GetStringClaim(ctx, "org")
}

func GetUserID(ctx *fiber.Ctx) string {
	return authutils.GetStringClaim(ctx, "sub")
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	return models.UserRole(authutils.GetStringClaim(ctx, "role"))
}

// OrgRequired - в токене должна быть организация пользователя
func OrgRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if GetUserOrg(ctx) == "" || GetUserID(ctx) == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}

// PipelineManagerRequired - изменение шаблонов и этапов
func PipelineManagerRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !GetUserRole(ctx).CanManagePipeline() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}

// JobManagerRequired - изменение вакансий и их этапов
func JobManagerRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !GetUserRole(ctx).CanManageJobs() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}
