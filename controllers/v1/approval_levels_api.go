package apiv1

import (
	"budget-planner-backend/controllers"
	approvallevelshandler "budget-planner-backend/lib/approval-levels"
	"budget-planner-backend/middleware"
	apimodels "budget-planner-backend/models/api"
	approvalapimodels "budget-planner-backend/models/api/approval"

	"github.com/gofiber/fiber/v2"
)

type approvalLevelsApiController struct {
	controllers.BaseAPIController
}

func InitApprovalLevelsApiRouters(app *fiber.App) {
	controller := approvalLevelsApiController{}
	app.Route("approval_levels", func(router fiber.Router) {
		router.Get("", controller.get)
		router.Put("", middleware.AdminRequired(), controller.save)
		router.Post("move_role", middleware.AdminRequired(), controller.moveRole)
	})
}

// @Summary Конфигурация уровней согласования
// @Tags Уровни согласования
// @Description Уровни согласования организации с ролями и диагностикой пустых уровней
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=approvalapimodels.ApprovalLevelsView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/approval_levels [get]
func (c *approvalLevelsApiController) get(ctx *fiber.Ctx) error {
	orgID := middleware.GetUserOrg(ctx)
	result, err := approvallevelshandler.Instance.Get(orgID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения конфигурации уровней согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Сохранение конфигурации уровней согласования
// @Tags Уровни согласования
// @Description Атомарная замена конфигурации; конфигурация с пустыми уровнями не сохраняется
// @Param   Authorization		header	string									true	"Authorization token"
// @Param	body 				body	approvalapimodels.ApprovalLevelsData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/approval_levels [put]
func (c *approvalLevelsApiController) save(ctx *fiber.Ctx) error {
	var payload approvalapimodels.ApprovalLevelsData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	hMsg, err := approvallevelshandler.Instance.Save(orgID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения конфигурации уровней согласования")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Перенос роли между уровнями
// @Tags Уровни согласования
// @Description Перенос одной роли на другой уровень без полной замены конфигурации
// @Param   Authorization		header	string							true	"Authorization token"
// @Param	body 				body	approvalapimodels.MoveRoleData	true	"request body"
// @Success 200 {object} apimodels.Response{data=approvalapimodels.ApprovalLevelsView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/approval_levels/move_role [post]
func (c *approvalLevelsApiController) moveRole(ctx *fiber.Ctx) error {
	var payload approvalapimodels.MoveRoleData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	result, hMsg, err := approvallevelshandler.Instance.MoveRole(orgID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка переноса роли между уровнями")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
