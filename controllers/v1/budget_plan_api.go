package apiv1

import (
	"budget-planner-backend/controllers"
	budgetplanhandler "budget-planner-backend/lib/budget-plan"
	"budget-planner-backend/middleware"
	apimodels "budget-planner-backend/models/api"
	budgetplanapimodels "budget-planner-backend/models/api/budgetplan"

	"github.com/gofiber/fiber/v2"
)

type budgetPlanApiController struct {
	controllers.BaseAPIController
}

func InitBudgetPlanApiRouters(app *fiber.App) {
	controller := budgetPlanApiController{}
	app.Route("budget_plan", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Put("submit", controller.submit)
			idRoute.Post("act", controller.act)
			idRoute.Get("check_permission", controller.checkPermission)
			idRoute.Get("approval_history", controller.getApprovalHistory)
		})
	})
}

// @Summary Создание
// @Tags Бюджетный план
// @Description Создание черновика бюджетного плана со строками бюджета
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body 				body	budgetplanapimodels.BudgetPlanData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/budget_plan [post]
func (c *budgetPlanApiController) create(ctx *fiber.Ctx) error {
	var payload budgetplanapimodels.BudgetPlanData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	userID := middleware.GetUserID(ctx)
	roleCode := middleware.GetUserRole(ctx)
	id, hMsg, err := budgetplanhandler.Instance.Create(orgID, userID, roleCode, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания бюджетного плана")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список
// @Tags Бюджетный план
// @Description Список бюджетных планов организации с фильтром по статусам
// @Param   Authorization		header	string							true	"Authorization token"
// @Param	body 				body	budgetplanapimodels.BpFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]budgetplanapimodels.BudgetPlanView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/budget_plan/list [post]
func (c *budgetPlanApiController) list(ctx *fiber.Ctx) error {
	var payload budgetplanapimodels.BpFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	orgID := middleware.GetUserOrg(ctx)
	userID := middleware.GetUserID(ctx)
	roleCode := middleware.GetUserRole(ctx)
	result, rowCount, err := budgetplanhandler.Instance.List(orgID, userID, roleCode, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка бюджетных планов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(result, rowCount))
}

// @Summary Получение
// @Tags Бюджетный план
// @Description Бюджетный план по идентификатору
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=budgetplanapimodels.BudgetPlanView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/budget_plan/{id} [get]
func (c *budgetPlanApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	orgID := middleware.GetUserOrg(ctx)
	result, err := budgetplanhandler.Instance.GetByID(orgID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения бюджетного плана")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Обновление
// @Tags Бюджетный план
// @Description Обновление черновика бюджетного плана; сумма пересчитывается по строкам
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body 				body	budgetplanapimodels.BudgetPlanData	true	"request body"
// @Param   id          		path    string  							true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/budget_plan/{id} [put]
func (c *budgetPlanApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload budgetplanapimodels.BudgetPlanData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	hMsg, err := budgetplanhandler.Instance.Update(orgID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления бюджетного плана")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление
// @Tags Бюджетный план
// @Description Удаление черновика бюджетного плана
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/budget_plan/{id} [delete]
func (c *budgetPlanApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	orgID := middleware.GetUserOrg(ctx)
	hMsg, err := budgetplanhandler.Instance.Delete(orgID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления бюджетного плана")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отправка на согласование
// @Tags Согласование планов
// @Description Перевод плана на согласование: статус PENDING_APPROVAL, уровень 1
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/budget_plan/{id}/submit [put]
func (c *budgetPlanApiController) submit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	orgID := middleware.GetUserOrg(ctx)
	userID := middleware.GetUserID(ctx)
	hMsg, err := budgetplanhandler.Instance.Submit(orgID, id, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отправки плана на согласование")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Действие согласования
// @Tags Согласование планов
// @Description Согласовать, отклонить или вернуть план на доработку
// @Param   Authorization		header	string									true	"Authorization token"
// @Param	body 				body	budgetplanapimodels.ApprovalActionData	true	"request body"
// @Param   id          		path    string  								true    "rec ID"
// @Success 200 {object} apimodels.Response{data=budgetplanapimodels.ActionResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/budget_plan/{id}/act [post]
func (c *budgetPlanApiController) act(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload budgetplanapimodels.ApprovalActionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	orgID := middleware.GetUserOrg(ctx)
	userID := middleware.GetUserID(ctx)
	roleCode := middleware.GetUserRole(ctx)
	result, err := budgetplanhandler.Instance.Act(orgID, id, userID, roleCode, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выполнения действия согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Проверка права действия
// @Tags Согласование планов
// @Description Доступно ли пользователю действие по плану на текущем уровне согласования
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=budgetplanapimodels.PermissionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/budget_plan/{id}/check_permission [get]
func (c *budgetPlanApiController) checkPermission(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	orgID := middleware.GetUserOrg(ctx)
	roleCode := middleware.GetUserRole(ctx)
	result, err := budgetplanhandler.Instance.CheckPermission(orgID, id, roleCode)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка проверки права согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary История согласования
// @Tags Согласование планов
// @Description Журнал действий согласования по плану в порядке добавления
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]budgetplanapimodels.ApprovalActionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/budget_plan/{id}/approval_history [get]
func (c *budgetPlanApiController) getApprovalHistory(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	orgID := middleware.GetUserOrg(ctx)
	result, err := budgetplanhandler.Instance.History(orgID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
