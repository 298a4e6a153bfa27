package apiv1

import (
	"budget-planner-backend/controllers"
	orghandler "budget-planner-backend/lib/org"
	apimodels "budget-planner-backend/models/api"
	orgapimodels "budget-planner-backend/models/api/org"

	"github.com/gofiber/fiber/v2"
)

type orgApiController struct {
	controllers.BaseAPIController
}

func InitOrgApiRouters(app *fiber.App) {
	controller := orgApiController{}
	app.Route("org", func(router fiber.Router) {
		router.Post("", controller.create)
	})
}

// @Summary Регистрация организации
// @Tags Организация
// @Description Создание организации с администратором и конфигурацией уровней согласования из шаблона системных ролей
// @Param	body body	 orgapimodels.CreateOrganization	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org [post]
func (c *orgApiController) create(ctx *fiber.Ctx) error {
	var payload orgapimodels.CreateOrganization
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := orghandler.Instance.CreateOrganization(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания организации")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}
