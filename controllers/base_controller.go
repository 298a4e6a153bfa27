package controllers

import (
	"budget-planner-backend/models"
	apimodels "budget-planner-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (string, error) {
	id := ctx.Params(key)
	if id == "" {
		return "", errors.Errorf("не указан идентификатор записи (%v)", key)
	}
	return id, nil
}

// SendError переводит типизированные ошибки ядра согласования в коды
// ответа; прочие ошибки отдаются как 500 с общим сообщением
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, hMsg string) error {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		return ctx.Status(fiber.StatusBadRequest).
			JSON(apimodels.NewErrorWithData(validationErr.Error(), fiber.Map{"empty_levels": validationErr.EmptyLevels}))
	}
	var permissionErr *models.PermissionDeniedError
	if errors.As(err, &permissionErr) {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(permissionErr.Error()))
	}
	var transitionErr *models.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(transitionErr.Error()))
	}
	var conflictErr *models.ConcurrencyConflictError
	if errors.As(err, &conflictErr) {
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(conflictErr.Error()))
	}
	var integrityErr *models.ConfigurationIntegrityError
	if errors.As(err, &integrityErr) {
		logger.WithError(err).Error("нарушена целостность конфигурации уровней согласования")
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(integrityErr.Error()))
	}
	logger.WithError(err).Error(hMsg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(hMsg))
}
