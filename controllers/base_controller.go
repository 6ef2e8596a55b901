package controllers

import (
	"hr-pipeline-backend/middleware"
	"hr-pipeline-backend/models"
	apimodels "hr-pipeline-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		var validationErr models.ValidationError
		if errors.As(err, &validationErr) {
			return validationErr
		}
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (string, error) {
	id := ctx.Params(key)
	if id == "" {
		return "", errors.Errorf("не указан %v", key)
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", errors.Errorf("некорректный %v: %v", key, id)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	logger := log.WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
	if orgID := middleware.GetUserOrg(ctx); orgID != "" {
		logger = logger.WithField("org_id", orgID)
	}
	if userID := middleware.GetUserID(ctx); userID != "" {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}

// SendError - ответ по типу ошибки. Сообщения инфраструктурных ошибок клиенту не передаются.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	var (
		validationErr  models.ValidationError
		protectedStage models.ProtectedStageError
		protectedTpl   models.ProtectedTemplateError
		notFoundErr    models.NotFoundError
		conflictErr    models.SyncConflictError
		reorderErr     models.ReorderPersistenceError
	)
	switch {
	case errors.As(err, &reorderErr):
		logger.WithError(err).Error(msg)
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewErrorWithData(msg, reorderErr.Confirmed))
	case errors.As(err, &validationErr):
		logger.WithError(err).Warn(msg)
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewErrorWithData(validationErr.Error(), fiber.Map{"field": validationErr.Field}))
	case errors.As(err, &protectedStage):
		logger.WithError(err).Warn(msg)
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(protectedStage.Error()))
	case errors.As(err, &protectedTpl):
		logger.WithError(err).Warn(msg)
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(protectedTpl.Error()))
	case errors.As(err, &notFoundErr):
		logger.WithError(err).Warn(msg)
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(notFoundErr.Error()))
	case errors.As(err, &conflictErr):
		logger.WithError(err).Warn(msg)
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(conflictErr.Error()))
	}
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
}
